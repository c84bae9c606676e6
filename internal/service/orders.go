package service

import (
	"fmt"
	"strings"
	"time"

	"kairopay/internal/config"
	"kairopay/internal/domain"
	"kairopay/internal/infra/postgres"
	"kairopay/internal/logger"
	"kairopay/internal/repository"
	"kairopay/pkg/ident"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateOrderParams struct {
	MerchantID  string
	AppID       string
	OrderID     string // generated when empty
	CustomerDID string
	AmountUSD   decimal.Decimal
	Currency    string
	Metadata    map[string]any
	WebhookURL  string // overrides the app default when set
}

type SubmitTxParams struct {
	OrderID  string
	TxHash   string
	Chain    string
	Asset    string
	FromAddr string
	ToAddr   string
	Amount   decimal.Decimal
}

type OrdersService struct {
	db          *gorm.DB
	repo        repository.Orders
	txRepo      repository.Transactions
	merchants   repository.Merchants
	webhooks    WebhookSender
	priceOracle PriceOracle
	config      *config.Config
	l           logger.Logger
}

func NewOrdersService(db *gorm.DB, repo repository.Orders, txRepo repository.Transactions, merchants repository.Merchants, webhooks WebhookSender, priceOracle PriceOracle, config *config.Config, l logger.Logger) *OrdersService {
	return &OrdersService{
		db:          db,
		repo:        repo,
		txRepo:      txRepo,
		merchants:   merchants,
		webhooks:    webhooks,
		priceOracle: priceOracle,
		config:      config,
		l:           l,
	}
}

func (s *OrdersService) Create(tx *gorm.DB, params CreateOrderParams) (*domain.Orders, error) {
	webhookURL := params.WebhookURL
	if webhookURL == "" {
		app, err := s.merchants.FindApp(tx, params.AppID)
		if err != nil {
			if postgres.IsNotFound(err) {
				return nil, domain.ErrAppNotFound
			}
			return nil, err
		}
		webhookURL = app.WebhookURL
	}

	orderID := params.OrderID
	if orderID == "" {
		orderID = ident.NewOrderID()
	}

	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}

	order := &domain.Orders{
		OrderID:     orderID,
		MerchantID:  params.MerchantID,
		AppID:       params.AppID,
		CustomerDID: params.CustomerDID,
		AmountUSD:   params.AmountUSD,
		Currency:    currency,
		Metadata:    params.Metadata,
		WebhookURL:  webhookURL,
		Status:      domain.ORDER_CREATED,
		CheckoutURL: s.checkoutURL(orderID),
		ExpiresAt:   time.Now().Add(domain.OrderTTL),
	}

	err := s.repo.Create(tx, order)
	if err != nil {
		if postgres.IsDuplicate(err) {
			// caller-supplied order_id collided
			return nil, domain.ErrOrderExists
		}
		return nil, err
	}

	s.emit(order, domain.NewWebhookEvent(domain.EVENT_ORDER_CREATED, domain.WebhookEvent{
		OrderID:    order.OrderID,
		MerchantID: order.MerchantID,
		AppID:      order.AppID,
	}))

	return order, nil
}

// SubmitTransaction records a claimed on-chain payment against an order.
// Resubmitting a tx hash is an error, not a no-op.
func (s *OrdersService) SubmitTransaction(tx *gorm.DB, params SubmitTxParams) (*domain.Transactions, error) {
	order, err := s.repo.FindByOrderID(tx, params.OrderID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	if order.IsExpired(time.Now()) {
		if !order.Status.IsTerminal() {
			order.Status = domain.ORDER_FAILED
			if err := s.repo.Update(tx, order); err != nil {
				return nil, err
			}
		}
		return nil, domain.ErrOrderExpired
	}

	// terminal orders take no further payments
	if order.Status.IsTerminal() {
		return nil, domain.ErrOrderExpired
	}

	usdValue, err := s.priceOracle.Convert(params.Asset, params.Amount)
	if err != nil {
		return nil, err
	}

	transaction := &domain.Transactions{
		TxHash:     params.TxHash,
		OrderID:    order.OrderID,
		MerchantID: order.MerchantID,
		AppID:      order.AppID,
		Chain:      params.Chain,
		Asset:      params.Asset,
		Amount:     params.Amount,
		UsdValue:   usdValue,
		FromAddr:   params.FromAddr,
		ToAddr:     params.ToAddr,
		Status:     domain.TX_PENDING,
	}

	err = s.txRepo.Create(tx, transaction)
	if err != nil {
		if postgres.IsDuplicate(err) {
			return nil, domain.ErrTransactionExists
		}
		return nil, err
	}

	if order.Status.CanTransition(domain.ORDER_PENDING) {
		order.Status = domain.ORDER_PENDING
		if err := s.repo.Update(tx, order); err != nil {
			return nil, err
		}
	}

	s.emit(order, domain.NewWebhookEvent(domain.EVENT_ORDER_PENDING, domain.WebhookEvent{
		OrderID:    order.OrderID,
		TxHash:     transaction.TxHash,
		Chain:      transaction.Chain,
		Asset:      transaction.Asset,
		Amount:     transaction.Amount.String(),
		MerchantID: order.MerchantID,
		AppID:      order.AppID,
	}))

	return transaction, nil
}

// Complete verifies an order against its confirmed transaction. Confirmation
// itself happens out of band; this only checks the evidence exists.
func (s *OrdersService) Complete(tx *gorm.DB, orderID, appID string) (*domain.Orders, error) {
	order, err := s.repo.FindByOrderIDAndApp(tx, orderID, appID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	confirmed, err := s.txRepo.FindConfirmedByOrderID(tx, order.OrderID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrNoConfirmedTransaction
		}
		return nil, err
	}

	if !order.Status.CanTransition(domain.ORDER_VERIFIED) {
		return nil, domain.ErrOrderExpired
	}

	order.Status = domain.ORDER_VERIFIED
	err = s.repo.Update(tx, order)
	if err != nil {
		return nil, err
	}

	s.emit(order, domain.NewWebhookEvent(domain.EVENT_ORDER_COMPLETE, domain.WebhookEvent{
		OrderID:    order.OrderID,
		TxHash:     confirmed.TxHash,
		Chain:      confirmed.Chain,
		Asset:      confirmed.Asset,
		Amount:     confirmed.Amount.String(),
		MerchantID: order.MerchantID,
		AppID:      order.AppID,
	}))

	return order, nil
}

func (s *OrdersService) Find(tx *gorm.DB, orderID, appID string) (*domain.Orders, []domain.Transactions, error) {
	order, err := s.repo.FindByOrderIDAndApp(tx, orderID, appID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, nil, domain.ErrOrderNotFound
		}
		return nil, nil, err
	}

	transactions, err := s.txRepo.FindByOrderID(tx, order.OrderID)
	if err != nil {
		return nil, nil, err
	}
	return order, transactions, nil
}

func (s *OrdersService) FindPublic(tx *gorm.DB, orderID string) (*domain.Orders, error) {
	order, err := s.repo.FindByOrderID(tx, orderID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrdersService) List(tx *gorm.DB, filter repository.OrderFilter) ([]domain.Orders, int64, error) {
	return s.repo.List(tx, filter)
}

func (s *OrdersService) ListTransactions(tx *gorm.DB, filter repository.TxFilter) ([]domain.Transactions, int64, decimal.Decimal, error) {
	return s.txRepo.List(tx, filter)
}

func (s *OrdersService) CountTransactions(tx *gorm.DB, orderIDs []string) (map[string]int64, error) {
	return s.txRepo.CountByOrderIDs(tx, orderIDs)
}

// emit hands the event to the dispatch queue. Orders without a webhook url
// simply notify nobody.
func (s *OrdersService) emit(order *domain.Orders, event domain.WebhookEvent) {
	if order.WebhookURL == "" {
		return
	}
	s.webhooks.Enqueue(order.WebhookURL, event)
}

func (s *OrdersService) checkoutURL(orderID string) string {
	base := strings.TrimRight(s.config.Checkout.BaseURL, "/")
	return fmt.Sprintf("%s/checkout/%s", base, orderID)
}
