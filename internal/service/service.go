package service

import (
	"kairopay/internal/config"
	"kairopay/internal/domain"
	"kairopay/internal/infra/cache"
	"kairopay/internal/logger"
	"kairopay/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Merchants interface {
	Register(tx *gorm.DB, params RegisterParams) (*domain.Merchants, error)
	CreateApp(tx *gorm.DB, params CreateAppParams) (*domain.Apps, string, error)
	FindByPrivyDID(tx *gorm.DB, privyDID string) (*domain.Merchants, error)
	FindApp(tx *gorm.DB, appID string) (*domain.Apps, error)
}

type Auth interface {
	// Authenticate resolves a bearer token into an auth context. expectedAppID
	// narrows the credential to one app; empty means "any".
	Authenticate(tx *gorm.DB, authHeader, expectedAppID string) (*domain.AuthContext, error)
}

// TokenVerifier checks an identity-provider session token and returns its
// subject. Implemented by infra/privy.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type Orders interface {
	Create(tx *gorm.DB, params CreateOrderParams) (*domain.Orders, error)
	SubmitTransaction(tx *gorm.DB, params SubmitTxParams) (*domain.Transactions, error)
	Complete(tx *gorm.DB, orderID, appID string) (*domain.Orders, error)
	Find(tx *gorm.DB, orderID, appID string) (*domain.Orders, []domain.Transactions, error)
	FindPublic(tx *gorm.DB, orderID string) (*domain.Orders, error)
	List(tx *gorm.DB, filter repository.OrderFilter) ([]domain.Orders, int64, error)
	ListTransactions(tx *gorm.DB, filter repository.TxFilter) ([]domain.Transactions, int64, decimal.Decimal, error)
	CountTransactions(tx *gorm.DB, orderIDs []string) (map[string]int64, error)
}

type WebhookSender interface {
	Start()
	Close()
	// Enqueue hands an event to the dispatch worker. Never blocks; a full
	// queue drops the event.
	Enqueue(url string, event domain.WebhookEvent)
	Signature(payload []byte) string
}

// PriceOracle converts an asset amount into usd. The shipped implementation
// is a pass-through stub behind the interface.
type PriceOracle interface {
	Convert(asset string, amount decimal.Decimal) (decimal.Decimal, error)
}

type QrCodes interface {
	New(content string) (string, error)
	FindOrNew(content string) (string, error)
}

type Stats interface {
	AppBalances(tx *gorm.DB, appID string) (*domain.AppBalances, error)
	MerchantBalances(merchant *domain.Merchants) *domain.MerchantBalances
}

type Services struct {
	Merchants     Merchants
	Auth          Auth
	Orders        Orders
	WebhookSender WebhookSender
	PriceOracle   PriceOracle
	QrCodes       QrCodes
	Stats         Stats
}

func NewServices(db *gorm.DB, l logger.Logger, verifier TokenVerifier, config *config.Config) *Services {
	repos := repository.New()

	webhookSender := NewWebhookSenderService(config.Webhook.Secret, config.Webhook.QueueSize, config.Webhook.TimeoutSeconds, repos.Events, db, l)
	priceOracle := NewRatesService(cache.InitStorage())

	return &Services{
		Merchants:     NewMerchantsService(db, repos.Merchants),
		Auth:          NewAuthService(db, repos.Merchants, verifier),
		Orders:        NewOrdersService(db, repos.Orders, repos.Transactions, repos.Merchants, webhookSender, priceOracle, config, l),
		WebhookSender: webhookSender,
		PriceOracle:   priceOracle,
		QrCodes:       NewQrCodesService(),
		Stats:         NewStatsService(db, repos.Orders, repos.Transactions),
	}
}
