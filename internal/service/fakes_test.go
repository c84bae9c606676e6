package service

import (
	"sort"
	"sync"

	"kairopay/internal/domain"
	"kairopay/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// in-memory repositories; the db handle is ignored so tests run without
// postgres

type fakeMerchantsRepo struct {
	merchants map[string]*domain.Merchants // by privy did
}

func newFakeMerchantsRepo() *fakeMerchantsRepo {
	return &fakeMerchantsRepo{merchants: map[string]*domain.Merchants{}}
}

func (r *fakeMerchantsRepo) Create(_ *gorm.DB, merchant *domain.Merchants) error {
	if _, ok := r.merchants[merchant.PrivyDID]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.merchants[merchant.PrivyDID] = merchant
	return nil
}

func (r *fakeMerchantsRepo) FindByMerchantID(_ *gorm.DB, merchantID string) (*domain.Merchants, error) {
	for _, merchant := range r.merchants {
		if merchant.MerchantID == merchantID {
			return merchant, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMerchantsRepo) FindByPrivyDID(_ *gorm.DB, privyDID string) (*domain.Merchants, error) {
	merchant, ok := r.merchants[privyDID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return merchant, nil
}

func (r *fakeMerchantsRepo) FindAllWithApps(_ *gorm.DB) ([]domain.Merchants, error) {
	var all []domain.Merchants
	for _, merchant := range r.merchants {
		all = append(all, *merchant)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].MerchantID < all[j].MerchantID })
	return all, nil
}

func (r *fakeMerchantsRepo) AddApp(_ *gorm.DB, app *domain.Apps) error {
	for _, merchant := range r.merchants {
		if merchant.MerchantID == app.MerchantID {
			merchant.Apps = append(merchant.Apps, *app)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeMerchantsRepo) FindApp(_ *gorm.DB, appID string) (*domain.Apps, error) {
	for _, merchant := range r.merchants {
		if app := merchant.FindApp(appID); app != nil {
			return app, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeOrdersRepo struct {
	orders map[string]*domain.Orders
}

func newFakeOrdersRepo() *fakeOrdersRepo {
	return &fakeOrdersRepo{orders: map[string]*domain.Orders{}}
}

func (r *fakeOrdersRepo) Create(_ *gorm.DB, order *domain.Orders) error {
	if _, ok := r.orders[order.OrderID]; ok {
		return gorm.ErrDuplicatedKey
	}
	clone := *order
	r.orders[order.OrderID] = &clone
	return nil
}

func (r *fakeOrdersRepo) Update(_ *gorm.DB, order *domain.Orders) error {
	if _, ok := r.orders[order.OrderID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *order
	r.orders[order.OrderID] = &clone
	return nil
}

func (r *fakeOrdersRepo) FindByOrderID(_ *gorm.DB, orderID string) (*domain.Orders, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrdersRepo) FindByOrderIDAndApp(_ *gorm.DB, orderID, appID string) (*domain.Orders, error) {
	order, ok := r.orders[orderID]
	if !ok || order.AppID != appID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrdersRepo) List(_ *gorm.DB, filter repository.OrderFilter) ([]domain.Orders, int64, error) {
	var matched []domain.Orders
	for _, order := range r.orders {
		if order.AppID != filter.AppID {
			continue
		}
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		matched = append(matched, *order)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].OrderID < matched[j].OrderID })

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeOrdersRepo) CountByStatus(_ *gorm.DB, appID string) (map[domain.OrderStatus]int64, error) {
	counts := map[domain.OrderStatus]int64{}
	for _, order := range r.orders {
		if order.AppID == appID {
			counts[order.Status]++
		}
	}
	return counts, nil
}

func (r *fakeOrdersRepo) SumRevenue(_ *gorm.DB, appID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, order := range r.orders {
		if order.AppID == appID && order.Status == domain.ORDER_VERIFIED {
			sum = sum.Add(order.AmountUSD)
		}
	}
	return sum, nil
}

type fakeTxRepo struct {
	txs []*domain.Transactions
}

func newFakeTxRepo() *fakeTxRepo {
	return &fakeTxRepo{}
}

func (r *fakeTxRepo) Create(_ *gorm.DB, transaction *domain.Transactions) error {
	for _, existing := range r.txs {
		if existing.TxHash == transaction.TxHash {
			return gorm.ErrDuplicatedKey
		}
	}
	clone := *transaction
	r.txs = append(r.txs, &clone)
	return nil
}

func (r *fakeTxRepo) FindByTxHash(_ *gorm.DB, txHash string) (*domain.Transactions, error) {
	for _, transaction := range r.txs {
		if transaction.TxHash == txHash {
			return transaction, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTxRepo) FindByOrderID(_ *gorm.DB, orderID string) ([]domain.Transactions, error) {
	var matched []domain.Transactions
	for _, transaction := range r.txs {
		if transaction.OrderID == orderID {
			matched = append(matched, *transaction)
		}
	}
	return matched, nil
}

func (r *fakeTxRepo) CountByOrderIDs(_ *gorm.DB, orderIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(orderIDs))
	for _, orderID := range orderIDs {
		for _, transaction := range r.txs {
			if transaction.OrderID == orderID {
				counts[orderID]++
			}
		}
	}
	return counts, nil
}

func (r *fakeTxRepo) FindConfirmedByOrderID(_ *gorm.DB, orderID string) (*domain.Transactions, error) {
	for _, transaction := range r.txs {
		if transaction.OrderID == orderID && transaction.Status == domain.TX_CONFIRMED {
			return transaction, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTxRepo) List(_ *gorm.DB, filter repository.TxFilter) ([]domain.Transactions, int64, decimal.Decimal, error) {
	var matched []domain.Transactions
	for _, transaction := range r.txs {
		if transaction.AppID != filter.AppID {
			continue
		}
		if filter.Status != nil && transaction.Status != *filter.Status {
			continue
		}
		if filter.Chain != "" && transaction.Chain != filter.Chain {
			continue
		}
		if filter.Asset != "" && transaction.Asset != filter.Asset {
			continue
		}
		matched = append(matched, *transaction)
	}

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, decimal.Zero, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	volume := decimal.Zero
	for _, transaction := range matched {
		volume = volume.Add(transaction.UsdValue)
	}
	return matched, total, volume, nil
}

func (r *fakeTxRepo) SumUsdByAsset(_ *gorm.DB, appID string) (map[string]decimal.Decimal, error) {
	return r.sumBy(appID, func(t *domain.Transactions) string { return t.Asset })
}

func (r *fakeTxRepo) SumUsdByChain(_ *gorm.DB, appID string) (map[string]decimal.Decimal, error) {
	return r.sumBy(appID, func(t *domain.Transactions) string { return t.Chain })
}

func (r *fakeTxRepo) sumBy(appID string, key func(*domain.Transactions) string) (map[string]decimal.Decimal, error) {
	sums := map[string]decimal.Decimal{}
	for _, transaction := range r.txs {
		if transaction.AppID == appID && transaction.Status == domain.TX_CONFIRMED {
			sums[key(transaction)] = sums[key(transaction)].Add(transaction.UsdValue)
		}
	}
	return sums, nil
}

func (r *fakeTxRepo) Recent(_ *gorm.DB, appID string, limit int) ([]domain.Transactions, error) {
	var matched []domain.Transactions
	for i := len(r.txs) - 1; i >= 0 && len(matched) < limit; i-- {
		if r.txs[i].AppID == appID {
			matched = append(matched, *r.txs[i])
		}
	}
	return matched, nil
}

type fakeEventsRepo struct {
	mu   sync.Mutex
	rows []domain.Events
}

func newFakeEventsRepo() *fakeEventsRepo {
	return &fakeEventsRepo{}
}

func (r *fakeEventsRepo) Create(_ *gorm.DB, eventType, relationID, payload, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, domain.Events{Type: eventType, RelationID: relationID, Payload: payload, Status: status})
	return nil
}

func (r *fakeEventsRepo) FindByRelation(_ *gorm.DB, relationID string) ([]domain.Events, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.Events
	for _, row := range r.rows {
		if row.RelationID == relationID {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

type enqueuedEvent struct {
	url   string
	event domain.WebhookEvent
}

type fakeWebhookSender struct {
	enqueued []enqueuedEvent
}

func (s *fakeWebhookSender) Start() {}
func (s *fakeWebhookSender) Close() {}

func (s *fakeWebhookSender) Enqueue(url string, event domain.WebhookEvent) {
	s.enqueued = append(s.enqueued, enqueuedEvent{url: url, event: event})
}

func (s *fakeWebhookSender) Signature([]byte) string { return "" }

type fakeVerifier struct {
	subject string
	err     error
}

func (v *fakeVerifier) Verify(string) (string, error) {
	return v.subject, v.err
}
