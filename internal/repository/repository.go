package repository

import (
	"kairopay/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Merchants interface {
	Create(tx *gorm.DB, merchant *domain.Merchants) error
	FindByMerchantID(tx *gorm.DB, merchantID string) (*domain.Merchants, error)
	FindByPrivyDID(tx *gorm.DB, privyDID string) (*domain.Merchants, error)
	FindAllWithApps(tx *gorm.DB) ([]domain.Merchants, error)
	AddApp(tx *gorm.DB, app *domain.Apps) error
	FindApp(tx *gorm.DB, appID string) (*domain.Apps, error)
}

type Orders interface {
	Create(tx *gorm.DB, order *domain.Orders) error
	Update(tx *gorm.DB, order *domain.Orders) error
	FindByOrderID(tx *gorm.DB, orderID string) (*domain.Orders, error)
	FindByOrderIDAndApp(tx *gorm.DB, orderID, appID string) (*domain.Orders, error)
	List(tx *gorm.DB, filter OrderFilter) ([]domain.Orders, int64, error)
	CountByStatus(tx *gorm.DB, appID string) (map[domain.OrderStatus]int64, error)
	SumRevenue(tx *gorm.DB, appID string) (decimal.Decimal, error)
}

type Transactions interface {
	Create(tx *gorm.DB, transaction *domain.Transactions) error
	FindByTxHash(tx *gorm.DB, txHash string) (*domain.Transactions, error)
	FindByOrderID(tx *gorm.DB, orderID string) ([]domain.Transactions, error)
	FindConfirmedByOrderID(tx *gorm.DB, orderID string) (*domain.Transactions, error)
	CountByOrderIDs(tx *gorm.DB, orderIDs []string) (map[string]int64, error)
	List(tx *gorm.DB, filter TxFilter) ([]domain.Transactions, int64, decimal.Decimal, error)
	SumUsdByAsset(tx *gorm.DB, appID string) (map[string]decimal.Decimal, error)
	SumUsdByChain(tx *gorm.DB, appID string) (map[string]decimal.Decimal, error)
	Recent(tx *gorm.DB, appID string, limit int) ([]domain.Transactions, error)
}

type Events interface {
	Create(tx *gorm.DB, eventType, relationID, payload, status string) error
	FindByRelation(tx *gorm.DB, relationID string) ([]domain.Events, error)
}

// OrderFilter narrows List to one app, with optional status and a
// limit/offset window.
type OrderFilter struct {
	AppID  string
	Status *domain.OrderStatus
	Limit  int
	Offset int
}

type TxFilter struct {
	AppID  string
	Status *domain.TxStatus
	Chain  string
	Asset  string
	Limit  int
	Offset int
}

type Repositories struct {
	Merchants    Merchants
	Orders       Orders
	Transactions Transactions
	Events       Events
}

func New() *Repositories {
	return &Repositories{
		Merchants:    InitMerchantsRepo(),
		Orders:       InitOrdersRepo(),
		Transactions: InitTransactionsRepo(),
		Events:       InitEventsRepo(),
	}
}
