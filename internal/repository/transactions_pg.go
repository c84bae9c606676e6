package repository

import (
	"kairopay/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionsRepo struct {
}

func InitTransactionsRepo() *TransactionsRepo {
	return &TransactionsRepo{}
}

func (r *TransactionsRepo) Create(tx *gorm.DB, transaction *domain.Transactions) error {
	return tx.Create(transaction).Error
}

func (r *TransactionsRepo) FindByTxHash(tx *gorm.DB, txHash string) (*domain.Transactions, error) {
	var transaction domain.Transactions
	return &transaction, tx.Where(&domain.Transactions{TxHash: txHash}).First(&transaction).Error
}

func (r *TransactionsRepo) FindByOrderID(tx *gorm.DB, orderID string) ([]domain.Transactions, error) {
	var transactions []domain.Transactions
	return transactions, tx.Where(&domain.Transactions{OrderID: orderID}).Order("created_at ASC").Find(&transactions).Error
}

// CountByOrderIDs returns per-order transaction counts in a single grouped
// query; orders without transactions are simply absent from the map.
func (r *TransactionsRepo) CountByOrderIDs(tx *gorm.DB, orderIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(orderIDs))
	if len(orderIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		OrderID string
		Total   int64
	}

	err := tx.Model(&domain.Transactions{}).
		Select("order_id, count(*) as total").
		Where("order_id IN ?", orderIDs).
		Group("order_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.OrderID] = row.Total
	}
	return counts, nil
}

func (r *TransactionsRepo) FindConfirmedByOrderID(tx *gorm.DB, orderID string) (*domain.Transactions, error) {
	var transaction domain.Transactions
	return &transaction, tx.
		Where("order_id = ? AND status = ?", orderID, domain.TX_CONFIRMED).
		First(&transaction).Error
}

func (r *TransactionsRepo) List(tx *gorm.DB, filter TxFilter) ([]domain.Transactions, int64, decimal.Decimal, error) {
	query := tx.Model(&domain.Transactions{}).Where("app_id = ?", filter.AppID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Chain != "" {
		query = query.Where("chain = ?", filter.Chain)
	}
	if filter.Asset != "" {
		query = query.Where("asset = ?", filter.Asset)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, decimal.Zero, err
	}

	var transactions []domain.Transactions
	err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&transactions).Error
	if err != nil {
		return nil, 0, decimal.Zero, err
	}

	// volume is for the returned page only, not the whole filter set
	volume := decimal.Zero
	for _, transaction := range transactions {
		volume = volume.Add(transaction.UsdValue)
	}

	return transactions, total, volume, nil
}

func (r *TransactionsRepo) SumUsdByAsset(tx *gorm.DB, appID string) (map[string]decimal.Decimal, error) {
	return r.sumUsdBy(tx, appID, "asset")
}

func (r *TransactionsRepo) SumUsdByChain(tx *gorm.DB, appID string) (map[string]decimal.Decimal, error) {
	return r.sumUsdBy(tx, appID, "chain")
}

func (r *TransactionsRepo) sumUsdBy(tx *gorm.DB, appID, column string) (map[string]decimal.Decimal, error) {
	var rows []struct {
		Key   string
		Total decimal.Decimal
	}

	err := tx.Model(&domain.Transactions{}).
		Select(column+" as key, coalesce(sum(usd_value), 0) as total").
		Where("app_id = ? AND status = ?", appID, domain.TX_CONFIRMED).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[row.Key] = row.Total
	}
	return sums, nil
}

func (r *TransactionsRepo) Recent(tx *gorm.DB, appID string, limit int) ([]domain.Transactions, error) {
	var transactions []domain.Transactions
	return transactions, tx.
		Where("app_id = ?", appID).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
}
