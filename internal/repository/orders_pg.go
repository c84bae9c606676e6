package repository

import (
	"kairopay/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrdersRepo struct {
}

func InitOrdersRepo() *OrdersRepo {
	return &OrdersRepo{}
}

func (r *OrdersRepo) Create(tx *gorm.DB, order *domain.Orders) error {
	return tx.Create(order).Error
}

func (r *OrdersRepo) Update(tx *gorm.DB, order *domain.Orders) error {
	return tx.Save(order).Error
}

func (r *OrdersRepo) FindByOrderID(tx *gorm.DB, orderID string) (*domain.Orders, error) {
	var order domain.Orders
	return &order, tx.Where(&domain.Orders{OrderID: orderID}).First(&order).Error
}

func (r *OrdersRepo) FindByOrderIDAndApp(tx *gorm.DB, orderID, appID string) (*domain.Orders, error) {
	var order domain.Orders
	return &order, tx.Where(&domain.Orders{OrderID: orderID, AppID: appID}).First(&order).Error
}

func (r *OrdersRepo) List(tx *gorm.DB, filter OrderFilter) ([]domain.Orders, int64, error) {
	query := tx.Model(&domain.Orders{}).Where("app_id = ?", filter.AppID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Orders
	err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&orders).Error
	return orders, total, err
}

func (r *OrdersRepo) CountByStatus(tx *gorm.DB, appID string) (map[domain.OrderStatus]int64, error) {
	var rows []struct {
		Status domain.OrderStatus
		Total  int64
	}

	err := tx.Model(&domain.Orders{}).
		Select("status, count(*) as total").
		Where("app_id = ?", appID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// SumRevenue totals the usd amount of every verified order for an app.
func (r *OrdersRepo) SumRevenue(tx *gorm.DB, appID string) (decimal.Decimal, error) {
	var revenue decimal.NullDecimal

	err := tx.Model(&domain.Orders{}).
		Select("coalesce(sum(amount_usd), 0)").
		Where("app_id = ? AND status = ?", appID, domain.ORDER_VERIFIED).
		Scan(&revenue).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !revenue.Valid {
		return decimal.Zero, nil
	}
	return revenue.Decimal, nil
}
