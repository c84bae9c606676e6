package repository

import (
	"kairopay/internal/domain"

	"gorm.io/gorm"
)

type MerchantsRepo struct {
}

func InitMerchantsRepo() *MerchantsRepo {
	return &MerchantsRepo{}
}

func (r *MerchantsRepo) Create(tx *gorm.DB, merchant *domain.Merchants) error {
	return tx.Create(merchant).Error
}

func (r *MerchantsRepo) FindByMerchantID(tx *gorm.DB, merchantID string) (*domain.Merchants, error) {
	var merchant domain.Merchants
	return &merchant, tx.Preload("Apps").Where(&domain.Merchants{MerchantID: merchantID}).First(&merchant).Error
}

func (r *MerchantsRepo) FindByPrivyDID(tx *gorm.DB, privyDID string) (*domain.Merchants, error) {
	var merchant domain.Merchants
	return &merchant, tx.Preload("Apps").Where(&domain.Merchants{PrivyDID: privyDID}).First(&merchant).Error
}

func (r *MerchantsRepo) FindAllWithApps(tx *gorm.DB) ([]domain.Merchants, error) {
	var merchants []domain.Merchants
	return merchants, tx.Preload("Apps").Find(&merchants).Error
}

// AddApp is the only write path for apps. Merchants own their apps, so
// everything app-shaped goes through this repo.
func (r *MerchantsRepo) AddApp(tx *gorm.DB, app *domain.Apps) error {
	return tx.Create(app).Error
}

func (r *MerchantsRepo) FindApp(tx *gorm.DB, appID string) (*domain.Apps, error) {
	var app domain.Apps
	return &app, tx.Where(&domain.Apps{AppID: appID}).First(&app).Error
}
