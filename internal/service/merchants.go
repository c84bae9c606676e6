package service

import (
	"kairopay/internal/domain"
	"kairopay/internal/infra/postgres"
	"kairopay/internal/repository"
	"kairopay/pkg/ident"

	"gorm.io/gorm"
)

type RegisterParams struct {
	PrivyDID  string
	EvmWallet string
	SolWallet string
}

type CreateAppParams struct {
	PrivyDID   string
	Name       string
	WebhookURL string
}

type MerchantsService struct {
	db   *gorm.DB
	repo repository.Merchants
}

func NewMerchantsService(db *gorm.DB, repo repository.Merchants) *MerchantsService {
	return &MerchantsService{db: db, repo: repo}
}

func (s *MerchantsService) Register(tx *gorm.DB, params RegisterParams) (*domain.Merchants, error) {
	_, err := s.repo.FindByPrivyDID(tx, params.PrivyDID)
	if err == nil {
		return nil, domain.ErrMerchantExists
	}
	if !postgres.IsNotFound(err) {
		return nil, err
	}

	merchant := &domain.Merchants{
		MerchantID: ident.NewMerchantID(),
		PrivyDID:   params.PrivyDID,
		EvmWallet:  params.EvmWallet,
		SolWallet:  params.SolWallet,
	}

	err = s.repo.Create(tx, merchant)
	if err != nil {
		// lost the race on the privy_did unique index
		if postgres.IsDuplicate(err) {
			return nil, domain.ErrMerchantExists
		}
		return nil, err
	}
	return merchant, nil
}

// CreateApp returns the new app and its plaintext api key. The key is
// handed out exactly once; only the hash survives.
func (s *MerchantsService) CreateApp(tx *gorm.DB, params CreateAppParams) (*domain.Apps, string, error) {
	merchant, err := s.repo.FindByPrivyDID(tx, params.PrivyDID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, "", domain.ErrMerchantNotFound
		}
		return nil, "", err
	}

	apiKey := ident.NewAPIKey()
	hash, err := ident.HashAPIKey(apiKey)
	if err != nil {
		return nil, "", err
	}

	app := &domain.Apps{
		MerchantID: merchant.MerchantID,
		AppID:      ident.NewAppID(),
		ApiKeyHash: hash,
		Name:       params.Name,
		WebhookURL: params.WebhookURL,
	}

	err = s.repo.AddApp(tx, app)
	if err != nil {
		return nil, "", err
	}
	return app, apiKey, nil
}

func (s *MerchantsService) FindByPrivyDID(tx *gorm.DB, privyDID string) (*domain.Merchants, error) {
	merchant, err := s.repo.FindByPrivyDID(tx, privyDID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, err
	}
	return merchant, nil
}

func (s *MerchantsService) FindApp(tx *gorm.DB, appID string) (*domain.Apps, error) {
	app, err := s.repo.FindApp(tx, appID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrAppNotFound
		}
		return nil, err
	}
	return app, nil
}
