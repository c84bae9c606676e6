package service

import (
	"strings"

	"kairopay/internal/domain"
	"kairopay/internal/infra/postgres"
	"kairopay/internal/repository"
	"kairopay/pkg/ident"

	"gorm.io/gorm"
)

type AuthService struct {
	db       *gorm.DB
	repo     repository.Merchants
	verifier TokenVerifier
}

func NewAuthService(db *gorm.DB, repo repository.Merchants, verifier TokenVerifier) *AuthService {
	return &AuthService{db: db, repo: repo, verifier: verifier}
}

func (s *AuthService) Authenticate(tx *gorm.DB, authHeader, expectedAppID string) (*domain.AuthContext, error) {
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return nil, domain.ErrMissingAuthHeader
	}

	if domain.ClassifyCredential(token) == domain.CREDENTIAL_API_KEY {
		return s.resolveApiKey(tx, token, expectedAppID)
	}
	return s.resolveSessionToken(tx, token, expectedAppID)
}

// resolveApiKey scans every app's stored hash until one verifies. Linear in
// the total app count; fine at this scale, revisit with a key-prefix index
// if the merchant base grows.
func (s *AuthService) resolveApiKey(tx *gorm.DB, apiKey, expectedAppID string) (*domain.AuthContext, error) {
	if len(apiKey) != ident.APIKeyLength {
		return nil, domain.ErrInvalidApiKeyFormat
	}

	merchants, err := s.repo.FindAllWithApps(tx)
	if err != nil {
		return nil, err
	}

	for i := range merchants {
		merchant := &merchants[i]
		for j := range merchant.Apps {
			app := &merchant.Apps[j]
			if !ident.VerifyAPIKey(apiKey, app.ApiKeyHash) {
				continue
			}
			if expectedAppID != "" && app.AppID != expectedAppID {
				return nil, domain.ErrApiKeyWrongApp
			}
			return &domain.AuthContext{
				MerchantID: merchant.MerchantID,
				AppID:      app.AppID,
				PrivyDID:   merchant.PrivyDID,
			}, nil
		}
	}

	return nil, domain.ErrInvalidApiKey
}

func (s *AuthService) resolveSessionToken(tx *gorm.DB, token, expectedAppID string) (*domain.AuthContext, error) {
	subject, err := s.verifier.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidSessionToken
	}

	merchant, err := s.repo.FindByPrivyDID(tx, subject)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrMerchantNotFound
		}
		return nil, err
	}

	var app *domain.Apps
	if expectedAppID != "" {
		app = merchant.FindApp(expectedAppID)
	} else {
		// no app requested: fall back to the merchant's first app
		app = merchant.FirstApp()
	}
	if app == nil {
		return nil, domain.ErrAppNotFound
	}

	return &domain.AuthContext{
		MerchantID: merchant.MerchantID,
		AppID:      app.AppID,
		PrivyDID:   merchant.PrivyDID,
	}, nil
}
