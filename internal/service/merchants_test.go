package service

import (
	"strings"
	"testing"

	"kairopay/internal/domain"
	"kairopay/pkg/ident"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMerchant(t *testing.T) {
	s := NewMerchantsService(nil, newFakeMerchantsRepo())

	merchant, err := s.Register(nil, RegisterParams{
		PrivyDID:  "did:privy:alpha",
		EvmWallet: "0x1111111111111111111111111111111111111111",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(merchant.MerchantID, "m_"))
	assert.Equal(t, "did:privy:alpha", merchant.PrivyDID)

	// same subject cannot register twice
	_, err = s.Register(nil, RegisterParams{PrivyDID: "did:privy:alpha"})
	assert.ErrorIs(t, err, domain.ErrMerchantExists)
}

func TestCreateApp(t *testing.T) {
	repo := newFakeMerchantsRepo()
	s := NewMerchantsService(nil, repo)

	merchant, err := s.Register(nil, RegisterParams{PrivyDID: "did:privy:beta"})
	require.NoError(t, err)

	app, apiKey, err := s.CreateApp(nil, CreateAppParams{
		PrivyDID:   merchant.PrivyDID,
		Name:       "Shop",
		WebhookURL: "https://shop.example.com/hooks",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(app.AppID, "app_"))
	assert.Len(t, apiKey, ident.APIKeyLength)
	// only the hash is stored, and it verifies the plaintext
	assert.NotEqual(t, apiKey, app.ApiKeyHash)
	assert.True(t, ident.VerifyAPIKey(apiKey, app.ApiKeyHash))

	stored, err := s.FindByPrivyDID(nil, merchant.PrivyDID)
	require.NoError(t, err)
	require.Len(t, stored.Apps, 1)
	assert.Equal(t, app.AppID, stored.Apps[0].AppID)
}

func TestCreateAppUnknownMerchant(t *testing.T) {
	s := NewMerchantsService(nil, newFakeMerchantsRepo())

	_, _, err := s.CreateApp(nil, CreateAppParams{PrivyDID: "did:privy:nobody", Name: "Shop"})
	assert.ErrorIs(t, err, domain.ErrMerchantNotFound)
}

func TestFindAppNotFound(t *testing.T) {
	s := NewMerchantsService(nil, newFakeMerchantsRepo())

	_, err := s.FindApp(nil, "app_missing000000000")
	assert.ErrorIs(t, err, domain.ErrAppNotFound)
}
