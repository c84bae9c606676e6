package privy

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeys(t *testing.T) (*ecdsa.PrivateKey, string) {
	t.Helper()

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)

	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return privateKey, string(pemKey)
}

func signToken(t *testing.T, key *ecdsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestVerify(t *testing.T) {
	privateKey, pemKey := newTestKeys(t)

	v, err := NewVerifier(pemKey, "app-123")
	require.NoError(t, err)

	token := signToken(t, privateKey, jwt.MapClaims{
		"sub": "did:privy:test1",
		"iss": "privy.io",
		"aud": "app-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	did, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "did:privy:test1", did)
}

func TestVerifyRejects(t *testing.T) {
	privateKey, pemKey := newTestKeys(t)
	otherKey, _ := newTestKeys(t)

	v, err := NewVerifier(pemKey, "app-123")
	require.NoError(t, err)

	expired := signToken(t, privateKey, jwt.MapClaims{
		"sub": "did:privy:test1",
		"iss": "privy.io",
		"aud": "app-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	wrongIssuer := signToken(t, privateKey, jwt.MapClaims{
		"sub": "did:privy:test1",
		"iss": "someone-else",
		"aud": "app-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	wrongAudience := signToken(t, privateKey, jwt.MapClaims{
		"sub": "did:privy:test1",
		"iss": "privy.io",
		"aud": "app-456",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	wrongKey := signToken(t, otherKey, jwt.MapClaims{
		"sub": "did:privy:test1",
		"iss": "privy.io",
		"aud": "app-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	for name, token := range map[string]string{
		"expired":        expired,
		"wrong issuer":   wrongIssuer,
		"wrong audience": wrongAudience,
		"wrong key":      wrongKey,
		"garbage":        "not-a-jwt",
	} {
		_, err := v.Verify(token)
		assert.Error(t, err, name)
	}
}
