// Session-token verification against the Privy identity provider.
// Privy access tokens are ES256 JWTs signed with a per-app key; the
// public half ships in the dashboard's environment config.
package privy

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"kairopay/internal/domain"
)

const issuer = "privy.io"

type Verifier struct {
	key   *ecdsa.PublicKey
	appID string
}

func NewVerifier(verificationKeyPEM string, appID string) (*Verifier, error) {
	key, err := jwt.ParseECPublicKeyFromPEM([]byte(verificationKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse privy verification key: %w", err)
	}
	return &Verifier{key: key, appID: appID}, nil
}

// Verify checks the token's signature, issuer, audience and expiry, and
// returns the subject (the privy did). Every failure collapses into the
// same opaque error so nothing about the token internals leaks.
func (v *Verifier) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) { return v.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(v.appID),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidSessionToken
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", domain.ErrInvalidSessionToken
	}

	return subject, nil
}
