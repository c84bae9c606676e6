package domain

import "strings"

// AuthContext is the common resolution of both credential spaces.
type AuthContext struct {
	MerchantID string
	AppID      string
	PrivyDID   string
}

// Credential is the tagged union of the two bearer token shapes.
type Credential uint8

const (
	CREDENTIAL_API_KEY Credential = iota
	CREDENTIAL_SESSION_TOKEN
)

// ClassifyCredential decides which space a bearer token belongs to.
// Api keys always carry the "sk" prefix; everything else is assumed to
// be an identity-provider session token.
func ClassifyCredential(token string) Credential {
	if strings.HasPrefix(token, "sk") {
		return CREDENTIAL_API_KEY
	}
	return CREDENTIAL_SESSION_TOKEN
}
