package ident

import (
	"crypto/rand"
	"math/big"
)

// Alphanumeric only (no special characters)
const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Api keys are longer and exclude ambiguous characters (I, O, l, 0/O lookalikes)
const apiKeyAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz"

const (
	idLength     = 16
	apiKeyLength = 48
)

// APIKeyLength is the full length of a generated key including the "sk"
// prefix; anything else is rejected before touching the database.
const APIKeyLength = 2 + apiKeyLength

func NewMerchantID() string {
	return "m_" + randomString(idAlphabet, idLength)
}

func NewAppID() string {
	return "app_" + randomString(idAlphabet, idLength)
}

func NewOrderID() string {
	return "ord_" + randomString(idAlphabet, idLength)
}

func NewAPIKey() string {
	return "sk" + randomString(apiKeyAlphabet, apiKeyLength)
}

// randomString draws every character from crypto/rand. A broken entropy
// source makes all generated credentials guessable, so it panics instead
// of falling back to anything weaker.
func randomString(alphabet string, length int) string {
	max := big.NewInt(int64(len(alphabet)))

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("ident: crypto/rand failure: " + err.Error())
		}
		b[i] = alphabet[n.Int64()]
	}

	return string(b)
}
