package ident

import "golang.org/x/crypto/bcrypt"

// tuned so a verify takes tens of milliseconds
const hashCost = 10

// HashAPIKey returns a salted one-way hash of the plaintext key. The
// plaintext is never persisted; this hash is all that is stored.
func HashAPIKey(apiKey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyAPIKey reports whether apiKey matches the stored hash. Any
// comparison failure, malformed hash included, simply means "no match".
func VerifyAPIKey(apiKey, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(apiKey)) == nil
}
