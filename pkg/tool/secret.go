package tool

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecret returns n random bytes hex-encoded, for webhook signing keys.
func GenerateSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
