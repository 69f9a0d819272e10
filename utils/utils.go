package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomToken returns a hex-encoded random token for email
// verification and password reset links.
func GenerateRandomToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
