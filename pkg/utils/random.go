package utils

import (
	"crypto/rand"
	"fmt"

	"talent-portal/internal/user/model"
)

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateVerificationToken returns the long opaque value used for
// account verification links.
func GenerateVerificationToken() (string, error) {
	return randomString(model.VerificationTokenLength)
}

// GenerateResetToken returns the short opaque code mailed out for
// password resets.
func GenerateResetToken() (string, error) {
	return randomString(model.ResetTokenLength)
}

func randomString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i, b := range bytes {
		bytes[i] = tokenCharset[int(b)%len(tokenCharset)]
	}

	return string(bytes), nil
}
