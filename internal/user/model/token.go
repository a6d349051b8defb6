package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenType tags the purpose of an opaque token.
type TokenType string

const (
	TokenTypeAccountVerification TokenType = "ACCOUNT_VERIFICATION"
	TokenTypePasswordReset       TokenType = "PASSWORD_RESET"
)

const (
	// VerificationTokenLength is the opaque value length for account verification.
	VerificationTokenLength = 100
	// ResetTokenLength is the opaque value length for password reset codes.
	ResetTokenLength = 6
)

// Token is a single-use opaque capability tied to one user.
// The validity window is purpose-independent and derived from
// configuration at check time, so only the creation instant is stored.
type Token struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Type      TokenType `gorm:"type:varchar(100);not null;default:'ACCOUNT_VERIFICATION'"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Token) TableName() string {
	return "tokens"
}

// Expired reports whether the token's lifespan has elapsed.
func (t *Token) Expired(lifespan time.Duration) bool {
	return time.Since(t.CreatedAt) >= lifespan
}
