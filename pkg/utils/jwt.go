package utils

import (
	"errors"
	"fmt"
	"time"

	"talent-portal/internal/user/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims are the custom JWT claims carried by both token types.
// Profile claims (roles, fullname, image, phone) are only meaningful
// on access tokens but are embedded in both for symmetry.
type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	FullName  string    `json:"fullname"`
	ImageURL  string    `json:"image,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	TokenType string    `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
}

// GenerateTokenPair signs a short-lived access token and a longer-lived
// refresh token for the given user with a single HS256 secret.
func GenerateTokenPair(user *model.User, secret string, expiryHours, refreshExpiryHours int) (*TokenPair, error) {
	accessExpiry := time.Now().Add(time.Duration(expiryHours) * time.Hour)

	accessToken, err := generateToken(user, TokenTypeAccess, secret, accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := generateToken(user, TokenTypeRefresh, secret,
		time.Now().Add(time.Duration(refreshExpiryHours)*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry.Unix(),
	}, nil
}

func generateToken(user *model.User, tokenType, secret string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Roles:     user.Roles.Strings(),
		FullName:  user.FullName(),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if user.ImageURL != nil {
		claims.ImageURL = *user.ImageURL
	}
	if user.Phone != nil {
		claims.Phone = *user.Phone
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses a signed token and returns its claims. Expired,
// malformed or wrongly signed tokens are all rejected.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
