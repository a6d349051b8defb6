package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-portal/internal/database"
	"talent-portal/internal/user/model"
	appErrors "talent-portal/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenRepository struct {
	db *database.Database
}

func NewTokenRepository(db *database.Database) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) CreateToken(ctx context.Context, token *model.Token) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetToken(ctx context.Context, value string, tokenType model.TokenType) (*model.Token, error) {
	var token model.Token
	err := r.db.DB.WithContext(ctx).
		Where("token = ? AND type = ?", value, tokenType).
		First(&token).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return &token, nil
}

// ConsumeToken deletes a token in a single compare-and-delete statement
// so two concurrent requests can never both consume it: only the request
// whose DELETE reports an affected row wins. Tokens past their lifespan
// never match the cutoff and are reported as invalid.
func (r *TokenRepository) ConsumeToken(ctx context.Context, value string, tokenType model.TokenType, lifespan time.Duration) (*model.Token, error) {
	token, err := r.GetToken(ctx, value, tokenType)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-lifespan)
	result := r.db.DB.WithContext(ctx).
		Where("id = ? AND created_at > ?", token.ID, cutoff).
		Delete(&model.Token{})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to consume token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, appErrors.ErrTokenInvalid
	}

	return token, nil
}

func (r *TokenRepository) DeleteUserTokens(ctx context.Context, userID uuid.UUID, tokenType model.TokenType) error {
	result := r.db.DB.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, tokenType).
		Delete(&model.Token{})

	return result.Error
}

func (r *TokenRepository) DeleteExpiredTokens(ctx context.Context, lifespan time.Duration) error {
	cutoff := time.Now().Add(-lifespan)
	result := r.db.DB.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.Token{})

	return result.Error
}
