package service

import (
	"context"
	"errors"
	"fmt"

	"talent-portal/internal/logger"
	"talent-portal/internal/notification"
	"talent-portal/internal/user/model"
	"talent-portal/internal/user/validator"
	appErrors "talent-portal/pkg/errors"
	"talent-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestPasswordReset issues a reset code for an active account and
// mails it out. Earlier unused codes for the same user are dropped so
// only the latest one can succeed.
func (s *UserService) RequestPasswordReset(ctx context.Context, request *model.PasswordResetRequest) error {
	if err := validator.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.users.GetUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			return appErrors.ErrInvalidEmail
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !user.IsActive {
		return appErrors.ErrInvalidEmail
	}

	if err := s.tokens.DeleteUserTokens(ctx, user.ID, model.TokenTypePasswordReset); err != nil {
		return fmt.Errorf("failed to invalidate previous reset tokens: %w", err)
	}

	value, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	token := &model.Token{
		UserID: user.ID,
		Token:  value,
		Type:   model.TokenTypePasswordReset,
	}
	if err := s.tokens.CreateToken(ctx, token); err != nil {
		return err
	}

	s.dispatcher.Dispatch(notification.PasswordResetMessage(user.Email, user.Firstname, token.Token))

	logger.Info("Password reset requested",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_reset_requested"),
	)

	return nil
}

// ValidateResetToken checks existence and expiry without consuming the
// token, so a client can confirm the code before asking for a new
// password.
func (s *UserService) ValidateResetToken(ctx context.Context, request *model.ValidateResetTokenRequest) error {
	if err := validator.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	token, err := s.tokens.GetToken(ctx, request.Token, model.TokenTypePasswordReset)
	if err != nil {
		return err
	}

	if token.Expired(s.config.Token.Lifespan()) {
		return appErrors.ErrTokenInvalid
	}

	return nil
}

// ChangePasswordWithReset consumes the reset token and replaces the
// password hash. Consumption is atomic, so the token cannot be spent
// twice even under concurrent requests.
func (s *UserService) ChangePasswordWithReset(ctx context.Context, request *model.PasswordResetChangeRequest) error {
	if err := validator.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(request.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	token, err := s.tokens.ConsumeToken(ctx, request.Token,
		model.TokenTypePasswordReset, s.config.Token.Lifespan())
	if err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, token.UserID, hashedPassword); err != nil {
		return err
	}

	// Existing sessions should not outlive the password they were
	// created with.
	if err := s.refreshTokens.RevokeAllUserTokens(ctx, token.UserID); err != nil {
		logger.Error("Failed to revoke refresh tokens after password reset",
			zap.String("user_id", token.UserID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Password reset completed",
		zap.String("user_id", token.UserID.String()),
		zap.String("event", "password_reset_completed"),
	)

	return nil
}

// ChangePassword replaces the password of an authenticated user after
// checking the old one.
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, request *model.ChangePasswordRequest) error {
	if err := validator.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(request.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(user.PasswordHashed, request.OldPassword) {
		return appErrors.ErrInvalidCredentials
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, hashedPassword)
}
