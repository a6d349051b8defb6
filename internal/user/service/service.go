package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-portal/internal/config"
	"talent-portal/internal/logger"
	"talent-portal/internal/notification"
	"talent-portal/internal/user/model"
	"talent-portal/internal/user/validator"
	appErrors "talent-portal/pkg/errors"
	"talent-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserStore is the persistence contract for user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	SetVerified(ctx context.Context, userID uuid.UUID) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// TokenStore is the persistence contract for opaque single-use tokens.
type TokenStore interface {
	CreateToken(ctx context.Context, token *model.Token) error
	GetToken(ctx context.Context, value string, tokenType model.TokenType) (*model.Token, error)
	ConsumeToken(ctx context.Context, value string, tokenType model.TokenType, lifespan time.Duration) (*model.Token, error)
	DeleteUserTokens(ctx context.Context, userID uuid.UUID, tokenType model.TokenType) error
	DeleteExpiredTokens(ctx context.Context, lifespan time.Duration) error
}

// RefreshTokenStore is the persistence contract for issued refresh tokens.
type RefreshTokenStore interface {
	CreateRefreshToken(ctx context.Context, token *model.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*model.RefreshToken, error)
	RevokeToken(ctx context.Context, tokenID uuid.UUID) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredTokens(ctx context.Context, olderThan time.Duration) error
}

type UserService struct {
	users         UserStore
	tokens        TokenStore
	refreshTokens RefreshTokenStore
	dispatcher    notification.Dispatcher
	config        *config.Config
}

func NewService(
	users UserStore,
	tokens TokenStore,
	refreshTokens RefreshTokenStore,
	dispatcher notification.Dispatcher,
	cfg *config.Config,
) *UserService {
	return &UserService{
		users:         users,
		tokens:        tokens,
		refreshTokens: refreshTokens,
		dispatcher:    dispatcher,
		config:        cfg,
	}
}

func (s *UserService) Register(ctx context.Context, request *model.RegisterRequest) (*model.UserResponse, error) {
	if err := validator.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := utils.ValidatePassword(request.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	roles := model.DefaultRoles()
	if len(request.Roles) > 0 {
		roles = make(model.RoleSet, len(request.Roles))
		for i, r := range request.Roles {
			roles[i] = model.Role(r)
		}
		if !roles.Valid() {
			return nil, appErrors.ErrInvalidUserRole
		}
	}

	existingUser, err := s.users.GetUserByEmail(ctx, request.Email)
	if err != nil && !errors.Is(err, appErrors.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		logger.Warn("Registration attempt with existing email",
			zap.String("email", request.Email),
			zap.String("event", "registration_failed_duplicate_email"),
		)
		return nil, appErrors.ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:          request.Email,
		PasswordHashed: hashedPassword,
		Firstname:      request.Firstname,
		Lastname:       request.Lastname,
		Phone:          request.Phone,
		ImageURL:       request.ImageURL,
		Roles:          roles,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueVerificationToken(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.Strings("roles", user.Roles.Strings()),
		zap.String("event", "user_registered"),
	)

	return user.ToResponse(), nil
}

// VerifyAccount consumes a valid verification token and marks its owner
// verified. The token is gone afterwards, so a second attempt with the
// same value fails.
func (s *UserService) VerifyAccount(ctx context.Context, request *model.VerifyAccountRequest) error {
	if err := validator.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	token, err := s.tokens.ConsumeToken(ctx, request.Token,
		model.TokenTypeAccountVerification, s.config.Token.Lifespan())
	if err != nil {
		return err
	}

	if err := s.users.SetVerified(ctx, token.UserID); err != nil {
		return err
	}

	if user, err := s.users.GetUserByID(ctx, token.UserID); err == nil {
		s.dispatcher.Dispatch(notification.WelcomeMessage(user.Email, user.Firstname))
	}

	logger.Info("Account verified",
		zap.String("user_id", token.UserID.String()),
		zap.String("event", "account_verified"),
	)

	return nil
}

func (s *UserService) ResendVerification(ctx context.Context, request *model.ResendVerificationRequest) error {
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

	return s.issueVerificationToken(ctx, user)
}

func (s *UserService) Login(ctx context.Context, request *model.LoginRequest) (*model.AuthResponse, error) {
	if err := validator.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.users.GetUserByEmail(ctx, request.Email)
	if err != nil {
		if errors.Is(err, appErrors.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", request.Email),
				zap.String("event", "login_failed_user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		logger.Warn("Login attempt for inactive user",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_inactive_user"),
		)
		return nil, appErrors.ErrUserInactive
	}

	if !utils.CheckPassword(user.PasswordHashed, request.Password) {
		logger.Warn("Login attempt with wrong password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_wrong_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	tokenPair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "user_logged_in"),
	)

	return &model.AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    tokenPair.ExpiresAt,
	}, nil
}

// issueTokenPair refuses unverified accounts, signs a fresh JWT pair and
// persists the refresh token so it can be revoked later.
func (s *UserService) issueTokenPair(ctx context.Context, user *model.User) (*utils.TokenPair, error) {
	if !user.Verified {
		return nil, appErrors.ErrAccountNotVerified
	}

	tokenPair, err := utils.GenerateTokenPair(
		user,
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
		s.config.JWT.RefreshExpiryHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	refreshToken := &model.RefreshToken{
		UserID:    user.ID,
		Token:     tokenPair.RefreshToken,
		ExpiresAt: time.Now().Add(time.Duration(s.config.JWT.RefreshExpiryHours) * time.Hour),
	}
	if err := s.refreshTokens.CreateRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return tokenPair, nil
}

func (s *UserService) issueVerificationToken(ctx context.Context, user *model.User) error {
	value, err := utils.GenerateVerificationToken()
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	token := &model.Token{
		UserID: user.ID,
		Token:  value,
		Type:   model.TokenTypeAccountVerification,
	}
	if err := s.tokens.CreateToken(ctx, token); err != nil {
		return err
	}

	verifyURL := fmt.Sprintf("%s/api/v1/auth/register/verify?token=%s",
		s.config.Server.BaseURL, token.Token)
	s.dispatcher.Dispatch(notification.AccountVerificationMessage(user.Email, user.Firstname, verifyURL))

	return nil
}

func (s *UserService) RefreshToken(ctx context.Context, request *model.RefreshTokenRequest) (*utils.TokenPair, error) {
	if err := validator.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	claims, err := utils.ValidateToken(request.RefreshToken, s.config.JWT.Secret)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		return nil, appErrors.ErrInvalidToken
	}

	stored, err := s.refreshTokens.GetRefreshToken(ctx, request.RefreshToken)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, appErrors.ErrUserInactive
	}

	// Rotate: the presented refresh token is retired before a new pair
	// is issued.
	if err := s.refreshTokens.RevokeToken(ctx, stored.ID); err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	return s.issueTokenPair(ctx, user)
}

// RevokeToken invalidates a stored refresh token. The access token
// remains valid until its own expiry; revocation only stops renewal.
func (s *UserService) RevokeToken(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	stored, err := s.refreshTokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	if stored.UserID != userID {
		return appErrors.ErrUnauthorized
	}

	if err := s.refreshTokens.RevokeToken(ctx, stored.ID); err != nil {
		return err
	}

	logger.Info("Refresh token revoked",
		zap.String("user_id", userID.String()),
		zap.String("event", "refresh_token_revoked"),
	)

	return nil
}
