package service

import (
	"context"
	"os"
	"testing"
	"time"

	"talent-portal/internal/config"
	"talent-portal/internal/logger"
	"talent-portal/internal/user/model"
	appErrors "talent-portal/pkg/errors"
	"talent-portal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Init("development"); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

type testEnv struct {
	users      *fakeUserStore
	tokens     *fakeTokenStore
	refresh    *fakeRefreshTokenStore
	dispatcher *fakeDispatcher
	service    *UserService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:      newFakeUserStore(),
		tokens:     newFakeTokenStore(),
		refresh:    newFakeRefreshTokenStore(),
		dispatcher: &fakeDispatcher{},
	}
	cfg := &config.Config{
		Server: config.ServerConfig{BaseURL: "http://localhost:8080"},
		JWT: config.JWTConfig{
			Secret:             "test-secret",
			ExpiryHours:        1,
			RefreshExpiryHours: 24,
		},
		Token: config.TokenConfig{LifespanHours: 24},
	}
	env.service = NewService(env.users, env.tokens, env.refresh, env.dispatcher, cfg)
	return env
}

func (env *testEnv) register(t *testing.T, email string) (*model.UserResponse, string) {
	t.Helper()

	user, err := env.service.Register(context.Background(), &model.RegisterRequest{
		Email:     email,
		Password:  "pAssw0rd!",
		Firstname: "Jane",
		Lastname:  "Doe",
	})
	require.NoError(t, err)

	tokens := env.tokens.tokensOfType(model.TokenTypeAccountVerification)
	require.NotEmpty(t, tokens)
	var value string
	for _, token := range tokens {
		if token.UserID == user.ID {
			value = token.Token
		}
	}
	require.NotEmpty(t, value)

	return user, value
}

func (env *testEnv) registerVerified(t *testing.T, email string) *model.UserResponse {
	t.Helper()

	user, token := env.register(t, email)
	require.NoError(t, env.service.VerifyAccount(context.Background(),
		&model.VerifyAccountRequest{Token: token}))
	return user
}

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	env := newTestEnv()

	user, token := env.register(t, "user@example.com")

	assert.Equal(t, "user@example.com", user.Email)
	assert.False(t, user.Verified)
	assert.True(t, user.IsActive)
	assert.Equal(t, []string{"CANDIDATE"}, user.Roles)
	assert.Len(t, token, model.VerificationTokenLength)

	messages := env.dispatcher.sent()
	require.Len(t, messages, 1)
	assert.Equal(t, "Account Verification", messages[0].Subject)
	assert.Equal(t, "user@example.com", messages[0].To)
	assert.Contains(t, messages[0].Text, token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	env.register(t, "user@example.com")

	_, err := env.service.Register(context.Background(), &model.RegisterRequest{
		Email:     "user@example.com",
		Password:  "pAssw0rd!",
		Firstname: "John",
		Lastname:  "Smith",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserAlreadyExists)
}

func TestRegisterWeakPassword(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Register(context.Background(), &model.RegisterRequest{
		Email:     "user@example.com",
		Password:  "weakpassword",
		Firstname: "Jane",
		Lastname:  "Doe",
	})

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WEAK_PASSWORD", appErr.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Register(context.Background(), &model.RegisterRequest{
		Email:     "user@example.com",
		Password:  "pAssw0rd!",
		Firstname: "Jane",
		Lastname:  "Doe",
		Roles:     []string{"CANDIDATE", "CANDIDATE"},
	})
	assert.Error(t, err)
}

func TestLoginBeforeVerification(t *testing.T) {
	env := newTestEnv()
	env.register(t, "user@example.com")

	_, err := env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "pAssw0rd!",
	})
	assert.ErrorIs(t, err, appErrors.ErrAccountNotVerified)
}

func TestVerifyAccountThenLogin(t *testing.T) {
	env := newTestEnv()
	_, token := env.register(t, "user@example.com")

	err := env.service.VerifyAccount(context.Background(), &model.VerifyAccountRequest{Token: token})
	require.NoError(t, err)

	response, err := env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "pAssw0rd!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, response.AccessToken)
	require.NotEmpty(t, response.RefreshToken)
	assert.True(t, response.User.Verified)

	claims, err := utils.ValidateToken(response.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, []string{"CANDIDATE"}, claims.Roles)
	assert.Equal(t, "Jane Doe", claims.FullName)
}

func TestVerifyTokenSingleUse(t *testing.T) {
	env := newTestEnv()
	_, token := env.register(t, "user@example.com")

	require.NoError(t, env.service.VerifyAccount(context.Background(),
		&model.VerifyAccountRequest{Token: token}))

	err := env.service.VerifyAccount(context.Background(), &model.VerifyAccountRequest{Token: token})
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)
}

func TestVerifyExpiredToken(t *testing.T) {
	env := newTestEnv()
	user, value := env.register(t, "user@example.com")

	env.tokens.mu.Lock()
	env.tokens.tokens[value].CreatedAt = time.Now().Add(-25 * time.Hour)
	env.tokens.mu.Unlock()

	err := env.service.VerifyAccount(context.Background(), &model.VerifyAccountRequest{Token: value})
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)

	stored, err := env.users.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Verified)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv()
	user := env.registerVerified(t, "user@example.com")

	_, err := env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "pAssw0rd!",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	env.users.mu.Lock()
	env.users.users[user.ID].IsActive = false
	env.users.mu.Unlock()

	_, err = env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "pAssw0rd!",
	})
	assert.ErrorIs(t, err, appErrors.ErrUserInactive)
}

func TestResendVerificationUnknownEmail(t *testing.T) {
	env := newTestEnv()

	err := env.service.ResendVerification(context.Background(),
		&model.ResendVerificationRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidEmail)
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv()
	env.registerVerified(t, "user@example.com")

	err := env.service.RequestPasswordReset(context.Background(),
		&model.PasswordResetRequest{Email: "user@example.com"})
	require.NoError(t, err)

	resetTokens := env.tokens.tokensOfType(model.TokenTypePasswordReset)
	require.Len(t, resetTokens, 1)
	code := resetTokens[0].Token
	assert.Len(t, code, model.ResetTokenLength)

	err = env.service.ValidateResetToken(context.Background(),
		&model.ValidateResetTokenRequest{Token: code})
	require.NoError(t, err)

	err = env.service.ChangePasswordWithReset(context.Background(), &model.PasswordResetChangeRequest{
		Token:       code,
		NewPassword: "newPassw0rd!",
	})
	require.NoError(t, err)

	_, err = env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "pAssw0rd!",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "newPassw0rd!",
	})
	assert.NoError(t, err)
}

func TestResetTokenConsumedOnce(t *testing.T) {
	env := newTestEnv()
	env.registerVerified(t, "user@example.com")

	require.NoError(t, env.service.RequestPasswordReset(context.Background(),
		&model.PasswordResetRequest{Email: "user@example.com"}))

	code := env.tokens.tokensOfType(model.TokenTypePasswordReset)[0].Token

	require.NoError(t, env.service.ChangePasswordWithReset(context.Background(),
		&model.PasswordResetChangeRequest{Token: code, NewPassword: "newPassw0rd!"}))

	err := env.service.ValidateResetToken(context.Background(),
		&model.ValidateResetTokenRequest{Token: code})
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)

	err = env.service.ChangePasswordWithReset(context.Background(),
		&model.PasswordResetChangeRequest{Token: code, NewPassword: "anotherPassw0rd!"})
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	env := newTestEnv()

	err := env.service.RequestPasswordReset(context.Background(),
		&model.PasswordResetRequest{Email: "nobody@example.com"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidEmail)
}

func TestRequestPasswordResetInvalidatesPrevious(t *testing.T) {
	env := newTestEnv()
	env.registerVerified(t, "user@example.com")

	require.NoError(t, env.service.RequestPasswordReset(context.Background(),
		&model.PasswordResetRequest{Email: "user@example.com"}))
	first := env.tokens.tokensOfType(model.TokenTypePasswordReset)[0].Token

	require.NoError(t, env.service.RequestPasswordReset(context.Background(),
		&model.PasswordResetRequest{Email: "user@example.com"}))

	err := env.service.ValidateResetToken(context.Background(),
		&model.ValidateResetTokenRequest{Token: first})
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)

	remaining := env.tokens.tokensOfType(model.TokenTypePasswordReset)
	assert.Len(t, remaining, 1)
}

func TestRefreshTokenRotation(t *testing.T) {
	env := newTestEnv()
	env.registerVerified(t, "user@example.com")

	response, err := env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "pAssw0rd!",
	})
	require.NoError(t, err)

	pair, err := env.service.RefreshToken(context.Background(),
		&model.RefreshTokenRequest{RefreshToken: response.RefreshToken})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)

	// The old refresh token has been rotated out.
	_, err = env.service.RefreshToken(context.Background(),
		&model.RefreshTokenRequest{RefreshToken: response.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv()
	env.registerVerified(t, "user@example.com")

	response, err := env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "pAssw0rd!",
	})
	require.NoError(t, err)

	_, err = env.service.RefreshToken(context.Background(),
		&model.RefreshTokenRequest{RefreshToken: response.AccessToken})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestRevokeToken(t *testing.T) {
	env := newTestEnv()
	user := env.registerVerified(t, "user@example.com")

	response, err := env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "pAssw0rd!",
	})
	require.NoError(t, err)

	require.NoError(t, env.service.RevokeToken(context.Background(), user.ID, response.RefreshToken))

	_, err = env.service.RefreshToken(context.Background(),
		&model.RefreshTokenRequest{RefreshToken: response.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv()
	user := env.registerVerified(t, "user@example.com")

	err := env.service.ChangePassword(context.Background(), user.ID, &model.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "newPassw0rd!",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	err = env.service.ChangePassword(context.Background(), user.ID, &model.ChangePasswordRequest{
		OldPassword: "pAssw0rd!",
		NewPassword: "newPassw0rd!",
	})
	require.NoError(t, err)

	_, err = env.service.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "newPassw0rd!",
	})
	assert.NoError(t, err)
}

func TestUpdateProfilePermissions(t *testing.T) {
	env := newTestEnv()
	owner := env.registerVerified(t, "owner@example.com")
	other := env.registerVerified(t, "other@example.com")

	firstname := "Janet"
	request := &model.UpdateProfileRequest{Firstname: &firstname}

	_, err := env.service.UpdateProfile(context.Background(),
		other.ID, model.RoleSet{model.RoleCandidate}, owner.ID, request)
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)

	updated, err := env.service.UpdateProfile(context.Background(),
		owner.ID, model.RoleSet{model.RoleCandidate}, owner.ID, request)
	require.NoError(t, err)
	assert.Equal(t, "Janet", updated.Firstname)

	lastname := "Smith"
	updated, err = env.service.UpdateProfile(context.Background(),
		other.ID, model.RoleSet{model.RoleAdmin}, owner.ID,
		&model.UpdateProfileRequest{Lastname: &lastname})
	require.NoError(t, err)
	assert.Equal(t, "Smith", updated.Lastname)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv()
	user := env.registerVerified(t, "user@example.com")

	require.NoError(t, env.service.DeleteUser(context.Background(), user.ID))

	_, err := env.service.GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)

	err = env.service.DeleteUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
}
