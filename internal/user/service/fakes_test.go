package service

import (
	"context"
	"sync"
	"time"

	"talent-portal/internal/notification"
	"talent-portal/internal/user/model"
	appErrors "talent-portal/pkg/errors"

	"github.com/google/uuid"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*model.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return appErrors.ErrUserAlreadyExists
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	user.IsActive = true
	user.Verified = false
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, appErrors.ErrUserNotFound
}

func (s *fakeUserStore) GetUserByID(_ context.Context, userID uuid.UUID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, appErrors.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) ListUsers(_ context.Context, limit, offset int) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, *user)
	}
	if offset >= len(users) {
		return nil, nil
	}
	users = users[offset:]
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (s *fakeUserStore) UpdateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return appErrors.ErrUserNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return appErrors.ErrUserNotFound
	}
	user.PasswordHashed = passwordHash
	return nil
}

func (s *fakeUserStore) SetVerified(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return appErrors.ErrUserNotFound
	}
	user.Verified = true
	return nil
}

func (s *fakeUserStore) DeleteUser(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return appErrors.ErrUserNotFound
	}
	delete(s.users, userID)
	return nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*model.Token
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*model.Token)}
}

func (s *fakeTokenStore) CreateToken(_ context.Context, token *model.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	s.tokens[token.Token] = token
	return nil
}

func (s *fakeTokenStore) GetToken(_ context.Context, value string, tokenType model.TokenType) (*model.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[value]
	if !ok || token.Type != tokenType {
		return nil, appErrors.ErrTokenInvalid
	}
	return token, nil
}

func (s *fakeTokenStore) ConsumeToken(_ context.Context, value string, tokenType model.TokenType, lifespan time.Duration) (*model.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[value]
	if !ok || token.Type != tokenType || token.Expired(lifespan) {
		return nil, appErrors.ErrTokenInvalid
	}
	delete(s.tokens, value)
	return token, nil
}

func (s *fakeTokenStore) DeleteUserTokens(_ context.Context, userID uuid.UUID, tokenType model.TokenType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for value, token := range s.tokens {
		if token.UserID == userID && token.Type == tokenType {
			delete(s.tokens, value)
		}
	}
	return nil
}

func (s *fakeTokenStore) DeleteExpiredTokens(_ context.Context, lifespan time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for value, token := range s.tokens {
		if token.Expired(lifespan) {
			delete(s.tokens, value)
		}
	}
	return nil
}

func (s *fakeTokenStore) tokensOfType(tokenType model.TokenType) []*model.Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Token
	for _, token := range s.tokens {
		if token.Type == tokenType {
			out = append(out, token)
		}
	}
	return out
}

type fakeRefreshTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*model.RefreshToken
}

func newFakeRefreshTokenStore() *fakeRefreshTokenStore {
	return &fakeRefreshTokenStore{tokens: make(map[string]*model.RefreshToken)}
}

func (s *fakeRefreshTokenStore) CreateRefreshToken(_ context.Context, token *model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	token.UpdatedAt = time.Now()
	token.Revoked = false
	s.tokens[token.Token] = token
	return nil
}

func (s *fakeRefreshTokenStore) GetRefreshToken(_ context.Context, value string) (*model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[value]
	if !ok || !token.IsActive() {
		return nil, appErrors.ErrTokenInvalid
	}
	return token, nil
}

func (s *fakeRefreshTokenStore) RevokeToken(_ context.Context, tokenID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, token := range s.tokens {
		if token.ID == tokenID && !token.Revoked {
			token.Revoked = true
			token.RevokedAt = time.Now()
			return nil
		}
	}
	return appErrors.ErrTokenInvalid
}

func (s *fakeRefreshTokenStore) RevokeAllUserTokens(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, token := range s.tokens {
		if token.UserID == userID && !token.Revoked {
			token.Revoked = true
			token.RevokedAt = time.Now()
		}
	}
	return nil
}

func (s *fakeRefreshTokenStore) DeleteExpiredTokens(_ context.Context, olderThan time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	for value, token := range s.tokens {
		if token.ExpiresAt.Before(cutoff) {
			delete(s.tokens, value)
		}
	}
	return nil
}

type fakeDispatcher struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (d *fakeDispatcher) Dispatch(msg notification.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
}

func (d *fakeDispatcher) sent() []notification.Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notification.Message(nil), d.messages...)
}
