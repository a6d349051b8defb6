package service

import (
	"context"

	"talent-portal/internal/logger"
	"talent-portal/internal/user/model"
	"talent-portal/internal/user/validator"
	appErrors "talent-portal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*model.UserResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.users.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

// UpdateProfile applies a partial update. Only the profile's owner or
// an admin may modify an account.
func (s *UserService) UpdateProfile(ctx context.Context, actorID uuid.UUID, actorRoles model.RoleSet, targetID uuid.UUID, request *model.UpdateProfileRequest) (*model.UserResponse, error) {
	if err := validator.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if actorID != targetID && !actorRoles.Has(model.RoleAdmin) && !actorRoles.Has(model.RoleSuperAdmin) {
		return nil, appErrors.ErrInsufficientPermissions
	}

	user, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if request.Firstname != nil {
		user.Firstname = *request.Firstname
	}
	if request.Lastname != nil {
		user.Lastname = *request.Lastname
	}
	if request.Phone != nil {
		user.Phone = request.Phone
	}
	if request.ImageURL != nil {
		user.ImageURL = request.ImageURL
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.refreshTokens.RevokeAllUserTokens(ctx, userID); err != nil {
		logger.Error("Failed to revoke refresh tokens before deletion",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return err
	}

	logger.Info("User deleted",
		zap.String("user_id", userID.String()),
		zap.String("event", "user_deleted"),
	)

	return nil
}
