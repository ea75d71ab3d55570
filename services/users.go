package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"ui-gallery-backend/dto"
	"ui-gallery-backend/models"
	"ui-gallery-backend/repository"
)

// UserService covers user administration.
type UserService struct {
	users repository.UserRepository
	log   *logrus.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, log *logrus.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// ListUsers pages through all accounts.
func (s *UserService) ListUsers(ctx context.Context, caller *models.User, offset, limit int) ([]dto.UserView, error) {
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = DefaultOffset
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	users, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	views := make([]dto.UserView, 0, len(users))
	for i := range users {
		views = append(views, dto.NewUserView(&users[i]))
	}
	return views, nil
}

// DeleteUser removes a user, their components and every rating attached to
// either. It reports false when the user does not exist.
func (s *UserService) DeleteUser(ctx context.Context, caller *models.User, userID uint) (bool, error) {
	if err := RequireAdmin(caller); err != nil {
		return false, err
	}

	deleted, err := s.users.DeleteCascade(ctx, userID)
	if err != nil || !deleted {
		return false, err
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "admin_id": caller.ID}).Info("user deleted")
	return true, nil
}
