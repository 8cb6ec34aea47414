package services

import (
	"context"

	"probuild/internal/apperr"
	"probuild/internal/models"
	"probuild/internal/repositories"
)

// UserService is read-only; accounts are managed by the identity provider.
type UserService interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context, activeOnly bool) ([]*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user", id)
	}
	return u, nil
}

func (s *userService) ListUsers(ctx context.Context, activeOnly bool) ([]*models.User, error) {
	return s.repo.List(ctx, activeOnly)
}
