package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dkurganov/gift-marketplace/pkg/common"
)

// Service handles user lookups
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new user service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Find returns a user by id
func (s *Service) Find(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError(fmt.Sprintf("user not found (id=%d)", id), nil)
		}
		return nil, err
	}
	return user, nil
}

// FindAll returns a page of users
func (s *Service) FindAll(ctx context.Context, limit, offset int) ([]User, int64, error) {
	result, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if result == nil {
		result = []User{}
	}
	return result, total, nil
}
