package tags

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dkurganov/gift-marketplace/pkg/common"
)

// Service handles tag business logic
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new tag service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Create creates a new tag. Unlike reconciliation during certificate writes,
// direct creation rejects duplicate names instead of silently reusing them.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Tag, error) {
	tag, err := s.repo.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, ErrDuplicateName) {
			return nil, common.NewConflictError(fmt.Sprintf("tag with name %q already exists", req.Name))
		}
		return nil, err
	}
	return tag, nil
}

// Find returns a tag by id
func (s *Service) Find(ctx context.Context, id int64) (*Tag, error) {
	tag, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError(fmt.Sprintf("tag not found (id=%d)", id), nil)
		}
		return nil, err
	}
	return tag, nil
}

// FindAll returns a page of tags
func (s *Service) FindAll(ctx context.Context, limit, offset int) ([]Tag, int64, error) {
	result, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if result == nil {
		result = []Tag{}
	}
	return result, total, nil
}

// Update renames a tag
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRequest) (*Tag, error) {
	tag, err := s.repo.Update(ctx, id, req.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError(fmt.Sprintf("tag not found (id=%d)", id), nil)
		}
		if errors.Is(err, ErrDuplicateName) {
			return nil, common.NewConflictError(fmt.Sprintf("tag with name %q already exists", req.Name))
		}
		return nil, err
	}
	return tag, nil
}

// Delete removes a tag. Certificates referencing it keep existing with the
// tag detached from their set.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.NewNotFoundError(fmt.Sprintf("tag not found (id=%d)", id), nil)
		}
		return err
	}
	return nil
}
