package certificates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dkurganov/gift-marketplace/internal/tags"
	"github.com/dkurganov/gift-marketplace/pkg/common"
	"github.com/dkurganov/gift-marketplace/pkg/logger"
	"github.com/dkurganov/gift-marketplace/pkg/pagination"
	"github.com/dkurganov/gift-marketplace/pkg/validation"
)

// Service handles certificate business logic
type Service struct {
	repo       RepositoryInterface
	reconciler tags.ReconcilerInterface
}

// NewService creates a new certificate service
func NewService(repo RepositoryInterface, reconciler tags.ReconcilerInterface) *Service {
	return &Service{repo: repo, reconciler: reconciler}
}

// Create persists a new certificate. Requested tag names are resolved through
// the reconciler; create and last-update timestamps are both set to now (UTC).
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*GiftCertificate, error) {
	resolved, err := s.reconcileWithRetry(ctx, TagNames(req.Tags))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cert := &GiftCertificate{
		Name:           req.Name,
		Description:    req.Description,
		Duration:       req.Duration,
		Price:          *req.Price,
		CreateDate:     now,
		LastUpdateDate: now,
		Tags:           resolved,
	}

	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

// Update applies a partial update. Only fields present in the patch are
// overwritten; a supplied tag list replaces the whole tag set after
// reconciliation. The last-update timestamp is always refreshed.
func (s *Service) Update(ctx context.Context, id int64, patch *UpdateRequest) (*GiftCertificate, error) {
	if err := validation.ValidateStruct(patch); err != nil {
		return nil, common.NewBadRequestError(err.Error(), err)
	}

	cert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError(fmt.Sprintf("certificate not found (id=%d)", id), nil)
		}
		return nil, err
	}

	if patch.Name != nil {
		cert.Name = *patch.Name
	}
	if patch.Description != nil {
		cert.Description = *patch.Description
	}
	if patch.Duration != nil {
		cert.Duration = *patch.Duration
	}
	if patch.Price != nil {
		cert.Price = *patch.Price
	}

	replaceTags := patch.Tags != nil
	if replaceTags {
		resolved, err := s.reconcileWithRetry(ctx, TagNames(*patch.Tags))
		if err != nil {
			return nil, err
		}
		cert.Tags = resolved
	}

	cert.LastUpdateDate = time.Now().UTC()

	if err := s.repo.Update(ctx, cert, replaceTags); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError(fmt.Sprintf("certificate not found (id=%d)", id), nil)
		}
		return nil, err
	}
	return cert, nil
}

// Find returns a certificate by id
func (s *Service) Find(ctx context.Context, id int64) (*GiftCertificate, error) {
	cert, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError(fmt.Sprintf("certificate not found (id=%d)", id), nil)
		}
		return nil, err
	}
	return cert, nil
}

// Delete removes a certificate. Its tags are shared entities and survive.
// A certificate already bought cannot be removed; its orders keep the row.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.NewNotFoundError(fmt.Sprintf("certificate not found (id=%d)", id), nil)
		}
		if errors.Is(err, ErrHasOrders) {
			return common.NewConflictError(fmt.Sprintf("certificate has purchase orders (id=%d)", id))
		}
		return err
	}
	return nil
}

// FindAll returns a filtered, sorted page of certificates
func (s *Service) FindAll(ctx context.Context, filters ListFilters, params pagination.Params) ([]GiftCertificate, int64, error) {
	result, total, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, 0, err
	}
	if result == nil {
		result = []GiftCertificate{}
	}
	return result, total, nil
}

// reconcileWithRetry resolves tag names, retrying once when a concurrent
// request won the race to insert the same new name. A second failure is
// reclassified as an internal error.
func (s *Service) reconcileWithRetry(ctx context.Context, names []string) ([]tags.Tag, error) {
	resolved, err := s.reconciler.Reconcile(ctx, names)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, tags.ErrDuplicateName) {
		return nil, err
	}

	logger.WithContext(ctx).Warn("tag reconciliation hit a create race, retrying", zap.Error(err))
	resolved, err = s.reconciler.Reconcile(ctx, names)
	if err != nil {
		if errors.Is(err, tags.ErrDuplicateName) {
			return nil, common.NewInternalServerError("tag reconciliation failed after retry")
		}
		return nil, err
	}
	return resolved, nil
}
