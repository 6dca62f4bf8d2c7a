package tags

import (
	"context"
)

// RepositoryInterface defines the contract for tag repository operations
type RepositoryInterface interface {
	Create(ctx context.Context, name string) (*Tag, error)
	GetByID(ctx context.Context, id int64) (*Tag, error)
	GetByName(ctx context.Context, name string) (*Tag, error)
	ListByNames(ctx context.Context, names []string) ([]Tag, error)
	List(ctx context.Context, limit, offset int) ([]Tag, int64, error)
	Update(ctx context.Context, id int64, name string) (*Tag, error)
	Delete(ctx context.Context, id int64) error
}

// ReconcilerInterface resolves requested tag names to persisted tags
type ReconcilerInterface interface {
	Reconcile(ctx context.Context, names []string) ([]Tag, error)
}
