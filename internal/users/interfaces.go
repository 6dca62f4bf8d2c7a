package users

import (
	"context"
)

// RepositoryInterface defines the contract for user repository operations
type RepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context, limit, offset int) ([]User, int64, error)
}
