package orders

import (
	"context"

	"github.com/dkurganov/gift-marketplace/internal/certificates"
	"github.com/dkurganov/gift-marketplace/internal/users"
)

// RepositoryInterface defines the contract for order repository operations
type RepositoryInterface interface {
	Create(ctx context.Context, order *Order) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Order, int64, error)
}

// UserFinder looks up users for order creation
type UserFinder interface {
	Find(ctx context.Context, id int64) (*users.User, error)
}

// CertificateFinder looks up certificates for order creation
type CertificateFinder interface {
	Find(ctx context.Context, id int64) (*certificates.GiftCertificate, error)
}
