package certificates

import (
	"context"

	"github.com/dkurganov/gift-marketplace/pkg/pagination"
)

// RepositoryInterface defines the contract for certificate repository operations
type RepositoryInterface interface {
	Create(ctx context.Context, cert *GiftCertificate) error
	Update(ctx context.Context, cert *GiftCertificate, replaceTags bool) error
	GetByID(ctx context.Context, id int64) (*GiftCertificate, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters ListFilters, params pagination.Params) ([]GiftCertificate, int64, error)
}
