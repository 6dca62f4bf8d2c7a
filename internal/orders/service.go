package orders

import (
	"context"
	"time"
)

// Service handles order business logic
type Service struct {
	repo         RepositoryInterface
	users        UserFinder
	certificates CertificateFinder
}

// NewService creates a new order service
func NewService(repo RepositoryInterface, users UserFinder, certificates CertificateFinder) *Service {
	return &Service{repo: repo, users: users, certificates: certificates}
}

// MakeOrder creates a purchase order for a user and a certificate. The
// order's total cost is a snapshot of the certificate's price at this
// moment; later price changes do not touch it. Missing user or certificate
// surfaces as the finder's not-found error.
func (s *Service) MakeOrder(ctx context.Context, userID, certificateID int64) (*Order, error) {
	user, err := s.users.Find(ctx, userID)
	if err != nil {
		return nil, err
	}

	cert, err := s.certificates.Find(ctx, certificateID)
	if err != nil {
		return nil, err
	}

	order := &Order{
		UserID:        user.ID,
		CertificateID: cert.ID,
		TotalCost:     cert.Price,
		PurchaseDate:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetUserOrders returns a page of the user's orders. An unknown user id
// yields an empty page rather than an error.
func (s *Service) GetUserOrders(ctx context.Context, userID int64, limit, offset int) ([]Order, int64, error) {
	result, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if result == nil {
		result = []Order{}
	}
	return result, total, nil
}
