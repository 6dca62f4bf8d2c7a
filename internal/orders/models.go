package orders

import (
	"time"
)

// Order links a user to a purchased certificate. TotalCost is the
// certificate's price captured at purchase time; it never changes afterwards
// even if the certificate is repriced.
type Order struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	CertificateID int64     `json:"certificate_id" db:"certificate_id"`
	TotalCost     float64   `json:"total_cost" db:"total_cost"`
	PurchaseDate  time.Time `json:"purchase_date" db:"purchase_date"`
}

// MakeOrderRequest is the payload for creating an order
type MakeOrderRequest struct {
	UserID        int64 `json:"user_id" binding:"required,gt=0"`
	CertificateID int64 `json:"certificate_id" binding:"required,gt=0"`
}
