package orders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles order data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new order repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts an order and sets its generated id
func (r *Repository) Create(ctx context.Context, order *Order) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO orders (user_id, certificate_id, total_cost, purchase_date)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		order.UserID, order.CertificateID, order.TotalCost, order.PurchaseDate,
	).Scan(&order.ID)
}

// ListByUser returns a page of a user's orders, newest first
func (r *Repository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Order, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, certificate_id, total_cost, purchase_date
		 FROM orders WHERE user_id = $1
		 ORDER BY purchase_date DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CertificateID, &o.TotalCost, &o.PurchaseDate); err != nil {
			return nil, 0, err
		}
		result = append(result, o)
	}
	return result, total, rows.Err()
}
