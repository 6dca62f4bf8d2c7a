package certificates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dkurganov/gift-marketplace/pkg/pagination"
)

// ErrHasOrders is returned when a certificate delete is blocked by purchase
// orders referencing it. Orders snapshot the certificate's price and must
// keep their row, so the FK carries no cascade.
var ErrHasOrders = errors.New("certificate is referenced by purchase orders")

// foreignKeyViolation is the SQLSTATE for foreign key violations
const foreignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

// Repository handles certificate data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new certificate repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// scanCertificate scans a row produced with certificateColumns, decoding the
// aggregated tag JSON into the certificate's tag set
func scanCertificate(scan func(dest ...interface{}) error) (GiftCertificate, error) {
	c := GiftCertificate{}
	var tagJSON []byte
	err := scan(
		&c.ID, &c.Name, &c.Description, &c.Duration, &c.Price,
		&c.CreateDate, &c.LastUpdateDate, &tagJSON,
	)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(tagJSON, &c.Tags); err != nil {
		return c, fmt.Errorf("decode certificate tags: %w", err)
	}
	return c, nil
}

// Create inserts a certificate and its tag associations in one transaction
func (r *Repository) Create(ctx context.Context, cert *GiftCertificate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO gift_certificates (name, description, duration, price, create_date, last_update_date)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		cert.Name, cert.Description, cert.Duration, cert.Price, cert.CreateDate, cert.LastUpdateDate,
	).Scan(&cert.ID)
	if err != nil {
		return err
	}

	for _, t := range cert.Tags {
		_, err = tx.Exec(ctx,
			`INSERT INTO certificate_tags (certificate_id, tag_id) VALUES ($1, $2)`,
			cert.ID, t.ID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Update writes the certificate fields and, when replaceTags is set, swaps
// the entire tag association set, all in one transaction
func (r *Repository) Update(ctx context.Context, cert *GiftCertificate, replaceTags bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		`UPDATE gift_certificates
		 SET name = $1, description = $2, duration = $3, price = $4, last_update_date = $5
		 WHERE id = $6`,
		cert.Name, cert.Description, cert.Duration, cert.Price, cert.LastUpdateDate, cert.ID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if replaceTags {
		if _, err = tx.Exec(ctx,
			`DELETE FROM certificate_tags WHERE certificate_id = $1`, cert.ID,
		); err != nil {
			return err
		}
		for _, t := range cert.Tags {
			if _, err = tx.Exec(ctx,
				`INSERT INTO certificate_tags (certificate_id, tag_id) VALUES ($1, $2)`,
				cert.ID, t.ID,
			); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// GetByID returns a single certificate with its tag set
func (r *Repository) GetByID(ctx context.Context, id int64) (*GiftCertificate, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM gift_certificates c%s WHERE c.id = $1 GROUP BY c.id`,
		certificateColumns, certificateJoins,
	)
	c, err := scanCertificate(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx, query, id).Scan(dest...)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a certificate. Tag rows survive; only the associations go
// away (via the join table cascade).
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM gift_certificates WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("delete certificate %d: %w", id, ErrHasOrders)
		}
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List runs the filtered, sorted, paged certificate query. Tags are
// eager-loaded in the same execution.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]GiftCertificate, int64, error) {
	countSQL, listSQL, args, err := buildListQuery(filters, params)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, params.Size, params.Offset())
	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []GiftCertificate
	for rows.Next() {
		c, err := scanCertificate(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, c)
	}
	return result, total, rows.Err()
}
