package tags

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateName is returned when an insert or rename hits the unique
// constraint on tag names.
var ErrDuplicateName = errors.New("tag name already exists")

// uniqueViolation is the SQLSTATE for unique constraint violations
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Repository handles tag data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new tag repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new tag and returns it with its generated id
func (r *Repository) Create(ctx context.Context, name string) (*Tag, error) {
	tag := &Tag{Name: name}
	err := r.db.QueryRow(ctx,
		`INSERT INTO tags (name) VALUES ($1) RETURNING id`, name,
	).Scan(&tag.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create tag %q: %w", name, ErrDuplicateName)
		}
		return nil, err
	}
	return tag, nil
}

// GetByID returns a single tag by id
func (r *Repository) GetByID(ctx context.Context, id int64) (*Tag, error) {
	tag := &Tag{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM tags WHERE id = $1`, id,
	).Scan(&tag.ID, &tag.Name)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// GetByName returns a single tag by its exact name
func (r *Repository) GetByName(ctx context.Context, name string) (*Tag, error) {
	tag := &Tag{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM tags WHERE name = $1`, name,
	).Scan(&tag.ID, &tag.Name)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// ListByNames returns all tags whose name is in the given set, in one lookup
func (r *Repository) ListByNames(ctx context.Context, names []string) ([]Tag, error) {
	if len(names) == 0 {
		return []Tag{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM tags WHERE name = ANY($1)`, names,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// List returns a page of tags ordered by id
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Tag, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tags`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name FROM tags ORDER BY id LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, 0, err
		}
		result = append(result, t)
	}
	return result, total, rows.Err()
}

// Update renames a tag
func (r *Repository) Update(ctx context.Context, id int64, name string) (*Tag, error) {
	tag := &Tag{Name: name}
	err := r.db.QueryRow(ctx,
		`UPDATE tags SET name = $1 WHERE id = $2 RETURNING id`, name, id,
	).Scan(&tag.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("rename tag %d to %q: %w", id, name, ErrDuplicateName)
		}
		return nil, err
	}
	return tag, nil
}

// Delete removes a tag. The join table cascades, so certificates that
// referenced the tag keep existing with the tag absent from their set.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
