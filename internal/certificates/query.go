package certificates

import (
	"fmt"
	"strings"

	"github.com/dkurganov/gift-marketplace/pkg/common"
	"github.com/dkurganov/gift-marketplace/pkg/pagination"
)

// Shared column list for certificate queries. Tags are aggregated into a
// JSON array in the same query execution to avoid a per-row fetch.
const certificateColumns = `
	c.id, c.name, c.description, c.duration, c.price, c.create_date, c.last_update_date,
	COALESCE(
		json_agg(json_build_object('id', t.id, 'name', t.name) ORDER BY t.id)
			FILTER (WHERE t.id IS NOT NULL),
		'[]'
	)`

const certificateJoins = `
	LEFT JOIN certificate_tags ct ON ct.certificate_id = c.id
	LEFT JOIN tags t ON t.id = ct.tag_id`

// buildListFilters constructs WHERE clauses and args from the optional
// filters. Conditions are conjunctive: a certificate must satisfy all of them.
func buildListFilters(filters ListFilters) ([]string, []interface{}) {
	var where []string
	var args []interface{}
	argIdx := 1

	if filters.TagName != nil {
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM certificate_tags fct
				JOIN tags ft ON ft.id = fct.tag_id
				WHERE fct.certificate_id = c.id AND ft.name = $%d)`, argIdx))
		args = append(args, *filters.TagName)
		argIdx++
	}
	if filters.Description != nil {
		where = append(where, fmt.Sprintf(`c.description ILIKE '%%' || $%d || '%%'`, argIdx))
		args = append(args, *filters.Description)
		argIdx++
	}

	return where, args
}

// buildOrderBy translates the optional sort tokens into ORDER BY terms.
// Tokens must be "asc" or "desc" (case-insensitive); anything else is an
// invalid-order condition reported as a 400. Date order is applied before
// name order when both are present; id is always the final tie-break so one
// execution yields a stable order.
func buildOrderBy(filters ListFilters) ([]string, error) {
	var orderBy []string

	if filters.SortByDate != nil {
		direction, err := parseSortDirection(*filters.SortByDate)
		if err != nil {
			return nil, err
		}
		orderBy = append(orderBy, "c.create_date "+direction)
	}
	if filters.SortByName != nil {
		direction, err := parseSortDirection(*filters.SortByName)
		if err != nil {
			return nil, err
		}
		orderBy = append(orderBy, "c.name "+direction)
	}

	orderBy = append(orderBy, "c.id")
	return orderBy, nil
}

func parseSortDirection(token string) (string, error) {
	switch strings.ToLower(token) {
	case "asc":
		return "ASC", nil
	case "desc":
		return "DESC", nil
	default:
		return "", common.NewBadRequestError(fmt.Sprintf("invalid sort order: %q", token), nil)
	}
}

// buildListQuery assembles the count and page queries for a filtered,
// sorted certificate listing. Pagination is applied last.
func buildListQuery(filters ListFilters, params pagination.Params) (countSQL, listSQL string, args []interface{}, err error) {
	where, args := buildListFilters(filters)
	orderBy, err := buildOrderBy(filters)
	if err != nil {
		return "", "", nil, err
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	countSQL = `SELECT COUNT(*) FROM gift_certificates c` + whereClause

	listSQL = fmt.Sprintf(
		`SELECT %s FROM gift_certificates c%s%s GROUP BY c.id ORDER BY %s LIMIT $%d OFFSET $%d`,
		certificateColumns, certificateJoins, whereClause,
		strings.Join(orderBy, ", "), len(args)+1, len(args)+2,
	)

	return countSQL, listSQL, args, nil
}
