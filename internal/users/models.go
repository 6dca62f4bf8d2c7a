package users

// User is a marketplace account. Users are read-only from this service's
// perspective; no create or update operations exist.
type User struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
