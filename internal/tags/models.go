package tags

// Tag is a named label shared across certificates, unique by name
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// TagRequest carries a tag name in certificate and tag payloads
type TagRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateRequest is the payload for creating a tag directly
type CreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateRequest is the payload for renaming a tag
type UpdateRequest struct {
	Name string `json:"name" binding:"required"`
}
