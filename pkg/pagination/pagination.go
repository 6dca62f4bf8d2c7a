package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkurganov/gift-marketplace/pkg/common"
)

const (
	// DefaultPage is the zero-indexed page used when none is supplied
	DefaultPage = 0
	// DefaultSize is the page size used when none is supplied
	DefaultSize = 20
	// MaxSize caps the page size
	MaxSize = 100
)

// Params holds parsed pagination parameters
type Params struct {
	Page int
	Size int
}

// Offset returns the row offset for the page
func (p Params) Offset() int {
	return p.Page * p.Size
}

// ParseParams extracts page and size query parameters with defaults.
// Pages are zero-indexed. Invalid or out-of-range values fall back to defaults.
func ParseParams(c *gin.Context) Params {
	page := DefaultPage
	size := DefaultSize

	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed >= 0 {
			page = parsed
		}
	}

	if sizeStr := c.Query("size"); sizeStr != "" {
		if parsed, err := strconv.Atoi(sizeStr); err == nil && parsed > 0 {
			size = parsed
			if size > MaxSize {
				size = MaxSize
			}
		}
	}

	return Params{Page: page, Size: size}
}

// BuildMeta builds pagination metadata from page, size and total element count
func BuildMeta(page, size int, total int64) *common.Meta {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}

	return &common.Meta{
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		HasNext:       HasNext(page, size, total),
	}
}

// HasNext reports whether a page exists after the given one
func HasNext(page, size int, total int64) bool {
	return int64(page+1)*int64(size) < total
}
