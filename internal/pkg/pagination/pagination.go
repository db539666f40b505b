package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page    int
	PerPage int
}

// Meta is the pagination metadata returned with paginated responses.
type Meta struct {
	Total       int64 `json:"total"`
	Pages       int   `json:"pages"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// FromContext extracts and validates pagination params from the request.
func FromContext(c *gin.Context) Query {
	page := parseIntOr(c.DefaultQuery("page", "1"), DefaultPage)
	perPage := parseIntOr(c.DefaultQuery("per_page", "20"), DefaultPerPage)

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Query{Page: page, PerPage: perPage}
}

// Paginate applies limit/offset to a GORM query and returns the pagination metadata.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (Meta, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return Meta{}, err
	}

	offset := (q.Page - 1) * q.PerPage
	if err := db.Offset(offset).Limit(q.PerPage).Find(dest).Error; err != nil {
		return Meta{}, err
	}

	pages := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))

	return Meta{
		Total:       total,
		Pages:       pages,
		CurrentPage: q.Page,
		PerPage:     q.PerPage,
		HasNext:     q.Page < pages,
		HasPrev:     q.Page > 1,
	}, nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
