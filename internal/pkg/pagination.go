package pkg

import (
	"math"
	"regexp"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/acmlab/labsite/internal/domain"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// reservedParams lists query parameter names used for pagination, not for filtering.
var reservedParams = map[string]bool{
	"page":     true,
	"per_page": true,
}

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParsePageRequest extracts pagination and filtering parameters from query
// params. Pagination is opt-in: when no "page" parameter is present the
// request is unpaged and list endpoints return the full collection.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 0 {
		page = 0
	}

	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filter[key] = values[0]
		}
	}

	return domain.PageRequest{
		Page:    page,
		PerPage: perPage,
		Filter:  filter,
	}
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET based on the
// page request. Unpaged requests pass through unchanged.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !req.Paged() {
			return db
		}
		offset := (req.Page - 1) * req.PerPage
		return db.Offset(offset).Limit(req.PerPage)
	}
}

// Filter returns a GORM scope that applies WHERE conditions based on the page
// request filters. Only filter keys present in the allowed list are applied;
// others are silently ignored. Keys are validated against a strict pattern to
// prevent SQL injection.
func Filter(req domain.PageRequest, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range req.Filter {
			if !validFieldName.MatchString(key) {
				continue
			}
			if !slices.Contains(allowed, key) {
				continue
			}
			db = db.Where(key+" = ?", value)
		}
		return db
	}
}

// NewPageResult builds a PageResult with computed TotalPages. Out-of-range
// pages yield an empty Items slice, never an error.
func NewPageResult[T any](items []T, total int64, req domain.PageRequest) *domain.PageResult[T] {
	totalPages := 0
	if req.PerPage > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.PerPage)))
	}

	if items == nil {
		items = []T{}
	}

	return &domain.PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PerPage:    req.PerPage,
		TotalPages: totalPages,
	}
}
