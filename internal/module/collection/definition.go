// Package collection implements the generic ordered-collection resource:
// CRUD plus reorder over a sort_order column, with change notification and
// cache invalidation on every mutation. Each concrete collection is a
// Definition driving one generic implementation.
package collection

import (
	"context"

	"github.com/acmlab/labsite/internal/domain"
)

// Definition describes one ordered collection: its route name, validation
// rules, status gating and notification topics. All behavioral differences
// between collections live here.
type Definition struct {
	// Name is the URL path segment, e.g. "team-members".
	Name string

	// IDListKey is the JSON key carrying the ordered id list in reorder
	// requests, e.g. "member_ids".
	IDListKey string

	// Topics are the page rooms notified after a mutation.
	Topics []string

	// Required lists JSON field names that must be present and non-blank
	// on create.
	Required []string

	// StatusField is the JSON name of the status column, empty when the
	// collection has no status gate.
	StatusField string

	// DefaultStatus is applied on create when StatusField is set and the
	// request supplied none.
	DefaultStatus string

	// VisibleStatuses lists the status values served by the public facade.
	// Ignored when StatusField is empty.
	VisibleStatuses []string

	// FilterFields are the query parameters accepted as exact-match filters
	// on admin list requests.
	FilterFields []string
}

// Resource is the type-erased face of a collection, letting the handler and
// the public facade drive any collection through one code path.
type Resource interface {
	Definition() Definition

	// List returns either a bare slice or a pagination envelope depending
	// on the request.
	List(ctx context.Context, req domain.PageRequest) (any, error)

	// ListVisible returns the records the public facade may serve, in
	// display order.
	ListVisible(ctx context.Context) (any, error)

	Get(ctx context.Context, id uint) (any, error)

	// Create inserts a new record built from the supplied fields and
	// returns it.
	Create(ctx context.Context, fields map[string]any) (any, error)

	// Update applies a partial update and returns the updated record.
	Update(ctx context.Context, id uint, fields map[string]any) (any, error)

	Delete(ctx context.Context, id uint) error

	// Reorder rewrites sort_order so ids[i] gets position i+1.
	Reorder(ctx context.Context, ids []uint) error
}
