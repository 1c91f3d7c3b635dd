package domain

import "time"

// OrderedModel is the common base struct for all ordered collection records.
// SortOrder defines the display position within a collection; it is rewritten
// wholesale by reorder operations and never reused as an identifier.
type OrderedModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SortOrder int       `gorm:"index;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordID returns the primary key.
func (m *OrderedModel) RecordID() uint { return m.ID }

// Position returns the current sort position.
func (m *OrderedModel) Position() int { return m.SortOrder }

// SetPosition assigns a new sort position.
func (m *OrderedModel) SetPosition(p int) { m.SortOrder = p }

// PageRequest holds optional pagination and filtering parameters for list
// queries. A zero Page means "no pagination": the full collection is returned.
type PageRequest struct {
	Page    int
	PerPage int
	Filter  map[string]string
}

// Paged reports whether pagination was requested.
func (r PageRequest) Paged() bool { return r.Page > 0 }

// PageResult is the envelope for a paginated list.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}
