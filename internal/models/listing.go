package models

// SortDirection orders listing results.
type SortDirection int

const (
	SortAscending  SortDirection = 1
	SortDescending SortDirection = -1
)

// Sortable listing fields. Stores translate these to their own column or key names.
const (
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
	SortTitle     = "title"
	SortViews     = "views"
	SortDuration  = "duration"
)

// ListQuery is a validated listing request understood by every store.
type ListQuery struct {
	Page          int
	Limit         int
	SortField     string
	SortDirection SortDirection
	// TextQuery matches title or description case-insensitively. Videos only.
	TextQuery string
	OwnerID   string
	VideoID   string
	// PublishedOnly hides unpublished videos.
	PublishedOnly bool
}

// Skip returns the number of records preceding the requested page.
func (q ListQuery) Skip() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Page is one slice of a paginated listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}
