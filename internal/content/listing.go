package content

import (
	"context"
	"strconv"
	"strings"

	"github.com/vidtube/backend/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var sortableFields = map[string]bool{
	models.SortCreatedAt: true,
	models.SortUpdatedAt: true,
	models.SortTitle:     true,
	models.SortViews:     true,
	models.SortDuration:  true,
}

// timelineSortFields are the sort keys of listings without video metadata.
var timelineSortFields = map[string]bool{
	models.SortCreatedAt: true,
	models.SortUpdatedAt: true,
}

// ListParams carries raw listing parameters as received from a request.
type ListParams struct {
	Page     string
	Limit    string
	Query    string
	SortBy   string
	SortType string
	UserID   string
}

// NewListQuery validates raw parameters and applies defaults.
func NewListQuery(p ListParams) (models.ListQuery, error) {
	q := models.ListQuery{
		Page:          DefaultPage,
		Limit:         DefaultLimit,
		SortField:     models.SortCreatedAt,
		SortDirection: models.SortDescending,
		TextQuery:     strings.TrimSpace(p.Query),
	}

	var err error
	if q.Page, err = positiveInt(p.Page, DefaultPage, "page"); err != nil {
		return models.ListQuery{}, err
	}
	if q.Limit, err = positiveInt(p.Limit, DefaultLimit, "limit"); err != nil {
		return models.ListQuery{}, err
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	if sortBy := strings.TrimSpace(p.SortBy); sortBy != "" {
		if !sortableFields[sortBy] {
			return models.ListQuery{}, InvalidArgument("sortBy is not a sortable field", "sortBy must be one of createdAt, updatedAt, title, views, duration")
		}
		q.SortField = sortBy
	}

	switch strings.ToLower(strings.TrimSpace(p.SortType)) {
	case "", "desc":
	case "asc":
		q.SortDirection = models.SortAscending
	default:
		return models.ListQuery{}, InvalidArgument("sortType must be asc or desc")
	}

	if userID := strings.TrimSpace(p.UserID); userID != "" {
		if err := ValidateID("User", userID); err != nil {
			return models.ListQuery{}, err
		}
		q.OwnerID = userID
	}

	return q, nil
}

// newTimelineQuery builds the query of a comment or tweet listing. Text search and owner
// filters do not apply and only timestamps sort.
func newTimelineQuery(p ListParams) (models.ListQuery, error) {
	p.Query, p.UserID = "", ""
	q, err := NewListQuery(p)
	if err != nil {
		return models.ListQuery{}, err
	}
	if !timelineSortFields[q.SortField] {
		return models.ListQuery{}, InvalidArgument("sortBy is not a sortable field", "sortBy must be one of createdAt, updatedAt")
	}
	return q, nil
}

func positiveInt(raw string, fallback int, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, InvalidArgument(name + " must be a positive integer")
	}
	return n, nil
}

// Paginate counts the matching records, checks the requested page is in range and fetches it.
// An empty collection yields page 1 with no items instead of an error.
func Paginate[T any](
	ctx context.Context,
	q models.ListQuery,
	count func(context.Context, models.ListQuery) (int64, error),
	find func(context.Context, models.ListQuery) ([]T, error),
) (models.Page[T], error) {
	if q.Page < 1 || q.Limit < 1 {
		return models.Page[T]{}, InvalidArgument("page and limit must be positive integers")
	}

	total, err := count(ctx, q)
	if err != nil {
		return models.Page[T]{}, Internal("Failed to count records", err)
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	page := models.Page[T]{Items: []T{}, Page: q.Page, Limit: q.Limit, TotalItems: total, TotalPages: totalPages}
	if total == 0 {
		page.Page = DefaultPage
		return page, nil
	}
	if q.Page > totalPages {
		return models.Page[T]{}, InvalidArgument("Page number exceeds total pages")
	}

	items, err := find(ctx, q)
	if err != nil {
		return models.Page[T]{}, Internal("Failed to fetch records", err)
	}
	if items != nil {
		page.Items = items
	}
	return page, nil
}
