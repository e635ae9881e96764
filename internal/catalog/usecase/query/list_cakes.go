package query

import (
	"context"
	"strings"

	"github.com/tair/crumbly/internal/catalog/domain"
	"github.com/tair/crumbly/pkg/apperror"
)

// ErrCategoryRequired is returned when a category listing has no category
var ErrCategoryRequired = apperror.Validation("Category is required")

// ListByCategoryQuery represents the query to list cakes of one category
type ListByCategoryQuery struct {
	Category string
}

// ListByCategoryHandler handles category listings without viewer annotation
type ListByCategoryHandler struct {
	repo domain.CakeRepository
}

// NewListByCategoryHandler creates a new list by category handler
func NewListByCategoryHandler(repo domain.CakeRepository) *ListByCategoryHandler {
	return &ListByCategoryHandler{repo: repo}
}

// Handle executes the list by category query
func (h *ListByCategoryHandler) Handle(ctx context.Context, q ListByCategoryQuery) ([]domain.Cake, error) {
	category := strings.TrimSpace(q.Category)
	if category == "" {
		return nil, ErrCategoryRequired
	}
	return h.repo.FindByCategory(ctx, category)
}

// ListForViewerQuery represents the query to list cakes annotated for a viewer.
// An empty Category lists the whole catalog; a nil ViewerID marks nothing as liked.
type ListForViewerQuery struct {
	Category        string
	ViewerID        *uint
	RequireCategory bool
}

// ListForViewerHandler handles viewer-annotated listings
type ListForViewerHandler struct {
	repo domain.CakeRepository
}

// NewListForViewerHandler creates a new list for viewer handler
func NewListForViewerHandler(repo domain.CakeRepository) *ListForViewerHandler {
	return &ListForViewerHandler{repo: repo}
}

// Handle executes the list for viewer query
func (h *ListForViewerHandler) Handle(ctx context.Context, q ListForViewerQuery) ([]domain.CakeView, error) {
	category := strings.TrimSpace(q.Category)
	if q.RequireCategory && category == "" {
		return nil, ErrCategoryRequired
	}
	return h.repo.FindForViewer(ctx, category, q.ViewerID)
}
