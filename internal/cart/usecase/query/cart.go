package query

import (
	"context"

	catalog "github.com/tair/crumbly/internal/catalog/domain"
	"github.com/tair/crumbly/internal/cart/domain"
	"github.com/tair/crumbly/pkg/apperror"
)

// ErrUserIDRequired is returned when a user id is missing
var ErrUserIDRequired = apperror.Validation("User ID is required")

// CountCartQuery represents the query to count a user's cart items
type CountCartQuery struct {
	UserID uint
}

// CountCartHandler handles cart counting
type CountCartHandler struct {
	repo domain.CartRepository
}

// NewCountCartHandler creates a new count cart handler
func NewCountCartHandler(repo domain.CartRepository) *CountCartHandler {
	return &CountCartHandler{repo: repo}
}

// Handle executes the count cart query
func (h *CountCartHandler) Handle(ctx context.Context, q CountCartQuery) (int64, error) {
	if q.UserID == 0 {
		return 0, ErrUserIDRequired
	}
	return h.repo.CountByUser(ctx, q.UserID)
}

// ListCartQuery represents the query to list the cakes in a user's cart
type ListCartQuery struct {
	UserID uint
}

// ListCartHandler handles cart listings
type ListCartHandler struct {
	repo domain.CartRepository
}

// NewListCartHandler creates a new list cart handler
func NewListCartHandler(repo domain.CartRepository) *ListCartHandler {
	return &ListCartHandler{repo: repo}
}

// Handle executes the list cart query
func (h *ListCartHandler) Handle(ctx context.Context, q ListCartQuery) ([]catalog.CakeSummary, error) {
	if q.UserID == 0 {
		return nil, ErrUserIDRequired
	}
	return h.repo.ListCakesByUser(ctx, q.UserID)
}
