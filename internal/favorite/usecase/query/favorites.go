package query

import (
	"context"

	catalog "github.com/tair/crumbly/internal/catalog/domain"
	"github.com/tair/crumbly/internal/favorite/domain"
	"github.com/tair/crumbly/pkg/apperror"
)

// ErrUserIDRequired is returned when a user id is missing
var ErrUserIDRequired = apperror.Validation("User ID is required")

// CountFavoritesQuery represents the query to count a user's favorites
type CountFavoritesQuery struct {
	UserID uint
}

// CountFavoritesHandler handles favorite counting
type CountFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewCountFavoritesHandler creates a new count favorites handler
func NewCountFavoritesHandler(repo domain.FavoriteRepository) *CountFavoritesHandler {
	return &CountFavoritesHandler{repo: repo}
}

// Handle executes the count favorites query
func (h *CountFavoritesHandler) Handle(ctx context.Context, q CountFavoritesQuery) (int64, error) {
	if q.UserID == 0 {
		return 0, ErrUserIDRequired
	}
	return h.repo.CountByUser(ctx, q.UserID)
}

// ListFavoritesQuery represents the query to list a user's favorite cakes
type ListFavoritesQuery struct {
	UserID uint
}

// ListFavoritesHandler handles favorite listings
type ListFavoritesHandler struct {
	repo domain.FavoriteRepository
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(repo domain.FavoriteRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle executes the list favorites query
func (h *ListFavoritesHandler) Handle(ctx context.Context, q ListFavoritesQuery) ([]catalog.CakeSummary, error) {
	if q.UserID == 0 {
		return nil, ErrUserIDRequired
	}
	return h.repo.ListCakesByUser(ctx, q.UserID)
}
