package query

import (
	"context"

	"github.com/tair/crumbly/internal/user/domain"
)

// CountUsersHandler returns the number of registered users
type CountUsersHandler struct {
	repo domain.UserRepository
}

// NewCountUsersHandler creates a new count users handler
func NewCountUsersHandler(repo domain.UserRepository) *CountUsersHandler {
	return &CountUsersHandler{repo: repo}
}

// Handle executes the count
func (h *CountUsersHandler) Handle(ctx context.Context) (int64, error) {
	return h.repo.Count(ctx)
}
