package command

import (
	"context"
	"errors"

	"github.com/tair/crumbly/internal/favorite/domain"
	"github.com/tair/crumbly/kafka"
	"github.com/tair/crumbly/pkg/apperror"
)

// ErrIDsRequired is returned when a cake or user id is missing
var ErrIDsRequired = apperror.Validation("Cake ID and User ID are required")

// ToggleFavoriteCommand represents the command to like or unlike a cake
type ToggleFavoriteCommand struct {
	CakeID uint
	UserID uint
}

// ToggleFavoriteHandler handles favorite toggling
type ToggleFavoriteHandler struct {
	repo   domain.FavoriteRepository
	events kafka.EventPublisher
}

// NewToggleFavoriteHandler creates a new toggle favorite handler
func NewToggleFavoriteHandler(repo domain.FavoriteRepository, events kafka.EventPublisher) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{repo: repo, events: events}
}

// Handle flips the favorite state and reports whether the cake is now liked.
// The lookup and the write are separate statements; a concurrent insert that
// wins the race surfaces as ErrAlreadyFavorite and still means liked.
func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) (bool, error) {
	if cmd.CakeID == 0 || cmd.UserID == 0 {
		return false, ErrIDsRequired
	}

	existing, err := h.repo.Find(ctx, cmd.UserID, cmd.CakeID)
	if err != nil {
		return false, err
	}

	liked := existing == nil
	if existing != nil {
		if _, err := h.repo.DeleteByID(ctx, existing.ID); err != nil {
			return false, err
		}
	} else if err := h.repo.Create(ctx, cmd.UserID, cmd.CakeID); err != nil && !errors.Is(err, domain.ErrAlreadyFavorite) {
		return false, err
	}

	kafka.PublishBestEffort(ctx, h.events, kafka.NewFavoriteToggled(cmd.UserID, cmd.CakeID, liked))
	return liked, nil
}
