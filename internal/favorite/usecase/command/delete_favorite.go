package command

import (
	"context"

	"github.com/tair/crumbly/internal/favorite/domain"
	"github.com/tair/crumbly/kafka"
	"github.com/tair/crumbly/pkg/apperror"
)

// ErrFavoriteNotFound is returned when there is nothing to remove
var ErrFavoriteNotFound = apperror.NotFound("Like not found.")

// DeleteFavoriteCommand represents the command to remove a cake from favorites
type DeleteFavoriteCommand struct {
	CakeID uint
	UserID uint
}

// DeleteFavoriteHandler handles favorite removal
type DeleteFavoriteHandler struct {
	repo   domain.FavoriteRepository
	events kafka.EventPublisher
}

// NewDeleteFavoriteHandler creates a new delete favorite handler
func NewDeleteFavoriteHandler(repo domain.FavoriteRepository, events kafka.EventPublisher) *DeleteFavoriteHandler {
	return &DeleteFavoriteHandler{repo: repo, events: events}
}

// Handle executes the delete favorite command
func (h *DeleteFavoriteHandler) Handle(ctx context.Context, cmd DeleteFavoriteCommand) error {
	if cmd.CakeID == 0 || cmd.UserID == 0 {
		return ErrIDsRequired
	}

	affected, err := h.repo.Delete(ctx, cmd.UserID, cmd.CakeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}

	kafka.PublishBestEffort(ctx, h.events, kafka.NewFavoriteRemoved(cmd.UserID, cmd.CakeID))
	return nil
}
