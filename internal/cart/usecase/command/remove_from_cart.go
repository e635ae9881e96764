package command

import (
	"context"

	"github.com/tair/crumbly/internal/cart/domain"
	"github.com/tair/crumbly/kafka"
	"github.com/tair/crumbly/pkg/apperror"
)

// ErrCartItemNotFound is returned when there is nothing to remove
var ErrCartItemNotFound = apperror.NotFound("Cake not found in your cart.")

// RemoveFromCartCommand represents the command to take a cake out of a cart
type RemoveFromCartCommand struct {
	CakeID uint
	UserID uint
}

// RemoveFromCartHandler handles cart removals
type RemoveFromCartHandler struct {
	repo   domain.CartRepository
	events kafka.EventPublisher
}

// NewRemoveFromCartHandler creates a new remove from cart handler
func NewRemoveFromCartHandler(repo domain.CartRepository, events kafka.EventPublisher) *RemoveFromCartHandler {
	return &RemoveFromCartHandler{repo: repo, events: events}
}

// Handle executes the remove from cart command
func (h *RemoveFromCartHandler) Handle(ctx context.Context, cmd RemoveFromCartCommand) error {
	if cmd.CakeID == 0 || cmd.UserID == 0 {
		return ErrIDsRequired
	}

	affected, err := h.repo.Delete(ctx, cmd.UserID, cmd.CakeID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	kafka.PublishBestEffort(ctx, h.events, kafka.NewCartItemRemoved(cmd.UserID, cmd.CakeID))
	return nil
}
