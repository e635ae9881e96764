package command

import (
	"context"
	"errors"
	"net/http"

	"github.com/tair/crumbly/internal/cart/domain"
	"github.com/tair/crumbly/kafka"
	"github.com/tair/crumbly/pkg/apperror"
)

var (
	// ErrIDsRequired is returned when a cake or user id is missing
	ErrIDsRequired = apperror.Validation("User ID and Cake ID are required")
	// ErrAlreadyInCart is reported with 400 to match the storefront client
	ErrAlreadyInCart = apperror.Conflict("Cake is already in your cart").WithCode(http.StatusBadRequest)
)

// AddToCartCommand represents the command to put a cake in a cart
type AddToCartCommand struct {
	UserID uint
	CakeID uint
}

// AddToCartHandler handles cart additions
type AddToCartHandler struct {
	repo   domain.CartRepository
	events kafka.EventPublisher
}

// NewAddToCartHandler creates a new add to cart handler
func NewAddToCartHandler(repo domain.CartRepository, events kafka.EventPublisher) *AddToCartHandler {
	return &AddToCartHandler{repo: repo, events: events}
}

// Handle executes the add to cart command.
// The existence check and insert are separate statements; the unique index
// on (user_id, cake_id) rejects the loser of a concurrent add.
func (h *AddToCartHandler) Handle(ctx context.Context, cmd AddToCartCommand) error {
	if cmd.UserID == 0 || cmd.CakeID == 0 {
		return ErrIDsRequired
	}

	exists, err := h.repo.Exists(ctx, cmd.UserID, cmd.CakeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyInCart
	}

	if err := h.repo.Add(ctx, cmd.UserID, cmd.CakeID); err != nil {
		if errors.Is(err, domain.ErrAlreadyInCart) {
			return ErrAlreadyInCart
		}
		return err
	}

	kafka.PublishBestEffort(ctx, h.events, kafka.NewCartItemAdded(cmd.UserID, cmd.CakeID))
	return nil
}
