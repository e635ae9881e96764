package domain

import (
	"context"
	"errors"

	catalog "github.com/tair/crumbly/internal/catalog/domain"
)

// ErrAlreadyInCart is returned when the (user, cake) pair is already in the cart
var ErrAlreadyInCart = errors.New("cake already in cart")

// CartItem is one cake in a user's cart; at most one row per pair
type CartItem struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_cake"`
	CakeID uint `json:"cake_id" gorm:"not null;uniqueIndex:idx_cart_user_cake;index"`
}

// TableName specifies the table name for GORM
func (CartItem) TableName() string {
	return "cart"
}

// CartRepository defines cart persistence
type CartRepository interface {
	Exists(ctx context.Context, userID, cakeID uint) (bool, error)
	// Add inserts the pair; ErrAlreadyInCart on a unique violation
	Add(ctx context.Context, userID, cakeID uint) error
	Delete(ctx context.Context, userID, cakeID uint) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	ListCakesByUser(ctx context.Context, userID uint) ([]catalog.CakeSummary, error)
}
