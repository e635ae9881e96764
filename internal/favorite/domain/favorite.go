package domain

import (
	"context"
	"errors"

	catalog "github.com/tair/crumbly/internal/catalog/domain"
)

// ErrAlreadyFavorite is returned when the (user, cake) pair is already stored
var ErrAlreadyFavorite = errors.New("cake already in favorites")

// Favorite marks a cake as liked by a user; at most one row per pair
type Favorite struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_user_cake"`
	CakeID uint `json:"cake_id" gorm:"not null;uniqueIndex:idx_favorites_user_cake;index"`
}

// TableName specifies the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteRepository defines favorites persistence
type FavoriteRepository interface {
	// Find returns the favorite for the pair, or nil when absent
	Find(ctx context.Context, userID, cakeID uint) (*Favorite, error)
	// Create inserts the pair; ErrAlreadyFavorite on a unique violation
	Create(ctx context.Context, userID, cakeID uint) error
	DeleteByID(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, userID, cakeID uint) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	ListCakesByUser(ctx context.Context, userID uint) ([]catalog.CakeSummary, error)
}
