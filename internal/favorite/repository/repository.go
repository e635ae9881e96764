package repository

import (
	"context"
	"errors"
	"fmt"

	catalog "github.com/tair/crumbly/internal/catalog/domain"
	"github.com/tair/crumbly/internal/favorite/domain"
	"github.com/tair/crumbly/pkg/database"
)

const (
	selectFavorite   = `SELECT id, user_id, cake_id FROM favorites WHERE cake_id = ? AND user_id = ? LIMIT 1`
	insertFavorite   = `INSERT INTO favorites (cake_id, user_id) VALUES (?, ?)`
	deleteFavoriteID = `DELETE FROM favorites WHERE id = ?`
	deleteFavorite   = `DELETE FROM favorites WHERE cake_id = ? AND user_id = ?`
	countFavorites   = `SELECT COUNT(*) AS likes FROM favorites WHERE user_id = ?`
	selectFavCakes   = `SELECT c.id, c.title, c.price, c.image FROM cakes c JOIN favorites f ON c.id = f.cake_id WHERE f.user_id = ? ORDER BY f.id`
)

// SQLFavoriteRepository stores favorites through the query executor
type SQLFavoriteRepository struct {
	exec database.Executor
}

// NewSQLFavoriteRepository creates a new favorites repository
func NewSQLFavoriteRepository(exec database.Executor) *SQLFavoriteRepository {
	return &SQLFavoriteRepository{exec: exec}
}

// Find returns the favorite row for the pair
func (r *SQLFavoriteRepository) Find(ctx context.Context, userID, cakeID uint) (*domain.Favorite, error) {
	var rows []domain.Favorite
	if err := r.exec.Query(ctx, &rows, selectFavorite, cakeID, userID); err != nil {
		return nil, fmt.Errorf("failed to find favorite: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Create inserts a favorite
func (r *SQLFavoriteRepository) Create(ctx context.Context, userID, cakeID uint) error {
	if _, err := r.exec.Exec(ctx, insertFavorite, cakeID, userID); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return domain.ErrAlreadyFavorite
		}
		return fmt.Errorf("failed to create favorite: %w", err)
	}
	return nil
}

// DeleteByID removes a favorite by its primary key
func (r *SQLFavoriteRepository) DeleteByID(ctx context.Context, id uint) (int64, error) {
	affected, err := r.exec.Exec(ctx, deleteFavoriteID, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorite: %w", err)
	}
	return affected, nil
}

// Delete removes the favorite for the pair
func (r *SQLFavoriteRepository) Delete(ctx context.Context, userID, cakeID uint) (int64, error) {
	affected, err := r.exec.Exec(ctx, deleteFavorite, cakeID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorite: %w", err)
	}
	return affected, nil
}

// CountByUser counts a user's favorites
func (r *SQLFavoriteRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.exec.Query(ctx, &count, countFavorites, userID); err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

// ListCakesByUser lists the cakes a user has favorited
func (r *SQLFavoriteRepository) ListCakesByUser(ctx context.Context, userID uint) ([]catalog.CakeSummary, error) {
	cakes := []catalog.CakeSummary{}
	if err := r.exec.Query(ctx, &cakes, selectFavCakes, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorite cakes: %w", err)
	}
	return cakes, nil
}
