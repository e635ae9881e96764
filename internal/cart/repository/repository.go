package repository

import (
	"context"
	"errors"
	"fmt"

	catalog "github.com/tair/crumbly/internal/catalog/domain"
	"github.com/tair/crumbly/internal/cart/domain"
	"github.com/tair/crumbly/pkg/database"
)

const (
	selectCartItem  = `SELECT COUNT(*) FROM cart WHERE user_id = ? AND cake_id = ?`
	insertCartItem  = `INSERT INTO cart (user_id, cake_id) VALUES (?, ?)`
	deleteCartItem  = `DELETE FROM cart WHERE cake_id = ? AND user_id = ?`
	countCartItems  = `SELECT COUNT(*) AS cart FROM cart WHERE user_id = ?`
	selectCartCakes = `SELECT c.id, c.title, c.price, c.image FROM cakes c JOIN cart ct ON c.id = ct.cake_id WHERE ct.user_id = ? ORDER BY ct.id`
)

// SQLCartRepository stores cart items through the query executor
type SQLCartRepository struct {
	exec database.Executor
}

// NewSQLCartRepository creates a new cart repository
func NewSQLCartRepository(exec database.Executor) *SQLCartRepository {
	return &SQLCartRepository{exec: exec}
}

// Exists reports whether the cake is already in the user's cart
func (r *SQLCartRepository) Exists(ctx context.Context, userID, cakeID uint) (bool, error) {
	var count int64
	if err := r.exec.Query(ctx, &count, selectCartItem, userID, cakeID); err != nil {
		return false, fmt.Errorf("failed to check cart: %w", err)
	}
	return count > 0, nil
}

// Add inserts a cart item
func (r *SQLCartRepository) Add(ctx context.Context, userID, cakeID uint) error {
	if _, err := r.exec.Exec(ctx, insertCartItem, userID, cakeID); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return domain.ErrAlreadyInCart
		}
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

// Delete removes the cart item for the pair
func (r *SQLCartRepository) Delete(ctx context.Context, userID, cakeID uint) (int64, error) {
	affected, err := r.exec.Exec(ctx, deleteCartItem, cakeID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete cart item: %w", err)
	}
	return affected, nil
}

// CountByUser counts the items in a user's cart
func (r *SQLCartRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.exec.Query(ctx, &count, countCartItems, userID); err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}

// ListCakesByUser lists the cakes in a user's cart
func (r *SQLCartRepository) ListCakesByUser(ctx context.Context, userID uint) ([]catalog.CakeSummary, error) {
	cakes := []catalog.CakeSummary{}
	if err := r.exec.Query(ctx, &cakes, selectCartCakes, userID); err != nil {
		return nil, fmt.Errorf("failed to list cart cakes: %w", err)
	}
	return cakes, nil
}
