package repository

import (
	"context"
	"fmt"

	"github.com/tair/crumbly/internal/catalog/domain"
	"github.com/tair/crumbly/pkg/database"
)

const (
	selectByCategory = `SELECT id, title, image, category, price FROM cakes WHERE category = ? ORDER BY id`

	selectForViewer = `SELECT c.id, c.title, c.image, c.category, c.price,
		CASE WHEN f.id IS NOT NULL THEN TRUE ELSE FALSE END AS liked
		FROM cakes c
		LEFT JOIN favorites f ON c.id = f.cake_id AND f.user_id = ?`
)

// SQLCakeRepository reads cakes through the query executor
type SQLCakeRepository struct {
	exec database.Executor
}

// NewSQLCakeRepository creates a new catalog repository
func NewSQLCakeRepository(exec database.Executor) *SQLCakeRepository {
	return &SQLCakeRepository{exec: exec}
}

// FindByCategory returns cakes in a category
func (r *SQLCakeRepository) FindByCategory(ctx context.Context, category string) ([]domain.Cake, error) {
	cakes := []domain.Cake{}
	if err := r.exec.Query(ctx, &cakes, selectByCategory, category); err != nil {
		return nil, fmt.Errorf("failed to list cakes by category: %w", err)
	}
	return cakes, nil
}

// FindForViewer returns cakes with the viewer's liked flag
func (r *SQLCakeRepository) FindForViewer(ctx context.Context, category string, viewerID *uint) ([]domain.CakeView, error) {
	var viewer any
	if viewerID != nil {
		viewer = *viewerID
	}

	query := selectForViewer
	args := []any{viewer}
	if category != "" {
		query += ` WHERE c.category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY c.id`

	cakes := []domain.CakeView{}
	if err := r.exec.Query(ctx, &cakes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list cakes for viewer: %w", err)
	}
	return cakes, nil
}
