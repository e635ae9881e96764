package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/crumbly/internal/user/domain"
	"github.com/tair/crumbly/pkg/database"
)

const (
	insertUser      = `INSERT INTO users (name, email, password, photo) VALUES (?, ?, ?, ?) RETURNING id`
	selectUserEmail = `SELECT id, name, email, password, photo FROM users WHERE email = ? LIMIT 1`
	countUsers      = `SELECT COUNT(*) FROM users`
)

// userRow mirrors the users table for scanning
type userRow struct {
	ID       uint
	Name     string
	Email    string
	Password string
	Photo    *string
}

// SQLUserRepository stores users through the query executor
type SQLUserRepository struct {
	exec database.Executor
}

// NewSQLUserRepository creates a new user repository
func NewSQLUserRepository(exec database.Executor) *SQLUserRepository {
	return &SQLUserRepository{exec: exec}
}

// Create inserts a new user
func (r *SQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	var id uint
	err := r.exec.Query(ctx, &id, insertUser, user.Name, user.Email, user.PasswordHash, user.Photo)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id
	return nil
}

// FindByEmail retrieves a user by email
func (r *SQLUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var rows []userRow
	if err := r.exec.Query(ctx, &rows, selectUserEmail, email); err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrUserNotFound
	}

	row := rows[0]
	return &domain.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.Password,
		Photo:        row.Photo,
	}, nil
}

// Count returns the number of registered users
func (r *SQLUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.exec.Query(ctx, &count, countUsers); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
