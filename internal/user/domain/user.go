package domain

import (
	"context"
	"errors"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when the email already belongs to a user
	ErrEmailTaken = errors.New("email already registered")
)

// User represents the user entity (domain model)
type User struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null"`
	Email        string  `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string  `json:"-" gorm:"column:password;not null"` // Never expose password in JSON
	Photo        *string `json:"photo"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	// Create inserts the user and sets its ID; ErrEmailTaken on a unique violation
	Create(ctx context.Context, user *User) error
	// FindByEmail returns ErrUserNotFound when no row matches
	FindByEmail(ctx context.Context, email string) (*User, error)
	Count(ctx context.Context) (int64, error)
}
