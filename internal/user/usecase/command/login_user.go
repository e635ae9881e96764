package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tair/crumbly/internal/user/domain"
	"github.com/tair/crumbly/pkg/apperror"
	"github.com/tair/crumbly/pkg/auth"
)

var (
	// ErrCredentialsRequired is returned when email or password is empty
	ErrCredentialsRequired = apperror.Validation("Email and password are required")
	// ErrUnknownEmail is returned when no account matches the email
	ErrUnknownEmail = apperror.Unauthorized("User not found. Please register.")
	// ErrWrongPassword is returned when the password does not match
	ErrWrongPassword = apperror.Unauthorized("Incorrect password.")
)

// LoginUserCommand represents the command to login a user
type LoginUserCommand struct {
	Email    string
	Password string
}

// LoginResult contains the issued token and the user
type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginUserHandler handles user login command
type LoginUserHandler struct {
	repo   domain.UserRepository
	tokens *auth.TokenManager
}

// NewLoginUserHandler creates a new login user handler
func NewLoginUserHandler(repo domain.UserRepository, tokens *auth.TokenManager) *LoginUserHandler {
	return &LoginUserHandler{repo: repo, tokens: tokens}
}

// Handle executes the login user command
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResult, error) {
	email := strings.TrimSpace(cmd.Email)
	if email == "" || cmd.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := h.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, cmd.Password) {
		return nil, ErrWrongPassword
	}

	token, err := h.tokens.Generate(auth.Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Photo: user.Photo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}
