package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tair/crumbly/internal/user/domain"
	"github.com/tair/crumbly/kafka"
	"github.com/tair/crumbly/pkg/apperror"
	"github.com/tair/crumbly/pkg/auth"
	"github.com/tair/crumbly/pkg/logger"
	"github.com/tair/crumbly/pkg/storage"
)

var (
	// ErrRegistrationFieldsRequired is returned when name, email or password is empty
	ErrRegistrationFieldsRequired = apperror.Validation("Name, email and password are required")
	// ErrUnsupportedPhoto is returned for uploads without an image extension
	ErrUnsupportedPhoto = apperror.Validation("Photo must be a jpg, jpeg, png, gif or webp image")
)

// ErrUserExists returns the conflict reported for an already registered email
func ErrUserExists() *apperror.Error {
	return apperror.Conflict("User already exists. Please log in.").WithLabel(apperror.LabelExists)
}

// Photo is an uploaded profile picture
type Photo struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
	Photo    *Photo // Optional
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo       domain.UserRepository
	photos     storage.PhotoStorage
	events     kafka.EventPublisher
	bcryptCost int
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository, photos storage.PhotoStorage, events kafka.EventPublisher, bcryptCost int) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo, photos: photos, events: events, bcryptCost: bcryptCost}
}

// Handle executes the register user command
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.TrimSpace(cmd.Email)

	// Validation
	if cmd.Name == "" || cmd.Email == "" || cmd.Password == "" {
		return nil, ErrRegistrationFieldsRequired
	}
	if cmd.Photo != nil && !storage.IsAllowedImage(cmd.Photo.Filename) {
		return nil, ErrUnsupportedPhoto
	}

	// Check if user already exists
	existing, err := h.repo.FindByEmail(ctx, cmd.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists()
	}

	// Hash password
	hashedPassword, err := auth.HashPassword(cmd.Password, h.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: hashedPassword,
	}

	if cmd.Photo != nil {
		name := storage.NewPhotoName(cmd.Photo.Filename)
		if err := h.photos.Save(ctx, name, cmd.Photo.Content, cmd.Photo.Size, cmd.Photo.ContentType); err != nil {
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		user.Photo = &name
	}

	if err := h.repo.Create(ctx, user); err != nil {
		h.discardPhoto(ctx, user.Photo)
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, ErrUserExists()
		}
		return nil, err
	}

	kafka.PublishBestEffort(ctx, h.events, kafka.NewUserRegistered(user.ID))
	return user, nil
}

func (h *RegisterUserHandler) discardPhoto(ctx context.Context, name *string) {
	if name == nil {
		return
	}
	if err := h.photos.Delete(ctx, *name); err != nil {
		logger.Warn(ctx).Err(err).Str("photo", *name).Msg("Failed to remove orphaned photo")
	}
}
