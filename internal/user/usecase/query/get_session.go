package query

import (
	"context"

	"github.com/tair/crumbly/pkg/apperror"
	"github.com/tair/crumbly/pkg/auth"
)

// ErrNotAuthenticated is returned when the session token is absent or invalid
var ErrNotAuthenticated = apperror.Unauthorized("Not authenticated")

// GetSessionQuery carries the raw session token
type GetSessionQuery struct {
	Token string
}

// GetSessionHandler resolves a session token into the signed-in identity
type GetSessionHandler struct {
	tokens *auth.TokenManager
}

// NewGetSessionHandler creates a new get session handler
func NewGetSessionHandler(tokens *auth.TokenManager) *GetSessionHandler {
	return &GetSessionHandler{tokens: tokens}
}

// Handle validates the token and returns its identity
func (h *GetSessionHandler) Handle(_ context.Context, q GetSessionQuery) (*auth.Identity, error) {
	if q.Token == "" {
		return nil, ErrNotAuthenticated
	}
	claims, err := h.tokens.Validate(q.Token)
	if err != nil {
		return nil, apperror.Unauthorized(ErrNotAuthenticated.Message).Wrap(err)
	}
	identity := claims.Identity()
	return &identity, nil
}
