package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/crumbly/internal/user/usecase/query"
	"github.com/tair/crumbly/pkg/auth"
	"github.com/tair/crumbly/pkg/httpx"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenFromRequest returns the session token from the cookie, falling back to a Bearer header
func TokenFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	// Extract token from "Bearer <token>"
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// AuthMiddleware validates the session token and stores the identity in the request context
func AuthMiddleware(session *query.GetSessionHandler, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := session.Handle(r.Context(), query.GetSessionQuery{Token: TokenFromRequest(r, cookieName)})
			if err != nil {
				httpx.RespondError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the identity stored by AuthMiddleware
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok
}
