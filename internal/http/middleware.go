package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pestlead/leadquote/internal/domain"
	"github.com/pestlead/leadquote/internal/store"
	"github.com/pestlead/leadquote/pkg/httpx"
	"github.com/pestlead/leadquote/pkg/jwtx"
	"github.com/pestlead/leadquote/pkg/slogx"
)

type identityCtxKey struct{}

// IdentityFrom returns the authenticated caller placed in the context by
// SessionMiddleware.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return id, ok
}

// SessionMiddleware authenticates requests via the session cookie. The token
// is verified, then the user is re-resolved from the store so revoked or
// deactivated accounts drop out immediately rather than at token expiry.
func SessionMiddleware(verifier jwtx.Verifier, st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := httpx.SessionToken(r)
			if token == "" {
				respond(w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				log.Warn("session token rejected", slog.Any("error", err))
				respond(w, http.StatusUnauthorized, "Invalid or expired session", nil)
				return
			}

			user, err := st.Users().GetUserByID(ctx, claims.Subject)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					// Valid token for a user that no longer exists.
					respond(w, http.StatusNotFound, "User not found", nil)
					return
				}
				log.Error("failed to resolve session user", slog.Any("error", err))
				respond(w, http.StatusInternalServerError, "Internal server error", nil)
				return
			}
			if !user.IsActive {
				log.Warn("session for deactivated account", slog.String("user_id", user.ID))
				respond(w, http.StatusUnauthorized, "Invalid or expired session", nil)
				return
			}

			identity := domain.Identity{
				UserID: user.ID,
				Email:  user.Email,
				Role:   user.Role,
			}
			ctx = context.WithValue(ctx, identityCtxKey{}, identity)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to callers holding one of the allowed roles.
// It must sit inside SessionMiddleware in the chain.
func RequireRole(allowed ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				respond(w, http.StatusUnauthorized, "Authentication required", nil)
				return
			}
			if !identity.Role.OneOf(allowed...) {
				respond(w, http.StatusForbidden,
					"You are not allowed to perform this action", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
