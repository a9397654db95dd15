package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/AadiZee/car-system-api/internal/domain"
	jwtinfra "github.com/AadiZee/car-system-api/internal/infrastructure/jwt"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenHeader is the request header carrying the signed session token.
// The same name is used for the response cookie set on login.
const TokenHeader = "access-token"

// UserResolver resolves a token subject against the credential store.
type UserResolver interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
}

// Resolve is stage one of the auth gate, applied to every request. A missing
// token is fine — the request continues anonymous so public endpoints work.
// A present-but-invalid token is a hard 401, never a silent skip.
func Resolve(provider *jwtinfra.Provider, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(TokenHeader)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := provider.Verify(tokenStr)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, domain.ErrInvalidToken.Error())
				return
			}
			u, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Token subject no longer exists; treat as anonymous so
					// stage two rejects where it matters.
					next.ServeHTTP(w, r)
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "could not resolve user")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth is stage two, applied by routes that need an identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			writeJSONError(w, http.StatusUnauthorized, "user not logged in")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext extracts the resolved identity from the request context.
func IdentityFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(identityKey).(*domain.User)
	return u, ok
}

// WithIdentity returns a context carrying the identity. Exported for handler tests.
func WithIdentity(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, identityKey, u)
}
