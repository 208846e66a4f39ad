package middleware

import (
	"context"
	"net/http"
	"strings"

	"assetverse/models"
	"assetverse/utils"
)

type contextKey int

const principalKey contextKey = iota

// PrincipalFrom returns the authenticated principal stored by Authenticate.
func PrincipalFrom(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey).(models.Principal)
	return p, ok
}

// WithPrincipal is used by handler tests to inject a principal directly.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Authenticator validates bearer tokens and attaches a typed principal to
// the request context. Role checks happen separately in RequireRole so the
// route table reads as path + role.
type Authenticator struct {
	tokens *utils.TokenIssuer
}

func NewAuthenticator(tokens *utils.TokenIssuer) *Authenticator {
	return &Authenticator{tokens: tokens}
}

func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		principal, err := a.tokens.Validate(tokenString)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// RequireRole rejects authenticated callers whose role is not in the
// allowed set.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			for _, role := range roles {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		})
	}
}
