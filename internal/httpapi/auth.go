package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/opsdesk/opsdesk/internal/domain/org"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Principal is the authenticated caller: the user behind the bearer token
// plus the permissions their role grants.
type Principal struct {
	UserID      string
	Name        string
	Permissions []org.Permission
}

// Has reports whether the principal holds the permission.
func (p *Principal) Has(perm org.Permission) bool {
	for _, granted := range p.Permissions {
		if granted == perm {
			return true
		}
	}
	return false
}

type principalKey struct{}

// PrincipalResolver resolves a principal from a bearer token.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*Principal, error)
}

// PrincipalFromContext returns the principal from context, if present.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			principal, err := resolver.ResolvePrincipal(r.Context(), token)
			if err != nil || principal == nil {
				writeError(w, http.StatusUnauthorized, "invalid bearer token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NoAuthMiddleware injects an all-permission principal when auth is
// disabled. Local development only.
func NoAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := &Principal{
				UserID:      "local",
				Name:        "Local Development",
				Permissions: org.AllPermissions,
			}
			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requirePermission wraps a handler with a role permission check.
func requirePermission(perm org.Permission, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing principal", nil)
			return
		}
		if !principal.Has(perm) {
			writeError(w, http.StatusForbidden, "insufficient permissions", nil)
			return
		}
		next(w, r)
	}
}
