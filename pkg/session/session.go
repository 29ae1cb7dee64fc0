package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

const (
	RoleCustomer  = "customer"
	RoleCourier   = "courier"
	RoleAdmin     = "admin"
	RoleDeveloper = "developer"
)

// Session is the read-only caller context resolved once per request by the
// Middleware. Handlers read it; nothing mutates it after resolution.
type Session struct {
	UserID uuid.UUID
	Role   string
	Name   string
	Email  string
}

// IsPrivileged reports whether the caller holds the unrestricted
// developer role.
func (s Session) IsPrivileged() bool {
	return s.Role == RoleDeveloper
}

type ctxKey struct{}

// FromContext returns the session resolved by Middleware, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// WithSession returns a context carrying the given session. Exposed for
// tests and internal service-to-service calls.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// Middleware resolves the caller identity from the gateway-set headers.
// Requests without a valid user id simply carry no session; role gates
// decide what that means per route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if idStr == "" {
			next.ServeHTTP(w, r)
			return
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		s := Session{
			UserID: id,
			Role:   strings.TrimSpace(r.Header.Get("X-User-Role")),
			Name:   strings.TrimSpace(r.Header.Get("X-User-Name")),
			Email:  strings.TrimSpace(r.Header.Get("X-User-Email")),
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequireRole gates a route on an explicit role allow-list. Missing
// session yields 401, a role outside the list 403; the SPA redirects home
// on either.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := FromContext(r.Context())
			if !ok {
				apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if _, ok := allowed[s.Role]; !ok {
				apt.RespondError(w, http.StatusForbidden, "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
