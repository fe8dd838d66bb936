// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// Principal is the authenticated identity forwarded by the upstream auth
// proxy. This service never authenticates anyone itself; it only reads
// the identity headers the proxy injects and enforces roles.
type Principal struct {
	UserID string
	Name   string
	Role   string
}

type principalKey struct{}

// PrincipalFromContext returns the principal stored by RequireRole.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// RequireRole extracts the caller identity from the X-User-Id,
// X-User-Name, and X-User-Role headers and rejects the request with 403
// unless the role is one of the allowed ones. Role comparison is
// case-insensitive.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := Principal{
				UserID: strings.TrimSpace(r.Header.Get("X-User-Id")),
				Name:   strings.TrimSpace(r.Header.Get("X-User-Name")),
				Role:   strings.TrimSpace(r.Header.Get("X-User-Role")),
			}

			ok := false
			for _, role := range allowed {
				if strings.EqualFold(p.Role, role) {
					ok = true
					break
				}
			}
			if !ok {
				slog.Warn("auth: insufficient role",
					"path", r.URL.Path,
					"method", r.Method,
					"role", p.Role,
					"remote_addr", r.RemoteAddr,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"admin or manager role required","code":"AUTH_FORBIDDEN"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
		})
	}
}
