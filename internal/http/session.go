package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"opsboard/internal/core"
)

type contextKey string

const principalKey contextKey = "principal"

// principalFrom returns the caller identity stored by withSession.
func principalFrom(ctx context.Context) (core.Principal, bool) {
	p, ok := ctx.Value(principalKey).(core.Principal)
	return p, ok
}

// sessionToken extracts the bearer token from the Authorization header,
// falling back to the session cookie.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie("session"); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// withSession resolves the session token against the users tab and injects
// the resulting Principal into the request context. No ambient state: every
// downstream read goes through the context value.
func (s *Server) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing session token", "")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.sheetTimeout)
		defer cancel()
		p, err := s.users.FindUserByToken(ctx, token)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "invalid session token", "")
				return
			}
			writeUpstreamError(w, r, "session lookup", err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), principalKey, p)))
	}
}

// requireAdmin guards admin-only endpoints with the single-role compare.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := principalFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing session token", "")
			return
		}
		if !p.IsAdmin() {
			slog.WarnContext(r.Context(), "Admin endpoint denied",
				"email", p.Email,
				"role", p.Role,
				"url", r.URL.Path)
			writeError(w, http.StatusForbidden, "admin role required", "")
			return
		}
		next(w, r)
	}
}
