package server

import (
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-storefront-api/auth"
	apperrors "github.com/jrsteele09/go-storefront-api/internal/errors"
	"github.com/jrsteele09/go-storefront-api/users"
)

const (
	// Every 401 carries the same message so the cause is never revealed
	unauthorizedMsg = "unauthorized"
	forbiddenMsg    = "forbidden: insufficient role"
)

// RequireAuth validates a Bearer token and stores its claims in the request context
func (s *Server) RequireAuth() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeError(w, r, apperrors.Authentication(unauthorizedMsg))
				return
			}

			claims, err := s.tokens.Verify(raw)
			if err != nil {
				log.Debug().Str("path", r.URL.Path).Msg("rejected bearer token")
				writeError(w, r, apperrors.Authentication(unauthorizedMsg))
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole must be chained after RequireAuth
func (s *Server) RequireRole(roles ...users.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, r, apperrors.Authentication(unauthorizedMsg))
				return
			}
			if !slices.Contains(roles, claims.Role) {
				writeError(w, r, apperrors.Authorization(forbiddenMsg))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	raw := strings.TrimSpace(parts[1])
	return raw, raw != ""
}
