package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the authenticated login session
	ContextKeySession ContextKey = "session"
	// ContextKeyUsername stores the logged-in username
	ContextKeyUsername ContextKey = "username"
)

// RequireSessionAuth validates the bearer session token issued by the
// login endpoint and injects the session into the request context.
func (s *Server) RequireSessionAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, "unauthorized", "Missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				writeJSONError(w, "unauthorized", "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			sessionToken := parts[1]
			if sessionToken == "" {
				writeJSONError(w, "unauthorized", "Empty token", http.StatusUnauthorized)
				return
			}

			session, err := s.loginSessions.Get(sessionToken)
			if err != nil {
				writeJSONError(w, "unauthorized", "Invalid session", http.StatusUnauthorized)
				return
			}

			if session.ExpiresAt.Before(time.Now()) {
				if err := s.loginSessions.Delete(sessionToken); err != nil {
					log.Ctx(r.Context()).Err(err).Msg("deleting expired session")
				}
				writeJSONError(w, "unauthorized", "Session expired", http.StatusUnauthorized)
				return
			}

			// Inject session info into context
			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			ctx = context.WithValue(ctx, ContextKeyUsername, session.Username)
			r = r.WithContext(ctx)

			next(w, r)
		}
	}
}
