package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-drive-proxy/apimodel"
	"github.com/jrsteele09/go-drive-proxy/server/loginsession"
)

// LoginHandler checks the submitted credentials against the configured
// admin account and issues an opaque bearer session token.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var loginReq apimodel.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			writeJSONError(w, "invalid_request", "Failed to parse JSON body", http.StatusBadRequest)
			return
		}

		if !s.credentialsMatch(loginReq.Username, loginReq.Password) {
			log.Ctx(r.Context()).Warn().Str("username", loginReq.Username).Msg("rejected login")
			writeJSONError(w, "invalid_credentials", "Invalid username or password", http.StatusUnauthorized)
			return
		}

		maxSessionAge := s.config.GetMaxSessionAge()
		now := time.Now()
		sessionToken := generateRandomString(sessionTokenBytes)
		session := loginsession.Session{
			Username:  loginReq.Username,
			CreatedAt: now,
			ExpiresAt: now.Add(maxSessionAge),
		}

		if err := s.loginSessions.Upsert(sessionToken, session); err != nil {
			log.Ctx(r.Context()).Err(err).Msg("storing login session")
			writeJSONError(w, "internal_error", "Failed to create session", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		writeJSON(w, http.StatusOK, apimodel.LoginResponse{
			Token:     sessionToken,
			ExpiresIn: int(maxSessionAge.Seconds()),
		})
	}
}

// LogoutHandler discards the presented session.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionToken := bearerToken(r)
		if err := s.loginSessions.Delete(sessionToken); err != nil {
			log.Ctx(r.Context()).Err(err).Msg("deleting login session")
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
	}
}
