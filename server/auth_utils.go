package server

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// sessionTokenBytes is the entropy of an issued session token.
const sessionTokenBytes = 32

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// checkPasswordHash compares a plaintext password with a bcrypt hash
func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// credentialsMatch validates a login submission against the configured
// admin account. A configured bcrypt hash takes precedence over the
// plaintext password variable.
func (s *Server) credentialsMatch(username, password string) bool {
	adminUsername := s.config.GetAdminUsername()
	if adminUsername == "" || username != adminUsername {
		return false
	}

	if hash := s.config.GetAdminPasswordHash(); hash != "" {
		return checkPasswordHash(password, hash)
	}

	adminPassword := s.config.GetAdminPassword()
	return adminPassword != "" && password == adminPassword
}

// bearerToken extracts the token from an Authorization header already
// validated by RequireSessionAuth.
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}
