package token

import (
	"github.com/jrsteele09/go-drive-proxy/internal/errors"
)

// Credentials holds the Google OAuth2 client credentials and the
// long-lived refresh token the proxy exchanges for access tokens.
// Loaded once at startup and immutable for the process lifetime.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Validate checks that every field is present. A missing field is a
// deployment problem, the same on every call, so it is re-checked
// before any exchange rather than trusted from startup.
func (c Credentials) Validate() error {
	if c.ClientID == "" {
		return errors.Wrapf(errors.ErrMissingCredentials, "[Credentials Validate] client_id is required")
	}
	if c.ClientSecret == "" {
		return errors.Wrapf(errors.ErrMissingCredentials, "[Credentials Validate] client_secret is required")
	}
	if c.RefreshToken == "" {
		return errors.Wrapf(errors.ErrMissingCredentials, "[Credentials Validate] refresh_token is required")
	}
	return nil
}
