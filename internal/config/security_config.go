package config

import "time"

type SecurityConfig interface {
	GetAdminUsername() string
	GetAdminPassword() string
	GetAdminPasswordHash() string
	GetMaxSessionAge() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetAdminUsername() string {
	return GetEnv("ADMIN_USERNAME", "")
}

// GetAdminPassword returns the plaintext login password. Ignored when
// ADMIN_PASSWORD_HASH is set.
func (Security) GetAdminPassword() string {
	return GetEnv("ADMIN_PASSWORD", "")
}

// GetAdminPasswordHash returns a bcrypt hash of the login password.
func (Security) GetAdminPasswordHash() string {
	return GetEnv("ADMIN_PASSWORD_HASH", "")
}

func (Security) GetMaxSessionAge() time.Duration {
	return 30 * time.Minute // Sessions expire after 30 minutes
}
