package loginsession

import "time"

// Session is the server-side record behind an issued bearer token. The
// token itself is the lookup key and is never stored in the session.
type Session struct {
	Username string

	// Session management
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
}
