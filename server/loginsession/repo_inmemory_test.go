package loginsession_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-drive-proxy/internal/errors"
	"github.com/jrsteele09/go-drive-proxy/server/loginsession"
)

// TestInMemoryLoginSessionRepo covers the session store round trip.
func TestInMemoryLoginSessionRepo(t *testing.T) {
	repo := loginsession.NewInMemoryLoginSessionRepo()

	session := loginsession.Session{
		Username:  "admin",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}

	require.NoError(t, repo.Upsert("session-1", session))

	stored, err := repo.Get("session-1")
	require.NoError(t, err)
	require.Equal(t, session.Username, stored.Username)
	require.Equal(t, session.ExpiresAt, stored.ExpiresAt)

	require.NoError(t, repo.Delete("session-1"))

	_, err = repo.Get("session-1")
	require.ErrorIs(t, err, errors.ErrSessionNotFound)
}

// TestInMemoryLoginSessionRepo_Validation rejects empty session IDs.
func TestInMemoryLoginSessionRepo_Validation(t *testing.T) {
	repo := loginsession.NewInMemoryLoginSessionRepo()

	require.Error(t, repo.Upsert("", loginsession.Session{}))

	_, err := repo.Get("")
	require.Error(t, err)

	require.Error(t, repo.Delete(""))
}

// TestInMemoryLoginSessionRepo_DeleteAbsent tolerates unknown IDs.
func TestInMemoryLoginSessionRepo_DeleteAbsent(t *testing.T) {
	repo := loginsession.NewInMemoryLoginSessionRepo()
	require.NoError(t, repo.Delete("never-existed"))
}
