package google_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-drive-proxy/google"
)

// expiringTokenProvider is a fakeTokenProvider with a known expiry
type expiringTokenProvider struct {
	fakeTokenProvider
	expiry time.Time
}

func (e *expiringTokenProvider) ExpiresAt() time.Time {
	return e.expiry
}

func TestTokenSourceAdapter_Token(t *testing.T) {
	provider := &fakeTokenProvider{cached: "T1"}
	ts := google.NewTokenSource(context.Background(), provider)

	tok, err := ts.Token()
	require.NoError(t, err)
	require.Equal(t, "T1", tok.AccessToken)
	require.Equal(t, "Bearer", tok.TokenType)
	require.True(t, tok.Expiry.IsZero(), "providers without an expiry leave it unset")
}

func TestTokenSourceAdapter_TokenExpiry(t *testing.T) {
	expiry := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	provider := &expiringTokenProvider{
		fakeTokenProvider: fakeTokenProvider{cached: "T1"},
		expiry:            expiry,
	}
	ts := google.NewTokenSource(context.Background(), provider)

	tok, err := ts.Token()
	require.NoError(t, err)
	require.Equal(t, "T1", tok.AccessToken)
	require.Equal(t, expiry, tok.Expiry)
}

func TestTokenSourceAdapter_TokenError(t *testing.T) {
	provider := &fakeTokenProvider{refreshErr: fmt.Errorf("exchange down")}
	ts := google.NewTokenSource(context.Background(), provider)

	_, err := ts.Token()
	require.Error(t, err)
	require.Contains(t, err.Error(), "exchange down")
}
