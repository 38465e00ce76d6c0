package token_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-drive-proxy/internal/errors"
	"github.com/jrsteele09/go-drive-proxy/token"
)

const (
	testClientID     = "a"
	testClientSecret = "b"
	testRefreshToken = "c"
)

// testFixture holds the refresher under test plus a fake token endpoint
type testFixture struct {
	cache        *token.Cache
	refresher    *token.Refresher
	endpoint     *httptest.Server
	refreshCalls atomic.Int64
	now          time.Time
}

// setupTestFixture wires a refresher with a deterministic clock against
// an httptest token endpoint served by handler
func setupTestFixture(t *testing.T, handler http.HandlerFunc) *testFixture {
	t.Helper()

	f := &testFixture{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	f.endpoint = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.refreshCalls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(f.endpoint.Close)

	nowFunc := func() time.Time { return f.now }
	f.cache = token.NewCache(token.WithCacheNowTime(nowFunc))

	refresher, err := token.NewRefresher(
		token.Credentials{ClientID: testClientID, ClientSecret: testClientSecret, RefreshToken: testRefreshToken},
		f.cache,
		token.WithTokenURL(f.endpoint.URL),
		token.WithNowTime(nowFunc),
	)
	require.NoError(t, err)
	f.refresher = refresher

	return f
}

// tokenHandler replies with a fixed access token and lifetime
func tokenHandler(accessToken string, expiresIn int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": accessToken,
			"expires_in":   expiresIn,
			"token_type":   "Bearer",
		})
	}
}

// TestNewRefresher_RequiresCache verifies construction fails without a cache
func TestNewRefresher_RequiresCache(t *testing.T) {
	_, err := token.NewRefresher(token.Credentials{}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cache is required")
}

// TestRefresher_Refresh_SendsRefreshTokenGrant verifies the form-encoded exchange
func TestRefresher_Refresh_SendsRefreshTokenGrant(t *testing.T) {
	var (
		form        url.Values
		contentType string
	)
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = r.ParseForm()
		form = r.PostForm
		tokenHandler("tok-1", 3600)(w, r)
	})

	accessToken, err := f.refresher.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok-1", accessToken)

	require.Equal(t, "application/x-www-form-urlencoded", contentType)
	require.Equal(t, testClientID, form.Get("client_id"))
	require.Equal(t, testClientSecret, form.Get("client_secret"))
	require.Equal(t, testRefreshToken, form.Get("refresh_token"))
	require.Equal(t, "refresh_token", form.Get("grant_type"))
}

// TestRefresher_Refresh_SetsExpiryWithSafetyMargin checks the 60s margin arithmetic
func TestRefresher_Refresh_SetsExpiryWithSafetyMargin(t *testing.T) {
	f := setupTestFixture(t, tokenHandler("tok-1", 3600))

	_, err := f.refresher.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, f.now.Add(3540*time.Second), f.cache.ExpiresAt())
}

// TestRefresher_Refresh_MissingCredentials verifies no network call is made
// when a credential field is absent
func TestRefresher_Refresh_MissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds token.Credentials
	}{
		{"missing client_id", token.Credentials{ClientSecret: testClientSecret, RefreshToken: testRefreshToken}},
		{"missing client_secret", token.Credentials{ClientID: testClientID, RefreshToken: testRefreshToken}},
		{"missing refresh_token", token.Credentials{ClientID: testClientID, ClientSecret: testClientSecret}},
		{"all missing", token.Credentials{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int64
			endpoint := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
			}))
			defer endpoint.Close()

			refresher, err := token.NewRefresher(tc.creds, token.NewCache(), token.WithTokenURL(endpoint.URL))
			require.NoError(t, err)

			_, err = refresher.Refresh(context.Background())
			require.Error(t, err)
			require.True(t, errors.Is(err, errors.ErrMissingCredentials))
			require.Equal(t, int64(0), calls.Load())
		})
	}
}

// TestRefresher_Refresh_UpstreamError verifies non-2xx replies surface
// status and raw body
func TestRefresher_Refresh_UpstreamError(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	})

	_, err := f.refresher.Refresh(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrTokenEndpoint))

	var upstreamErr *token.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	require.Equal(t, http.StatusBadRequest, upstreamErr.Status)
	require.Contains(t, upstreamErr.Body, "invalid_grant")

	// A failed refresh must leave the cache untouched
	_, ok := f.cache.Get()
	require.False(t, ok)
}

// TestRefresher_Refresh_MissingAccessToken verifies a 200 without an
// access_token field is rejected
func TestRefresher_Refresh_MissingAccessToken(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"expires_in": 3600}`))
	})

	_, err := f.refresher.Refresh(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrMalformedTokenResponse))
}

// TestRefresher_Refresh_MalformedJSON verifies an undecodable body is rejected
func TestRefresher_Refresh_MalformedJSON(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	})

	_, err := f.refresher.Refresh(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrMalformedTokenResponse))
}

// TestRefresher_Refresh_DefaultsExpiresIn verifies the lenient one-hour
// default when the endpoint omits expires_in
func TestRefresher_Refresh_DefaultsExpiresIn(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1"}`))
	})

	_, err := f.refresher.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, f.now.Add(3540*time.Second), f.cache.ExpiresAt())
}

// TestRefresher_Token_Lifecycle walks a short-lived token through issue,
// cache hits, and expiry
func TestRefresher_Token_Lifecycle(t *testing.T) {
	f := setupTestFixture(t, tokenHandler("T1", 120))

	// First use with an empty cache refreshes exactly once
	accessToken, err := f.refresher.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "T1", accessToken)
	require.Equal(t, int64(1), f.refreshCalls.Load())

	// Still valid at +50s (expiry is at +60s after the safety margin)
	f.now = f.now.Add(50 * time.Second)
	cached, ok := f.cache.Get()
	require.True(t, ok)
	require.Equal(t, "T1", cached)

	accessToken, err = f.refresher.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "T1", accessToken)
	require.Equal(t, int64(1), f.refreshCalls.Load())

	// Expired at +61s
	f.now = f.now.Add(11 * time.Second)
	_, ok = f.cache.Get()
	require.False(t, ok)

	// Next Token call refreshes again
	_, err = f.refresher.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), f.refreshCalls.Load())
}

// TestRefresher_Refresh_ConcurrentLastWriteWins verifies duplicate
// in-flight refreshes both complete and one of their tokens remains
func TestRefresher_Refresh_ConcurrentLastWriteWins(t *testing.T) {
	var issued atomic.Int64
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		tokenHandler(fmt.Sprintf("tok-%d", issued.Add(1)), 3600)(w, r)
	})

	var wg sync.WaitGroup
	results := make([]string, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.refresher.Refresh(context.Background())
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	require.Equal(t, int64(2), f.refreshCalls.Load())
	cached, ok := f.cache.Get()
	require.True(t, ok)
	require.Contains(t, results, cached)
}
