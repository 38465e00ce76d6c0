package token

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2/google"

	"github.com/jrsteele09/go-drive-proxy/internal/errors"
)

const (
	// expirySafetyMargin is shaved off the server-stated token lifetime
	// so a token is never presented right at the edge of its validity
	// window (clock skew, request latency).
	expirySafetyMargin = 60 * time.Second

	// defaultExpiresInSeconds applies when the token endpoint omits
	// expires_in. Google always sends it; the exchange still works
	// against servers that do not.
	defaultExpiresInSeconds = 3600
)

// tokenResponse is the token endpoint's reply to a refresh_token grant,
// as defined in RFC 6749.
type tokenResponse struct {
	// AccessToken is the bearer token presented to Google APIs.
	// Usage: "Authorization: Bearer <access_token>"
	AccessToken string `json:"access_token"`

	// ExpiresIn is the lifetime in seconds of the access token.
	// Example: 3599 (just under an hour)
	ExpiresIn int `json:"expires_in"`

	// TokenType indicates how to use the access token (always "Bearer").
	TokenType string `json:"token_type,omitempty"`

	// Scope is the space-separated list of granted permissions.
	Scope string `json:"scope,omitempty"`
}

// Refresher exchanges the long-lived refresh token for short-lived
// access tokens and writes each result into the shared Cache.
type Refresher struct {
	creds      Credentials
	cache      *Cache
	tokenURL   string
	httpClient *http.Client
	nowTime    func() time.Time // nowTime function (injectable for testing)
}

// RefresherOption defines a function type to modify the Refresher instance.
type RefresherOption func(*Refresher)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) RefresherOption {
	return func(r *Refresher) {
		r.nowTime = nowFunc
	}
}

// WithHTTPClient overrides the HTTP client used for the exchange.
func WithHTTPClient(client *http.Client) RefresherOption {
	return func(r *Refresher) {
		r.httpClient = client
	}
}

// WithTokenURL overrides the token endpoint. The default is Google's
// standard endpoint.
func WithTokenURL(tokenURL string) RefresherOption {
	return func(r *Refresher) {
		r.tokenURL = tokenURL
	}
}

// NewRefresher initializes a Refresher writing into cache. Credentials
// are deliberately not validated here: a missing field surfaces as an
// error on every Refresh call instead of crashing startup.
func NewRefresher(creds Credentials, cache *Cache, options ...RefresherOption) (*Refresher, error) {
	if cache == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[NewRefresher] cache is required")
	}

	r := &Refresher{
		creds:      creds,
		cache:      cache,
		tokenURL:   google.Endpoint.TokenURL,
		httpClient: http.DefaultClient,
		nowTime:    time.Now,
	}
	for _, option := range options {
		option(r)
	}
	return r, nil
}

// Token returns a valid access token, serving from the cache while its
// entry is live and refreshing otherwise.
func (r *Refresher) Token(ctx context.Context) (string, error) {
	if accessToken, ok := r.cache.Get(); ok {
		return accessToken, nil
	}
	return r.Refresh(ctx)
}

// ExpiresAt reports the expiry instant of the currently cached token.
func (r *Refresher) ExpiresAt() time.Time {
	return r.cache.ExpiresAt()
}

// Refresh performs one refresh_token exchange. It always goes to the
// network, makes exactly one call, never retries, and replaces the
// cached token wholesale on success. Concurrent refreshes are not
// serialized; each writes its own valid result (see Cache.set).
func (r *Refresher) Refresh(ctx context.Context) (string, error) {
	if err := r.creds.Validate(); err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("client_id", r.creds.ClientID)
	form.Set("client_secret", r.creds.ClientSecret)
	form.Set("refresh_token", r.creds.RefreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrapf(err, "[Refresher Refresh] building token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "[Refresher Refresh] calling token endpoint")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "[Refresher Refresh] reading token response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error().Int("status", resp.StatusCode).Msg("token refresh rejected")
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", errors.Wrapf(errors.ErrMalformedTokenResponse, "[Refresher Refresh] decoding token response: %v", err)
	}
	if tokenResp.AccessToken == "" {
		return "", errors.Wrapf(errors.ErrMalformedTokenResponse, "[Refresher Refresh] response has no access_token")
	}

	expiresIn := tokenResp.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpiresInSeconds
	}
	expiresAt := r.nowTime().Add(time.Duration(expiresIn)*time.Second - expirySafetyMargin)
	r.cache.set(tokenResp.AccessToken, expiresAt)

	log.Debug().Time("expires_at", expiresAt).Msg("access token refreshed")
	return tokenResp.AccessToken, nil
}
