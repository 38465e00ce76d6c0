package google

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/jrsteele09/go-drive-proxy/internal/errors"
)

// Upstream API paths, joined to the configured base URLs by callers.
const (
	DriveFilesPath   = "/drive/v3/files"
	SpreadsheetsPath = "/v4/spreadsheets"
)

// RequiredScopes are the OAuth scopes the stored refresh token must
// have been granted for every proxied operation to work.
var RequiredScopes = []string{
	drive.DriveReadonlyScope,
	sheets.SpreadsheetsScope,
}

// TokenProvider yields bearer tokens for outbound calls. Token serves
// from the cache when it holds a live entry; Refresh always performs
// the exchange against the authorization server.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// Request is an outbound Google API call. The body is held as bytes so
// the request can be rebuilt and re-issued after a token refresh.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response carries the upstream status, headers and raw body back to
// the caller. Non-2xx statuses are returned here, not as errors;
// interpreting them is the caller's responsibility.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// attempt tracks where a call is in its retry budget.
type attempt int

const (
	firstAttempt attempt = iota
	retryExhausted
)

// Client issues authenticated requests to Google APIs. Every request
// carries a valid bearer token, and a single 401 is self-healed by
// forcing one refresh and re-issuing the request once. At most two
// upstream attempts are ever made per call.
type Client struct {
	tokens     TokenProvider
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for upstream calls.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

func NewClient(tokens TokenProvider, options ...ClientOption) (*Client, error) {
	if tokens == nil {
		return nil, errors.Wrapf(errors.ErrInternal, "[NewClient] token provider is required")
	}

	c := &Client{tokens: tokens, httpClient: http.DefaultClient}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// Do performs req with a bearer token attached. On a 401 it forces one
// refresh and re-issues the request; the second reply is returned as
// is, as is any non-401 status on the first.
func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	accessToken, err := c.tokens.Token(ctx)
	if err != nil {
		return Response{}, err
	}

	state := firstAttempt
	for {
		resp, err := c.issue(ctx, req, accessToken)
		if err != nil {
			return Response{}, err
		}

		if resp.StatusCode != http.StatusUnauthorized || state == retryExhausted {
			return resp, nil
		}

		// The token just used is presumed stale even if the cache said
		// it was valid, so bypass the cache check entirely and retry
		// with whatever the exchange returns.
		log.Warn().Str("url", req.URL).Msg("unauthorized from upstream, forcing token refresh")
		accessToken, err = c.tokens.Refresh(ctx)
		if err != nil {
			return Response{}, err
		}
		state = retryExhausted
	}
}

func (c *Client) issue(ctx context.Context, req Request, accessToken string) (Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return Response{}, errors.Wrapf(err, "[Client Do] building request for %s", req.URL)
	}
	for name, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, errors.Wrapf(err, "[Client Do] calling %s", req.URL)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, errors.Wrapf(err, "[Client Do] reading response from %s", req.URL)
	}

	return Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}
