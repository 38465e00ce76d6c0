package google

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// TokenSourceAdapter adapts a TokenProvider to oauth2.TokenSource so
// the proxy's token management can back standard Google API clients
// (option.WithTokenSource).
type TokenSourceAdapter struct {
	tokens TokenProvider
	ctx    context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider.
func NewTokenSource(ctx context.Context, tokens TokenProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{tokens: tokens, ctx: ctx}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.tokens.Token(t.ctx)
	if err != nil {
		return nil, err
	}

	tok := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}
	// Providers that know their expiry pass it along so callers like
	// oauth2.ReuseTokenSource refresh at the right moment.
	if reporter, ok := t.tokens.(interface{ ExpiresAt() time.Time }); ok {
		tok.Expiry = reporter.ExpiresAt()
	}
	return tok, nil
}
