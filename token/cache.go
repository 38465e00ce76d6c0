package token

import (
	"sync"
	"time"
)

// Cache holds the most recently obtained access token and its expiry.
// Exactly one instance is shared by every outbound call; only a
// completed refresh writes to it, and each write replaces the whole
// entry. The zero state is "expired", so the first Get always reports
// a refresh is needed.
type Cache struct {
	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time

	nowTime func() time.Time
}

// CacheOption defines a function type to modify the Cache instance.
type CacheOption func(*Cache)

// WithCacheNowTime sets the now time function (primarily for testing)
func WithCacheNowTime(nowFunc func() time.Time) CacheOption {
	return func(c *Cache) {
		c.nowTime = nowFunc
	}
}

func NewCache(options ...CacheOption) *Cache {
	c := &Cache{nowTime: time.Now}
	for _, option := range options {
		option(c)
	}
	return c
}

// Get returns the cached access token while it is still valid. ok is
// false when no token is held or the expiry has been reached, in which
// case the caller must refresh. Pure read, no side effects.
func (c *Cache) Get() (accessToken string, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.accessToken == "" || !c.nowTime().Before(c.expiresAt) {
		return "", false
	}
	return c.accessToken, true
}

// ExpiresAt returns the expiry instant of the cached token. Zero when
// nothing has been cached yet.
func (c *Cache) ExpiresAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiresAt
}

// set replaces the token and expiry wholesale. Refreshes are not
// serialized, so two callers may both land here; every stored token is
// individually valid and the last write wins.
func (c *Cache) set(accessToken string, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.expiresAt = expiresAt
}
