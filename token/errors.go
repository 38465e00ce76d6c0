package token

import (
	"fmt"

	"github.com/jrsteele09/go-drive-proxy/internal/errors"
)

// UpstreamError is a non-2xx reply from the token endpoint. The raw
// body is preserved for diagnostics.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("token endpoint returned %d: %s", e.Status, e.Body)
}

// Unwrap ties UpstreamError into the sentinel chain so callers can use
// errors.Is(err, errors.ErrTokenEndpoint).
func (e *UpstreamError) Unwrap() error {
	return errors.ErrTokenEndpoint
}
