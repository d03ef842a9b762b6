package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrContentTypeNotSupported is returned when response content type is not supported.
var ErrContentTypeNotSupported = errors.New("response content type not supported")

// maxErrorBodySize limits how much of error response body is kept in FetchError.
const maxErrorBodySize = 4 << 10

// FetchError is returned when catalog API responds with non-success status.
type FetchError struct {
	Status int
	Body   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("catalog API responded with status %d: %s", e.Status, e.Body)
}

// IsAuth reports whether token was rejected.
func (e *FetchError) IsAuth() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsTransient reports whether request may succeed when repeated.
func (e *FetchError) IsTransient() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// IsAuthError reports whether err is FetchError caused by rejected token.
func IsAuthError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.IsAuth()
}
