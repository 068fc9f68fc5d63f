package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRequestFailed is the generic failure surfaced to callers when a
// call could not be completed, including after a token refresh. The
// underlying transport error is logged, never returned, so screens
// cannot leak it to the user.
var ErrRequestFailed = errors.New("request failed after token refresh")

// StatusError is a non-2xx response from the remote API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

// isAuthStatus reports whether err is a credential rejection worth a
// token refresh. Anything else (timeouts, 5xx, decode noise) cannot be
// fixed by new tokens.
func isAuthStatus(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden
}
