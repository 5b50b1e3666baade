package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is returned when an authenticated request comes back
// 401. Every screen funnels it through one handler instead of reacting
// ad hoc.
var ErrSessionExpired = errors.New("session expired, please log in again")

// Error is a typed non-2xx backend response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("signify api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("signify api: status %d", e.Status)
}

// IsUnauthorized reports a 401 response.
func (e *Error) IsUnauthorized() bool { return e.Status == http.StatusUnauthorized }

// IsForbidden reports a 403 response.
func (e *Error) IsForbidden() bool { return e.Status == http.StatusForbidden }

// IsConflict reports a 409 response.
func (e *Error) IsConflict() bool { return e.Status == http.StatusConflict }

// AsError unwraps a typed backend error from an error chain, or nil.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// StatusOf extracts the HTTP status from an error chain, or 0 when the
// error did not originate from a backend response.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
