package dashboard

import (
	"context"
	"errors"

	"signify/internal/api"
)

// apiResult is implemented by every fetch and mutation result message so
// the root model can funnel session expiry through one handler instead of
// each screen reacting ad hoc.
type apiResult interface {
	apiErr() error
}

// sessionLost reports whether a result message carries an expired session.
func sessionLost(msg any) bool {
	res, ok := msg.(apiResult)
	return ok && errors.Is(res.apiErr(), api.ErrSessionExpired)
}

// loggedInMsg is emitted by the login form on a successful login or
// registration, after the session has been persisted.
type loggedInMsg struct {
	admin api.AdminIdentity
}

// loggedOutMsg returns the app to the landing view.
type loggedOutMsg struct{}

// intakeDoneMsg is emitted when the wizard finishes or is abandoned.
type intakeDoneMsg struct {
	completed bool
}

// ctx returns the background context for page fetches. Request deadlines
// come from the client's own timeout; the TUI never cancels in-flight
// requests (navigating away simply ignores the stale result).
func ctx() context.Context {
	return context.Background()
}
