package gateway

import (
	"errors"
	"fmt"
)

// clipSaveStatusText is the reason phrase the backend uses when it could not
// store an uploaded clip.
const clipSaveStatusText = "save_clip_error"

var (
	// ErrSessionExpired is returned after a 401: the session record has been
	// removed and the application asked to reload. Callers must treat it as
	// terminal for the current operation.
	ErrSessionExpired = errors.New("session expired")

	// ErrClipSave is returned when the backend failed to store a clip. Its
	// message is exactly the backend token.
	ErrClipSave = errors.New(clipSaveStatusText)

	// ErrInvalidJSON is returned when a JSON-mode response body does not
	// parse.
	ErrInvalidJSON = errors.New("invalid json response")

	ErrUnsupportedMethod = errors.New("unsupported http method")
	ErrInvalidLocale     = errors.New("invalid locale")
	ErrInvalidOrigin     = errors.New("invalid origin")
	ErrMissingDependency = errors.New("missing gateway dependency")
)

// RequestError is any other response with status >= 400. Its message is the
// raw response body, which may be empty.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return e.Body
}

// Describe renders the error with its status code, for logs.
func (e *RequestError) Describe() string {
	return fmt.Sprintf("http %d: %q", e.StatusCode, e.Body)
}
