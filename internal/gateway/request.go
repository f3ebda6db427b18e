package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ContentMode selects how a response body is decoded.
type ContentMode int

const (
	// ContentJSON decodes the body as JSON. It is the default.
	ContentJSON ContentMode = iota
	// ContentText returns the body as raw text.
	ContentText
)

// FailurePolicy selects how classified failures reach the caller.
type FailurePolicy int

const (
	// PropagateFailure returns failures as the error result. It is the
	// default.
	PropagateFailure FailurePolicy = iota
	// ReturnFailure puts failures into [Response.Failure] and returns a nil
	// error. Session expiry is still returned as an error.
	ReturnFailure
)

// Request is one dispatch.
type Request struct {
	// Method defaults to GET.
	Method string
	// Path is an absolute URL, an origin-relative path ("/locales/..."), or
	// a path relative to the API root ("sentences").
	Path string
	// Headers override the assembled defaults on key collision.
	Headers map[string]string
	Body    Body
	Mode    ContentMode
	Policy  FailurePolicy
}

func (r Request) method() (string, error) {
	if r.Method == "" {
		return http.MethodGet, nil
	}

	m := strings.ToUpper(r.Method)
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, r.Method)
	}
}

// Response is the outcome of a dispatch.
type Response struct {
	StatusCode int
	StatusText string
	// Text is the raw body.
	Text string
	// JSON is the validated body in JSON mode; "null" for an empty body.
	JSON json.RawMessage
	// Failure is only set under [ReturnFailure].
	Failure error
}

// Decode unmarshals the JSON body into v. A nil v is a no-op.
func (r *Response) Decode(v any) error {
	if v == nil || r.JSON == nil {
		return nil
	}

	if err := json.Unmarshal(r.JSON, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
