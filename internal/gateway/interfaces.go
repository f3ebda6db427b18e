// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package gateway

import (
	"context"
	"net/http"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/gateway_mock.go -package=mock

// TransportRequest is a fully assembled outbound request.
type TransportRequest struct {
	Method string
	URL    string
	Header http.Header
	// Body is nil when the request carries no body.
	Body []byte
}

// TransportResponse is what the transport read back. Body is the complete
// response body.
type TransportResponse struct {
	StatusCode int
	// StatusText is the reason phrase sent by the server (e.g. "Not Found"),
	// without the numeric code.
	StatusText string
	Body       []byte
}

// Transport performs exactly one HTTP round trip. Implementations must
// include same-origin credentials (cookies) on their own; the gateway never
// handles them.
type Transport interface {
	Do(ctx context.Context, req TransportRequest) (*TransportResponse, error)
}

// SessionStore is the part of the persisted session store the gateway needs:
// it only ever clears the session record.
type SessionStore interface {
	Remove(ctx context.Context, key string) error
}

// Reloader resets the application after the backend rejected the session.
type Reloader interface {
	Reload(ctx context.Context)
}

// ReloadFunc adapts a plain function to [Reloader].
type ReloadFunc func(ctx context.Context)

func (f ReloadFunc) Reload(ctx context.Context) {
	f(ctx)
}
