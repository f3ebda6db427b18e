// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package gateway is the client-side access layer of the voice collection
// REST API.
//
// Every endpoint method funnels into [Gateway.Dispatch], which owns header
// assembly (JSON content type, the anonymous Client-Id header), body
// encoding ([NoBody], [BinaryBody], [JSONBody]) and response
// classification:
//
//   - 401 clears the persisted session record, asks the application to
//     reload and returns [ErrSessionExpired];
//   - >= 400 with reason phrase "save_clip_error" returns [ErrClipSave];
//   - any other >= 400 returns a [*RequestError] carrying the raw body;
//   - otherwise the body is returned as JSON or raw text.
//
// A Gateway performs exactly one round trip per call, never retries and
// keeps no state between calls. It is safe for concurrent use.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/voice-gateway/internal/identity"
	"github.com/MKhiriev/voice-gateway/internal/logger"
)

const (
	headerContentType = "Content-Type"
	headerClientID    = "Client-Id"

	jsonContentType = "application/json; charset=utf-8"
)

// IdentityProvider returns the user the next request is made for. It is read
// on every dispatch.
type IdentityProvider interface {
	Current() identity.User
}

// Options are the collaborators and settings of a [Gateway].
type Options struct {
	// Origin is the web application origin, e.g. "https://voice.example.org".
	Origin string
	// Locale is the optional locale scope.
	Locale string

	Identity  IdentityProvider
	Transport Transport
	Sessions  SessionStore
	Reloader  Reloader

	// Metrics may be nil.
	Metrics *Metrics
	// Logger defaults to a no-op logger.
	Logger *logger.Logger
}

// Gateway is the request gateway. It is immutable; [Gateway.ForLocale]
// derives re-scoped copies.
type Gateway struct {
	origin    string
	originURL *url.URL
	locale    string

	identity  IdentityProvider
	transport Transport
	sessions  SessionStore
	reloader  Reloader

	metrics *Metrics
	logger  *logger.Logger
}

// New validates opts and constructs a Gateway.
func New(opts Options) (*Gateway, error) {
	originURL, err := normalizeBaseURL(opts.Origin)
	if err != nil {
		return nil, err
	}

	locale, err := canonicalLocale(opts.Locale)
	if err != nil {
		return nil, err
	}

	switch {
	case opts.Identity == nil:
		return nil, fmt.Errorf("%w: identity", ErrMissingDependency)
	case opts.Transport == nil:
		return nil, fmt.Errorf("%w: transport", ErrMissingDependency)
	case opts.Sessions == nil:
		return nil, fmt.Errorf("%w: session store", ErrMissingDependency)
	case opts.Reloader == nil:
		return nil, fmt.Errorf("%w: reloader", ErrMissingDependency)
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Gateway{
		origin:    originURL.String(),
		originURL: originURL,
		locale:    locale,
		identity:  opts.Identity,
		transport: opts.Transport,
		sessions:  opts.Sessions,
		reloader:  opts.Reloader,
		metrics:   opts.Metrics,
		logger:    log,
	}, nil
}

// Locale returns the locale scope, empty when global.
func (g *Gateway) Locale() string {
	return g.locale
}

// ForLocale returns a gateway scoped to locale that shares the identity
// provider and every other collaborator with g. g itself is not modified.
func (g *Gateway) ForLocale(locale string) (*Gateway, error) {
	canonical, err := canonicalLocale(locale)
	if err != nil {
		return nil, err
	}

	scoped := *g
	scoped.locale = canonical
	return &scoped, nil
}

// Dispatch performs req and classifies the response.
func (g *Gateway) Dispatch(ctx context.Context, req Request) (*Response, error) {
	method, err := req.method()
	if err != nil {
		return nil, err
	}

	payload, err := req.Body.encode()
	if err != nil {
		return nil, err
	}

	target := g.resolve(req.Path)
	header := g.assembleHeader(req, target)

	start := time.Now()
	tresp, err := g.transport.Do(ctx, TransportRequest{
		Method: method,
		URL:    target,
		Header: header,
		Body:   payload,
	})
	if err != nil {
		g.metrics.observe(method, outcomeTransportError, time.Since(start))
		g.logger.Err(err).
			Str("func", "Gateway.Dispatch").
			Str("method", method).
			Str("url", target).
			Msg("transport failure")
		return g.fail(req, nil, fmt.Errorf("%s %s: %w", method, target, err))
	}

	g.logger.Debug().
		Str("func", "Gateway.Dispatch").
		Str("method", method).
		Str("url", target).
		Int("status", tresp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("dispatched")

	resp, result, err := g.classify(ctx, req.Mode, tresp)
	g.metrics.observe(method, result, time.Since(start))

	switch {
	case err == nil:
		return resp, nil
	case result == outcomeSessionExpired:
		return nil, err
	default:
		return g.fail(req, resp, err)
	}
}

// assembleHeader builds the outgoing header: JSON default, binary media
// type, caller overrides, then the anonymous client identifier.
func (g *Gateway) assembleHeader(req Request, target string) http.Header {
	header := make(http.Header)

	if req.Mode == ContentJSON {
		header.Set(headerContentType, jsonContentType)
	}
	if ct := req.Body.ContentType(); ct != "" {
		header.Set(headerContentType, ct)
	}
	for k, v := range req.Headers {
		header.Set(k, v)
	}

	if g.sameOrigin(target) {
		if user := g.identity.Current(); !user.Authenticated() {
			header.Set(headerClientID, user.ClientID)
		}
	}

	return header
}

// classify maps a transport response to a Response or a failure, in order:
// 401, save_clip_error, other >= 400, success.
func (g *Gateway) classify(ctx context.Context, mode ContentMode, tresp *TransportResponse) (*Response, outcome, error) {
	resp := &Response{
		StatusCode: tresp.StatusCode,
		StatusText: tresp.StatusText,
		Text:       string(tresp.Body),
	}

	switch {
	case tresp.StatusCode == http.StatusUnauthorized:
		g.expireSession(ctx)
		return nil, outcomeSessionExpired, ErrSessionExpired
	case tresp.StatusCode >= http.StatusBadRequest && tresp.StatusText == clipSaveStatusText:
		return resp, outcomeClipSave, ErrClipSave
	case tresp.StatusCode >= http.StatusBadRequest:
		return resp, outcomeRequestError, &RequestError{StatusCode: tresp.StatusCode, Body: resp.Text}
	}

	if mode == ContentText {
		return resp, outcomeOK, nil
	}

	raw, err := decodeJSON(tresp.Body)
	if err != nil {
		return resp, outcomeDecodeError, err
	}
	resp.JSON = raw
	return resp, outcomeOK, nil
}

// expireSession clears the session record and reloads the application. It
// runs even when ctx is already cancelled.
func (g *Gateway) expireSession(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	g.logger.Warn().Str("func", "Gateway.expireSession").Msg("session rejected by backend, resetting client")

	if err := g.sessions.Remove(ctx, identity.SessionKey); err != nil {
		g.logger.Err(err).Str("func", "Gateway.expireSession").Msg("failed to clear session record")
	}
	g.reloader.Reload(ctx)
}

func (g *Gateway) fail(req Request, resp *Response, err error) (*Response, error) {
	if req.Policy != ReturnFailure {
		return nil, err
	}

	if resp == nil {
		resp = &Response{}
	}
	resp.Failure = err
	return resp, nil
}

func decodeJSON(body []byte) ([]byte, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return []byte("null"), nil
	}
	if !json.Valid([]byte(trimmed)) {
		return nil, fmt.Errorf("%w: %.64q", ErrInvalidJSON, trimmed)
	}
	return []byte(trimmed), nil
}
