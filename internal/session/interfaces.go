// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session persists the client's session record between runs.
//
// The record is a small string value stored under a well-known key. The
// request gateway only ever removes it (on an unauthorized response); the
// client application reads and writes it when restoring or establishing a
// session.
package session

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_store_mock.go -package=mock

// Store is a string key-value store for session data.
type Store interface {
	// Get returns the value stored under key, or [ErrNotFound].
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
