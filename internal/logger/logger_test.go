// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNewLogger_RoleField verifies that every entry carries the role label.
func TestNewLogger_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "test-role", "info")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "test-role", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNewLogger_CallerFieldName verifies that the caller field is named "func".
func TestNewLogger_CallerFieldName(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "caller-role", "debug")

	l.Debug().Msg("where am i")

	assert.Equal(t, "func", zerolog.CallerFieldName)
	entry := decodeEntry(t, &buf)
	assert.Contains(t, entry["func"], "TestNewLogger_CallerFieldName")
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "lvl", "warn")

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	assert.NotZero(t, buf.Len())
}

func TestNewLogger_UnknownLevelFallsBackToDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "lvl", "loud")

	assert.Equal(t, zerolog.DebugLevel, l.GetLevel())
}

// TestNop_ProducesNoOutput verifies that Nop discards everything.
func TestNop_ProducesNoOutput(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := newLogger(&buf, "parent", "info")

	child := parent.GetChildLogger()
	child.Info().Msg("from child")

	assert.Equal(t, "parent", decodeEntry(t, &buf)["role"])
}

// TestFromContext_RoundTrip verifies that a logger attached with WithContext
// is the one FromContext returns.
func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "ctx-role", "info")

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("via ctx")

	assert.Equal(t, "ctx-role", decodeEntry(t, &buf)["role"])
}

func TestFromContext_EmptyContextNeverNil(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}
