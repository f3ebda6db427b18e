// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// voice-gateway command-line client.
//
// All Msg* constants are human-readable strings printed to the terminal or
// written to log entries to describe the outcome of an operation. Keeping
// them in one place ensures consistent wording across commands.
package app

const (
	// MsgSessionExpired is printed after the backend rejected the session
	// and the client was reset to a fresh anonymous identity.
	MsgSessionExpired = "session expired, signed out"

	// MsgClipSaveFailed is printed when the backend could not store an
	// uploaded recording. Retrying the upload is safe.
	MsgClipSaveFailed = "the server could not store the recording, try again"

	// MsgSignInFirst is printed when a command needs an account session.
	MsgSignInFirst = "sign in before claiming contributions"

	// MsgSubscriptionFailed prefixes a newsletter failure reported by the
	// backend.
	MsgSubscriptionFailed = "subscription failed"

	// MsgNoAccount is printed when the backend knows no account for the
	// current session.
	MsgNoAccount = "no account"

	// MsgUnusableSession is logged when the persisted session record cannot
	// be decoded and is discarded.
	MsgUnusableSession = "discarding unusable session record"
)
