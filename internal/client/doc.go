// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client runtime.
//
// It restores the persisted identity, wires the request gateway with the
// resty transport and runs one command per invocation. When the backend
// rejects the session the gateway calls [App.Reload], which drops cookies and
// restores a fresh anonymous identity.
package client
