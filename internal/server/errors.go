// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoServersAreCreated = errors.New("no servers are created: HTTP handler or address is missing")
	errShutdownFailed      = errors.New("graceful shutdown failed")
	errWorkersFailed       = errors.New("background workers failed")
)
