// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command line client of the account keeper.
//
// Each invocation runs one command against the server through an
// [adapter.AccountAdapter]. The bearer token obtained by "login" is kept in
// a token file so that later invocations stay authenticated.
package client
