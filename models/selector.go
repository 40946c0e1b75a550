// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Selector identifies one or more account rows by username and/or e-mail.
//
// When both fields are set, lookups, deletions and suspensions match rows
// satisfying both conditions; existence checks match either of them.
type Selector struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ByUsername returns a [Selector] matching a single username.
func ByUsername(username string) Selector {
	return Selector{Username: username}
}

// ByEmail returns a [Selector] matching a single e-mail address.
func ByEmail(email string) Selector {
	return Selector{Email: email}
}

// IsEmpty reports whether neither username nor e-mail is set.
func (s Selector) IsEmpty() bool {
	return s.Username == "" && s.Email == ""
}
