// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-account-keeper/models"

// NavigateTo switches the active page. A non-nil Payload is delivered to
// the new page right after the switch.
type NavigateTo struct {
	Page    string
	Payload any
}

// menuNotice is shown above the menu items.
type menuNotice struct {
	text string
}

type registerResult struct {
	account models.AccountResponse
	err     error
}

type loginResult struct {
	account models.AccountResponse
	token   string
	err     error
}

type confirmResult struct {
	account models.AccountResponse
	err     error
}

type copiedMsg struct {
	err error
}
