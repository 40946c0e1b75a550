// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify delivers account e-mails: activation codes, reset
// confirmations, removal and suspension notices.
//
// A [Notifier] sends one fully rendered [Message]. Bodies are produced from
// templates with [Render], which substitutes $name and ${name} variables.
// Delivery from the account lifecycle is always best effort: see
// [BestEffort].
package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:generate mockgen -source=notify.go -destination=../mock/notify_mock.go -package=mock

// Template variable names understood by the account lifecycle.
const (
	VarUsername = "username"
	VarEmail    = "email"
	VarPassword = "password"
	VarURL      = "url"
	VarBase     = "base"
	VarSender   = "sender"
)

var (
	// ErrUnknownVariable is returned by Render when a template references a
	// variable that was not supplied.
	ErrUnknownVariable = errors.New("unknown template variable")

	// ErrNoRecipient is returned by notifiers for a message without To.
	ErrNoRecipient = errors.New("message has no recipient")
)

// Message is a single outgoing e-mail.
type Message struct {
	To      string
	From    string
	Subject string
	Body    string
}

// Notifier sends messages.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Vars holds template variables.
type Vars map[string]string

// Render substitutes $name and ${name} references in tmpl with vars. A
// literal dollar sign is written as $$.
func Render(tmpl string, vars Vars) (string, error) {
	var missing []string
	out := os.Expand(tmpl, func(name string) string {
		if name == "$" {
			return "$"
		}
		v, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return ""
		}
		return v
	})
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("%w: %s", ErrUnknownVariable, strings.Join(missing, ", "))
	}
	return out, nil
}
