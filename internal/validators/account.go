// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"

	"github.com/MKhiriev/go-account-keeper/models"
)

// Field name constants used to scope [SelectorValidator.Validate].
const (
	// FieldUsername validates the username part of a selector when present.
	FieldUsername = "username"

	// FieldEmail validates the e-mail part of a selector when present.
	FieldEmail = "email"

	// FieldNotEmpty requires at least one of username or e-mail.
	FieldNotEmpty = "not_empty"
)

var (
	// usernameRe: a letter followed by 3 to 39 letters, digits, dots,
	// dashes or underscores.
	usernameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9._-]{3,39}$`)

	// emailRe accepts a dot-atom or quoted-string local part and a DNS-like
	// domain with a 2-6 letter TLD, case-insensitively.
	emailRe = regexp.MustCompile(`^(?i:` +
		`(?:[-!#$%&'*+/=?^_\x60{}|~0-9A-Z]+(?:\.[-!#$%&'*+/=?^_\x60{}|~0-9A-Z]+)*` +
		`|"(?:[\x01-\x08\x0b\x0c\x0e-\x1f!#-\[\]-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*")` +
		`@(?:[A-Z0-9]+(?:-*[A-Z0-9]+)*\.)+[A-Z]{2,6}` +
		`)$`)

	interactionCodeRe = regexp.MustCompile(`^[a-f0-9]{64}$`)
)

// ValidUsername reports whether s is an acceptable username.
func ValidUsername(s string) bool {
	return usernameRe.MatchString(s)
}

// ValidEmail reports whether s is an acceptable e-mail address.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidInteractionCode reports whether s is a 64-character lowercase hex
// interaction code.
func ValidInteractionCode(s string) bool {
	return interactionCodeRe.MatchString(s)
}

// SelectorValidator implements [Validator] for [models.Selector] values
// (both value and pointer forms).
type SelectorValidator struct {
}

// NewSelectorValidator constructs a new SelectorValidator
// and returns it as the Validator interface.
func NewSelectorValidator() Validator {
	return &SelectorValidator{}
}

// Validate checks a selector. Without fields it requires a non-empty
// selector whose present parts are syntactically valid.
//
// Returns ErrUnsupportedType if obj is not a selector.
func (v *SelectorValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Selector:
		return v.validateSelector(ctx, value, fields...)
	case *models.Selector:
		if value == nil {
			return ErrEmptySelector
		}
		return v.validateSelector(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *SelectorValidator) validateSelector(_ context.Context, selector models.Selector, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNotEmpty, FieldUsername, FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldNotEmpty:
			if selector.IsEmpty() {
				return ErrEmptySelector
			}
		case FieldUsername:
			if selector.Username != "" && !ValidUsername(selector.Username) {
				return ErrInvalidUsername
			}
		case FieldEmail:
			if selector.Email != "" && !ValidEmail(selector.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
