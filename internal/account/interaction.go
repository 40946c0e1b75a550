// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package account

import (
	"fmt"
	"time"
)

// InteractionKind is the closed set of confirmation flows an account can be
// waiting on.
type InteractionKind uint8

const (
	// InteractionNone is the zero value; it is never a valid outstanding kind.
	InteractionNone InteractionKind = iota
	// InteractionActivate confirms a freshly registered account.
	InteractionActivate
	// InteractionDelete confirms an account removal.
	InteractionDelete
	// InteractionReset confirms a password reset.
	InteractionReset
)

// Persisted single-character codes of the act_type column.
const (
	codeActivate = "a"
	codeDelete   = "d"
	codeReset    = "r"
)

// Valid reports whether k is one of Activate, Delete or Reset.
func (k InteractionKind) Valid() bool {
	return k == InteractionActivate || k == InteractionDelete || k == InteractionReset
}

// Code returns the persisted single-character code of k, or "" for an
// invalid kind.
func (k InteractionKind) Code() string {
	switch k {
	case InteractionActivate:
		return codeActivate
	case InteractionDelete:
		return codeDelete
	case InteractionReset:
		return codeReset
	default:
		return ""
	}
}

// String returns the long name of k.
func (k InteractionKind) String() string {
	switch k {
	case InteractionActivate:
		return "activate"
	case InteractionDelete:
		return "delete"
	case InteractionReset:
		return "reset"
	default:
		return fmt.Sprintf("InteractionKind(%d)", uint8(k))
	}
}

// KindFromCode maps a persisted act_type code back to an [InteractionKind].
func KindFromCode(code string) (InteractionKind, bool) {
	switch code {
	case codeActivate:
		return InteractionActivate, true
	case codeDelete:
		return InteractionDelete, true
	case codeReset:
		return InteractionReset, true
	default:
		return InteractionNone, false
	}
}

// ParseInteractionKind accepts the long names ("activate", "delete",
// "reset") and the short codes ("a", "d", "r").
func ParseInteractionKind(s string) (InteractionKind, error) {
	switch s {
	case "activate", codeActivate:
		return InteractionActivate, nil
	case "delete", codeDelete:
		return InteractionDelete, nil
	case "reset", codeReset:
		return InteractionReset, nil
	default:
		return InteractionNone, NewError("account.ParseInteractionKind", ErrValidation,
			"interaction kind must be 'activate', 'delete', or 'reset'", nil)
	}
}

// Interaction is an outstanding one-time confirmation request.
type Interaction struct {
	Kind     InteractionKind
	Code     string
	IssuedAt time.Time
}
