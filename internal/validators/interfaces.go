// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides the syntactic rules for account identity
// fields and a field-scoped [Validator] for lookup selectors.
//
// Core concepts:
//   - Predicates: ValidUsername, ValidEmail and ValidInteractionCode are pure
//     functions used at every mutation site of an account and before every
//     store lookup, so malformed keys fail fast.
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
// Implementations may perform structural validation, semantic checks,
// cross-field rules.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
