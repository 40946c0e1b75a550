// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername        = errors.New("invalid username")
	ErrInvalidEmail           = errors.New("invalid e-mail")
	ErrInvalidInteractionCode = errors.New("interaction code is not the right format")
	ErrEmptySelector          = errors.New("no username or e-mail provided")
)
