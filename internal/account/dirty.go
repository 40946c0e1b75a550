// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package account

// Field pairs a logical account field with its storage column.
type Field struct {
	Name   string
	Column string
}

// Tracked fields.
var (
	FieldUsername        = Field{Name: "username", Column: "username"}
	FieldEmail           = Field{Name: "email", Column: "email"}
	FieldPassword        = Field{Name: "password", Column: "password"}
	FieldPendingPassword = Field{Name: "pending_password", Column: "pending_pwd"}
	FieldActive          = Field{Name: "active", Column: "active"}
	FieldInteractionCode = Field{Name: "interaction_code", Column: "act_code"}
	FieldInteractionTime = Field{Name: "interaction_time", Column: "act_time"}
	FieldInteractionKind = Field{Name: "interaction_kind", Column: "act_type"}
)

// dirtySet is an insertion-ordered set of changed fields.
type dirtySet []Field

func (d *dirtySet) mark(fields ...Field) {
	for _, f := range fields {
		if !d.contains(f) {
			*d = append(*d, f)
		}
	}
}

func (d dirtySet) contains(f Field) bool {
	for _, existing := range d {
		if existing.Name == f.Name {
			return true
		}
	}
	return false
}

func (d *dirtySet) clear() {
	*d = (*d)[:0]
}
