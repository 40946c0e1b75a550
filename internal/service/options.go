package service

import (
	"github.com/MKhiriev/go-account-keeper/internal/notify"
)

// Notification asks an operation to e-mail the account.
//
// Empty Subject and Template fall back to the operation's configured
// subject and default template. Vars are added to the variables the
// operation provides and override them on conflict.
type Notification struct {
	Subject  string
	Template string
	Vars     notify.Vars
}

// CreateOptions control Create.
type CreateOptions struct {
	// Activated creates the account already active.
	Activated bool

	// Notify issues an activation code and e-mails it.
	Notify *Notification
}

// ResetOptions control ResetPassword.
type ResetOptions struct {
	// Password is the new clear-text password; a random one is generated
	// when empty.
	Password string

	// RequireConfirmation keeps the new password pending until the reset is
	// confirmed. When nil it defaults to true if Notify is set.
	RequireConfirmation *bool

	// Notify issues a reset code and e-mails it with the new password.
	Notify *Notification
}

func (o ResetOptions) confirmation() bool {
	if o.RequireConfirmation != nil {
		return *o.RequireConfirmation
	}
	return o.Notify != nil
}

// DeleteOptions control Delete.
type DeleteOptions struct {
	// RequireConfirmation defers the removal until the delete code is
	// confirmed. When nil it defaults to true if Notify is set.
	RequireConfirmation *bool

	// Notify issues a delete code and e-mails it.
	Notify *Notification
}

func (o DeleteOptions) confirmation() bool {
	if o.RequireConfirmation != nil {
		return *o.RequireConfirmation
	}
	return o.Notify != nil
}

// Bool returns a pointer to v, for the RequireConfirmation options.
func Bool(v bool) *bool {
	return &v
}
