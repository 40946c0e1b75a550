// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

// Default message bodies used by the HTTP surface.
const (
	ActivationTemplate = `Hello $username,

your account has been created. To activate it, open the link below within
the next two days:

    $base/a/$url

If you did not register, ignore this message.

--
$sender
`

	ResetTemplate = `Hello $username,

a password reset was requested for your account. Your new password is:

    $password

It becomes valid once you confirm the reset here:

    $base/r/$url

If you did not request a reset, ignore this message and keep using your
current password.

--
$sender
`

	DeleteTemplate = `Hello $username,

a removal of your account was requested. Confirm it here:

    $base/d/$url

If you did not request this, ignore this message.

--
$sender
`

	SuspendTemplate = `Hello $username,

your account has been suspended. Contact $sender for details.
`
)
