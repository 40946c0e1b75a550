// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
)

// LogNotifier writes message envelopes to the log instead of sending them.
// It is used when no SMTP relay is configured. Bodies carry passwords and
// interaction codes, so only their size is logged.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier(l *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	n.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("body_bytes", len(msg.Body)).
		Msg("mail delivery disabled, message dropped")
	return nil
}
