// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// FailureHook observes a swallowed delivery failure.
type FailureHook func(ctx context.Context, msg Message, err error)

// BestEffort wraps a Notifier so that delivery failures never reach the
// caller. Every failure is logged and counted in
// account_notification_failures_total, labelled by subject.
type BestEffort struct {
	next      Notifier
	logger    *logger.Logger
	failures  *prometheus.CounterVec
	onFailure FailureHook
}

// NewBestEffort wraps next. The failure counter is registered with reg
// when it is not nil; an already registered counter is reused.
func NewBestEffort(next Notifier, l *logger.Logger, reg prometheus.Registerer) *BestEffort {
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "account_notification_failures_total",
		Help: "Account e-mails that could not be delivered.",
	}, []string{"subject"})

	if reg != nil {
		if err := reg.Register(failures); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
					failures = existing
				}
			} else {
				l.Warn().Err(err).Str("func", "notify.NewBestEffort").Msg("failure counter not registered")
			}
		}
	}

	return &BestEffort{next: next, logger: l, failures: failures}
}

// OnFailure installs a hook invoked after each swallowed failure.
func (b *BestEffort) OnFailure(hook FailureHook) {
	b.onFailure = hook
}

// Send delivers msg and always returns nil.
func (b *BestEffort) Send(ctx context.Context, msg Message) error {
	if err := b.next.Send(ctx, msg); err != nil {
		b.Record(ctx, msg, err)
	}
	return nil
}

// Record accounts for a delivery failure that happened outside Send, such
// as in an asynchronous dispatcher.
func (b *BestEffort) Record(ctx context.Context, msg Message, err error) {
	b.failures.WithLabelValues(msg.Subject).Inc()
	b.logger.Error().
		Err(err).
		Str("func", "notify.BestEffort.Send").
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Msg("notification not delivered")
	if b.onFailure != nil {
		b.onFailure(ctx, msg, err)
	}
}

// Failures returns the failure counter, for tests and custom exposition.
func (b *BestEffort) Failures() *prometheus.CounterVec {
	return b.failures
}
