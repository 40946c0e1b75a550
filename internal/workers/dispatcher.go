// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/notify"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ErrQueueFull         = errors.New("notification queue is full")
	ErrDispatcherStopped = errors.New("notification dispatcher is stopped")
)

const defaultQueueSize = 128

type dispatchJob struct {
	ctx context.Context
	msg notify.Message
}

// NotificationDispatcher is a notify.Notifier that queues messages and
// delivers them from Run, so request handlers never wait for the mail
// relay. Failed deliveries are handed to the OnFailure hook.
type NotificationDispatcher struct {
	next  notify.Notifier
	queue chan dispatchJob

	mu        sync.RWMutex
	stopped   bool
	onFailure notify.FailureHook

	depth  prometheus.Gauge
	logger *logger.Logger
}

// NewNotificationDispatcher returns a dispatcher delivering through next.
// A non-positive size selects the default queue length. The queue depth
// gauge is registered with reg when it is not nil.
func NewNotificationDispatcher(next notify.Notifier, size int, l *logger.Logger, reg prometheus.Registerer) *NotificationDispatcher {
	if size <= 0 {
		size = defaultQueueSize
	}

	depth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "account_notification_queue_depth",
		Help: "Account e-mails waiting for delivery.",
	})
	if reg != nil {
		if err := reg.Register(depth); err != nil {
			l.Warn().Err(err).Str("func", "workers.NewNotificationDispatcher").Msg("queue depth gauge not registered")
		}
	}

	return &NotificationDispatcher{
		next:   next,
		queue:  make(chan dispatchJob, size),
		depth:  depth,
		logger: l,
	}
}

// OnFailure installs the hook receiving every failed delivery, usually
// [notify.BestEffort.Record].
func (d *NotificationDispatcher) OnFailure(hook notify.FailureHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onFailure = hook
}

// Send enqueues msg without blocking. The delivery outlives ctx's
// cancellation but keeps its values, the request logger among them.
func (d *NotificationDispatcher) Send(ctx context.Context, msg notify.Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- dispatchJob{ctx: context.WithoutCancel(ctx), msg: msg}:
		d.depth.Inc()
		return nil
	default:
		return ErrQueueFull
	}
}

// Run delivers queued messages until ctx is cancelled. Messages still
// queued at that point are delivered before Run returns.
func (d *NotificationDispatcher) Run(ctx context.Context) error {
	d.logger.Info().Str("func", "NotificationDispatcher.Run").Int("queue", cap(d.queue)).Msg("notification dispatcher started")

	for {
		select {
		case job := <-d.queue:
			d.deliver(job)
		case <-ctx.Done():
			d.stop()
			d.drain()
			d.logger.Info().Str("func", "NotificationDispatcher.Run").Msg("notification dispatcher stopped")
			return nil
		}
	}
}

func (d *NotificationDispatcher) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
}

// drain delivers what is left once no more sends are accepted.
func (d *NotificationDispatcher) drain() {
	for {
		select {
		case job := <-d.queue:
			d.deliver(job)
		default:
			return
		}
	}
}

func (d *NotificationDispatcher) deliver(job dispatchJob) {
	d.depth.Dec()

	err := d.next.Send(job.ctx, job.msg)
	if err == nil {
		return
	}

	d.mu.RLock()
	hook := d.onFailure
	d.mu.RUnlock()

	if hook != nil {
		hook(job.ctx, job.msg, err)
		return
	}
	logger.FromContext(job.ctx).Error().Err(err).
		Str("func", "NotificationDispatcher.deliver").
		Str("to", job.msg.To).
		Str("subject", job.msg.Subject).
		Msg("notification not delivered")
}
