package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-account-keeper/internal/logger"
	"github.com/MKhiriev/go-account-keeper/internal/notify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
	err  error
}

func (r *recordingNotifier) Send(_ context.Context, msg notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func msg(subject string) notify.Message {
	return notify.Message{To: "alice@example.com", From: "noreply@example.com", Subject: subject}
}

func TestNotificationDispatcher_DeliversInOrder(t *testing.T) {
	next := &recordingNotifier{}
	d := NewNotificationDispatcher(next, 4, logger.Nop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- d.Run(ctx) }()

	for _, s := range []string{"one", "two", "three"} {
		require.NoError(t, d.Send(context.Background(), msg(s)))
	}

	require.Eventually(t, func() bool { return next.count() == 3 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	next.mu.Lock()
	defer next.mu.Unlock()
	assert.Equal(t, "one", next.sent[0].Subject)
	assert.Equal(t, "three", next.sent[2].Subject)
}

func TestNotificationDispatcher_QueueFull(t *testing.T) {
	d := NewNotificationDispatcher(&recordingNotifier{}, 1, logger.Nop(), nil)

	require.NoError(t, d.Send(context.Background(), msg("first")))
	assert.ErrorIs(t, d.Send(context.Background(), msg("second")), ErrQueueFull)
}

func TestNotificationDispatcher_DrainsOnStop(t *testing.T) {
	next := &recordingNotifier{}
	d := NewNotificationDispatcher(next, 8, logger.Nop(), nil)

	for i := 0; i < 5; i++ {
		require.NoError(t, d.Send(context.Background(), msg("queued")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(ctx))

	assert.Equal(t, 5, next.count())
	assert.ErrorIs(t, d.Send(context.Background(), msg("late")), ErrDispatcherStopped)
}

func TestNotificationDispatcher_ReportsFailures(t *testing.T) {
	boom := errors.New("relay down")
	d := NewNotificationDispatcher(&recordingNotifier{err: boom}, 2, logger.Nop(), nil)

	var (
		mu     sync.Mutex
		failed []error
	)
	d.OnFailure(func(_ context.Context, _ notify.Message, err error) {
		mu.Lock()
		defer mu.Unlock()
		failed = append(failed, err)
	})

	require.NoError(t, d.Send(context.Background(), msg("lost")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0], boom)
}

func TestNotificationDispatcher_BehindBestEffort(t *testing.T) {
	reg := prometheus.NewRegistry()
	d := NewNotificationDispatcher(&recordingNotifier{err: errors.New("relay down")}, 1, logger.Nop(), reg)
	outbox := notify.NewBestEffort(d, logger.Nop(), reg)
	d.OnFailure(outbox.Record)

	// the second message overflows the queue
	assert.NoError(t, outbox.Send(context.Background(), msg("Activate")))
	assert.NoError(t, outbox.Send(context.Background(), msg("Activate")))
	assert.Equal(t, float64(1), testutil.ToFloat64(outbox.Failures().WithLabelValues("Activate")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, d.Run(ctx))

	assert.Equal(t, float64(2), testutil.ToFloat64(outbox.Failures().WithLabelValues("Activate")))
}
