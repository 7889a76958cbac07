package notification

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	domain "github.com/lumiere-studio/salon-booking/internal/domain/slot"
	"github.com/lumiere-studio/salon-booking/internal/metrics"
	"github.com/lumiere-studio/salon-booking/internal/models"
)

// Sender delivers one confirmation message.
type Sender interface {
	SendConfirmation(ctx context.Context, key domain.Key, c models.Client) error
}

type Event struct {
	Key    domain.Key
	Client models.Client
}

// Dispatcher sends confirmations from a background worker. Errors are logged
// and counted, never returned: the booking is already committed.
type Dispatcher struct {
	sender  Sender
	log     *zap.Logger
	timeout time.Duration

	queue chan Event
	done  chan struct{}
	once  sync.Once
}

func NewDispatcher(sender Sender, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		log:     log,
		timeout: 30 * time.Second,
		queue:   make(chan Event, 100),
		done:    make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			metrics.IncNotification("failed")
			d.log.Error("confirmation email panicked", zap.Any("panic", r), zap.String("slot", ev.Key.String()))
		}
	}()

	if err := d.sender.SendConfirmation(ctx, ev.Key, ev.Client); err != nil {
		metrics.IncNotification("failed")
		d.log.Error("confirmation email failed", zap.String("slot", ev.Key.String()), zap.Error(err))
		return
	}
	metrics.IncNotification("sent")
}

// NotifyConfirmed enqueues a confirmation without blocking.
func (d *Dispatcher) NotifyConfirmed(key domain.Key, c models.Client) {
	select {
	case d.queue <- Event{Key: key, Client: c}:
	default:
		// queue full: drop, never block the request
		metrics.IncNotification("dropped")
		d.log.Warn("notification queue full, dropping confirmation", zap.String("slot", key.String()))
	}
}

// Close stops accepting events and waits for queued ones to be sent, or for
// ctx to end. NotifyConfirmed must not be called after Close.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.once.Do(func() { close(d.queue) })
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		d.log.Warn("notification queue not drained before shutdown", zap.Int("pending", len(d.queue)))
		return ctx.Err()
	}
}

// NoopSender is used when no mail transport is configured.
type NoopSender struct {
	Log *zap.Logger
}

func (s NoopSender) SendConfirmation(_ context.Context, key domain.Key, c models.Client) error {
	if s.Log != nil && c.Email != "" {
		s.Log.Info("mail disabled, skipping confirmation", zap.String("slot", key.String()))
	}
	return nil
}

// Compile-time check
var _ domain.Notifier = (*Dispatcher)(nil)
