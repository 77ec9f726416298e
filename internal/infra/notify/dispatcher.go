package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slot-booking/internal/pkg/errs"
	"slot-booking/internal/usecase/shared"
)

var (
	ErrQueueFull = errs.Mark(errs.New("notification queue full"), errs.ErrNotifyFailed)
	ErrStopped   = errs.Mark(errs.New("notification dispatcher stopped"), errs.ErrNotifyFailed)
)

// Dispatcher decouples delivery from the request path: Notify only enqueues,
// and one worker drains the queue through the Sender. Each notification is
// attempted once; failures are logged and dropped.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration
	queue   chan shared.Notification

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
}

func NewDispatcher(sender Sender, queueSize int, timeout time.Duration) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		sender:  sender,
		timeout: timeout,
		queue:   make(chan shared.Notification, queueSize),
		done:    make(chan struct{}),
	}
}

func (d *Dispatcher) Start() {
	go d.run()
}

func (d *Dispatcher) Notify(_ context.Context, n shared.Notification) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrStopped
	}
	select {
	case d.queue <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop drains queued notifications and closes the sender. It returns early
// if ctx expires first.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return d.sender.Close()
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n shared.Notification) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	if err := d.sender.Send(ctx, n); err != nil {
		slog.Warn("notification delivery failed",
			"recipient", n.Recipient,
			"error", errs.Mark(err, errs.ErrNotifyFailed).Error())
	}
}
