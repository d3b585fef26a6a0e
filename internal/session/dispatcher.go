package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/tezkor/menu-tracker/internal/common"
)

// Handler consumes one event for one user. Satisfied by *Engine.
type Handler interface {
	HandleEvent(ctx context.Context, userID int64, ev Event) error
}

// Dispatcher fans events out to per-user mailboxes. Events of the same user
// are handled by a single goroutine in arrival order; different users run
// concurrently. Idle mailboxes are reaped after IdleTTL.
type Dispatcher struct {
	handler   Handler
	logger    *slog.Logger
	queueSize int
	idleTTL   time.Duration
	timeout   time.Duration

	mu        sync.Mutex
	closed    bool
	mailboxes map[int64]*mailbox
	wg        sync.WaitGroup
	stop      chan struct{}
}

// mailbox is one user's event queue. mu serializes sends against close, so a
// sender never writes to a channel the janitor or Shutdown has reaped;
// lastSeen is guarded by the dispatcher's own mutex.
type mailbox struct {
	mu       sync.Mutex
	closed   bool
	ch       chan Event
	lastSeen time.Time
}

type DispatcherOption func(*Dispatcher)

func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queueSize = n
		}
	}
}

func WithIdleTTL(ttl time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if ttl > 0 {
			d.idleTTL = ttl
		}
	}
}

func WithHandleTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func NewDispatcher(handler Handler, logger *slog.Logger, opts ...DispatcherOption) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		handler:   handler,
		logger:    logger,
		queueSize: 64,
		idleTTL:   30 * time.Minute,
		timeout:   time.Minute,
		mailboxes: make(map[int64]*mailbox),
		stop:      make(chan struct{}),
	}
	for _, o := range opts {
		o(d)
	}
	go d.janitor()
	return d
}

// Dispatch queues an event into the user's mailbox, creating it on first use.
// A full mailbox blocks the caller, but only for that user: the send happens
// outside the dispatcher mutex, so other users' dispatches proceed.
func (d *Dispatcher) Dispatch(_ context.Context, userID int64, ev Event) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("dispatch.rejected", "user_id", userID, "reason", "shutting down")
		return nil
	}
	mb, ok := d.mailboxes[userID]
	if !ok {
		mb = &mailbox{ch: make(chan Event, d.queueSize)}
		d.mailboxes[userID] = mb
		d.wg.Add(1)
		go d.run(userID, mb)
	}
	mb.lastSeen = time.Now()
	d.mu.Unlock()

	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.closed {
		d.logger.Warn("dispatch.rejected", "user_id", userID, "reason", "mailbox closed")
		return nil
	}
	select {
	case mb.ch <- ev:
	default:
		d.logger.Warn("dispatch.backpressure", "user_id", userID)
		mb.ch <- ev
	}
	return nil
}

func (d *Dispatcher) run(userID int64, mb *mailbox) {
	defer d.wg.Done()
	d.logger.Debug("mailbox.started", "user_id", userID)

	for ev := range mb.ch {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		ctx = common.WithUserID(common.WithTraceID(ctx, uuid.NewString()), userID)
		err := d.handler.HandleEvent(ctx, userID, ev)
		cancel()

		switch {
		case err == nil:
		case errors.Is(err, common.ErrPrecondition):
			d.logger.Warn("dispatch.precondition", "user_id", userID, "kind", ev.Kind, "error", err)
		default:
			d.logger.Error("dispatch.handle_failed", "user_id", userID, "kind", ev.Kind, "error", err)
		}
	}

	d.logger.Debug("mailbox.stopped", "user_id", userID)
}

// janitor reaps mailboxes that have seen no events for idleTTL. A mailbox
// with an in-flight send (TryLock fails) or undrained events is skipped and
// retried on the next sweep.
func (d *Dispatcher) janitor() {
	ticker := time.NewTicker(d.idleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case now := <-ticker.C:
			d.mu.Lock()
			for userID, mb := range d.mailboxes {
				if now.Sub(mb.lastSeen) <= d.idleTTL {
					continue
				}
				if !mb.mu.TryLock() {
					continue
				}
				if len(mb.ch) == 0 {
					mb.closed = true
					close(mb.ch)
					delete(d.mailboxes, userID)
					d.logger.Debug("mailbox.reaped", "user_id", userID)
				}
				mb.mu.Unlock()
			}
			d.mu.Unlock()
		}
	}
}

// Shutdown closes all mailboxes and waits for in-flight events to drain, or
// for ctx to expire.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.stop)
	mailboxes := d.mailboxes
	d.mailboxes = make(map[int64]*mailbox)
	d.mu.Unlock()

	// Taking each mailbox mutex waits out any in-flight send before the
	// channel closes.
	for _, mb := range mailboxes {
		mb.mu.Lock()
		if !mb.closed {
			mb.closed = true
			close(mb.ch)
		}
		mb.mu.Unlock()
	}

	done := make(chan struct{})
	go func() { defer close(done); d.wg.Wait() }()

	select {
	case <-ctx.Done():
		d.logger.Warn("dispatcher shutdown interrupted by context")
	case <-done:
		d.logger.Info("dispatcher drained, shutdown complete")
	}
}
