package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type recordingHandler struct {
	mu   sync.Mutex
	seen map[int64][]string
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{seen: make(map[int64][]string)}
}

func (h *recordingHandler) HandleEvent(_ context.Context, userID int64, ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen[userID] = append(h.seen[userID], ev.Text)
	return nil
}

func (h *recordingHandler) events(userID int64) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.seen[userID]...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcherPreservesPerUserOrder(t *testing.T) {
	handler := newRecordingHandler()
	d := NewDispatcher(handler, discardLogger(), WithQueueSize(128))

	const perUser = 50
	users := []int64{1, 2, 3}
	for i := 0; i < perUser; i++ {
		for _, u := range users {
			ev := Event{Kind: EventText, Text: string(rune('a' + i%26))}
			if err := d.Dispatch(context.Background(), u, ev); err != nil {
				t.Fatalf("Dispatch: %v", err)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d.Shutdown(ctx)

	for _, u := range users {
		got := handler.events(u)
		if len(got) != perUser {
			t.Fatalf("user %d handled %d events, want %d", u, len(got), perUser)
		}
		for i, text := range got {
			if want := string(rune('a' + i%26)); text != want {
				t.Fatalf("user %d event %d = %q, want %q", u, i, text, want)
			}
		}
	}
}

// blockingHandler parks user 1's events on a gate so their mailbox can be
// filled to capacity while other users keep flowing.
type blockingHandler struct {
	started chan struct{}
	gate    chan struct{}
	once    sync.Once

	mu      sync.Mutex
	handled map[int64]int
}

func (h *blockingHandler) HandleEvent(_ context.Context, userID int64, _ Event) error {
	if userID == 1 {
		h.once.Do(func() { close(h.started) })
		<-h.gate
	}
	h.mu.Lock()
	h.handled[userID]++
	h.mu.Unlock()
	return nil
}

func (h *blockingHandler) count(userID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.handled[userID]
}

func TestDispatcherFullMailboxDoesNotStallOtherUsers(t *testing.T) {
	h := &blockingHandler{
		started: make(chan struct{}),
		gate:    make(chan struct{}),
		handled: make(map[int64]int),
	}
	d := NewDispatcher(h, discardLogger(), WithQueueSize(1))

	ev := Event{Kind: EventText, Text: "x"}
	ctx := context.Background()

	// First event occupies user 1's worker, second fills the queue.
	if err := d.Dispatch(ctx, 1, ev); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	select {
	case <-h.started:
	case <-time.After(2 * time.Second):
		t.Fatal("user 1's worker never picked up the first event")
	}
	if err := d.Dispatch(ctx, 1, ev); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	// Third event has nowhere to go and blocks inside Dispatch.
	thirdSent := make(chan struct{})
	go func() {
		defer close(thirdSent)
		_ = d.Dispatch(ctx, 1, ev)
	}()
	time.Sleep(50 * time.Millisecond)

	// Another user's dispatch must not queue up behind user 1's backlog.
	otherSent := make(chan struct{})
	go func() {
		defer close(otherSent)
		_ = d.Dispatch(ctx, 2, ev)
	}()
	select {
	case <-otherSent:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch for user 2 stalled behind user 1's full mailbox")
	}

	close(h.gate)
	select {
	case <-thirdSent:
	case <-time.After(2 * time.Second):
		t.Fatal("user 1's blocked dispatch never completed after draining")
	}

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d.Shutdown(shCtx)

	if got := h.count(1); got != 3 {
		t.Errorf("user 1 handled %d events, want 3", got)
	}
	if got := h.count(2); got != 1 {
		t.Errorf("user 2 handled %d events, want 1", got)
	}
}

func TestDispatcherRejectsAfterShutdown(t *testing.T) {
	handler := newRecordingHandler()
	d := NewDispatcher(handler, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	d.Shutdown(ctx)

	if err := d.Dispatch(context.Background(), 1, Event{Kind: EventText, Text: "late"}); err != nil {
		t.Fatalf("Dispatch after shutdown: %v", err)
	}
	if got := handler.events(1); len(got) != 0 {
		t.Fatalf("handled %d events after shutdown, want 0", len(got))
	}
}

func TestDispatcherShutdownIdempotent(t *testing.T) {
	d := NewDispatcher(newRecordingHandler(), discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	d.Shutdown(ctx)
	d.Shutdown(ctx)
}
