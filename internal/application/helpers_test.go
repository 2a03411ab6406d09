package application

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/bnema/ludoteca-cli/internal/adapters/session"
	"github.com/bnema/ludoteca-cli/internal/adapters/storage/file"
	"github.com/bnema/ludoteca-cli/internal/ports"
	"github.com/stretchr/testify/mock"
)

func anyCtx() interface{} {
	return mock.Anything
}

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

type suppressedError struct {
	operation string
	err       error
}

type recordingReporter struct {
	mu      sync.Mutex
	entries []suppressedError
}

func (r *recordingReporter) Suppressed(operation string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, suppressedError{operation: operation, err: err})
}

func (r *recordingReporter) operations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	operations := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		operations = append(operations, entry.operation)
	}
	return operations
}

func newSessionStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(file.NewStore(t.TempDir(), "https_script.example.com"), ports.NopReporter{})
}

func seedToken(t *testing.T, store *session.Store, token string) {
	t.Helper()
	if err := store.SetSession(context.Background(), newSession(token)); err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

// fakeClock hands out tickers whose ticks are sent by the test.
type fakeClock struct {
	now     time.Time
	tickers chan *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now:     time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC),
		tickers: make(chan *fakeTicker, 8),
	}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) NewTicker(d time.Duration) ports.Ticker {
	ticker := &fakeTicker{interval: d, c: make(chan time.Time), stopped: make(chan struct{})}
	c.tickers <- ticker
	return ticker
}

func (c *fakeClock) nextTicker(t *testing.T) *fakeTicker {
	t.Helper()
	select {
	case ticker := <-c.tickers:
		return ticker
	case <-time.After(2 * time.Second):
		t.Fatal("no ticker created")
		return nil
	}
}

type fakeTicker struct {
	interval time.Duration
	c        chan time.Time
	once     sync.Once
	stopped  chan struct{}
}

func (t *fakeTicker) C() <-chan time.Time {
	return t.c
}

func (t *fakeTicker) Stop() {
	t.once.Do(func() { close(t.stopped) })
}

// tick delivers one tick and blocks until the loop has received it.
func (t *fakeTicker) tick(tb testing.TB, at time.Time) {
	tb.Helper()
	select {
	case t.c <- at:
	case <-time.After(2 * time.Second):
		tb.Fatal("polling loop did not receive tick")
	}
}

func (t *fakeTicker) isStopped() bool {
	select {
	case <-t.stopped:
		return true
	default:
		return false
	}
}

func mockAnyParams() interface{} {
	return mock.Anything
}
