package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/ludoteca-cli/internal/domain"
	"github.com/bnema/ludoteca-cli/internal/ports"
	"github.com/tidwall/gjson"
)

const (
	ActionReservationsStatus = "reservations_status"

	DefaultPollInterval = 8 * time.Second
)

// ReservationCache holds the last known status of every item ever
// refreshed, keyed by normalized title. A refresh overwrites the keys its
// response names and leaves every other entry as it was.
type ReservationCache struct {
	transport ports.Transport
	clock     ports.Clock
	reporter  ports.ErrorReporter

	mu       sync.RWMutex
	statuses map[string]domain.ReservationStatus

	pollMu sync.Mutex
	poll   *pollLoop
}

type pollLoop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func NewReservationCache(transport ports.Transport, clock ports.Clock, reporter ports.ErrorReporter) *ReservationCache {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if reporter == nil {
		reporter = ports.NopReporter{}
	}

	return &ReservationCache{
		transport: transport,
		clock:     clock,
		reporter:  reporter,
		statuses:  map[string]domain.ReservationStatus{},
	}
}

// Refresh queries the status of titles. An empty set is a no-op. On any
// failure the cache is left unchanged.
func (c *ReservationCache) Refresh(ctx context.Context, titles []string) error {
	query, err := statusQuery(titles)
	if err != nil {
		return err
	}
	if len(query) == 0 {
		return nil
	}

	raw, err := c.transport.Call(ctx, ActionReservationsStatus, map[string]string{
		"titoli": strings.Join(query, domain.TitleDelimiter),
	})
	if err != nil {
		return err
	}

	response, err := parseEnvelope(ActionReservationsStatus, raw)
	if err != nil {
		return err
	}
	if !response.ok() {
		return domain.NewBackendError(ActionReservationsStatus, response.message(), "reservation status unavailable")
	}

	updates, err := statusUpdates(response.result.Get("map"))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, status := range updates {
		c.statuses[key] = status
	}

	return nil
}

// statusQuery trims titles, drops blanks and duplicates by normalized key,
// and refuses titles that would break the delimited query.
func statusQuery(titles []string) ([]string, error) {
	query := make([]string, 0, len(titles))
	seen := make(map[string]struct{}, len(titles))

	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if strings.Contains(title, domain.TitleDelimiter) {
			return nil, fmt.Errorf("%w: %q contains %q", domain.ErrInvalidItemTitle, title, domain.TitleDelimiter)
		}

		key := domain.NormalizeItemKey(title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		query = append(query, title)
	}

	return query, nil
}

func statusUpdates(statusMap gjson.Result) (map[string]domain.ReservationStatus, error) {
	updates := map[string]domain.ReservationStatus{}
	if !statusMap.Exists() || statusMap.Type == gjson.Null {
		return updates, nil
	}
	if !statusMap.IsObject() {
		return nil, fmt.Errorf("%s: %w: map is not an object", ActionReservationsStatus, errMalformedResponse)
	}

	statusMap.ForEach(func(key, value gjson.Result) bool {
		itemKey := domain.NormalizeItemKey(key.String())
		if itemKey == "" {
			return true
		}
		status := domain.StatusNone
		if value.Type == gjson.String {
			status = domain.ParseReservationStatus(value.String())
		}
		updates[itemKey] = status
		return true
	})

	return updates, nil
}

// Lookup returns the cached status for a display title, StatusNone when
// the title was never seen.
func (c *ReservationCache) Lookup(title string) domain.ReservationStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.statuses[domain.NormalizeItemKey(title)]
}

func (c *ReservationCache) Snapshot() map[string]domain.ReservationStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make(map[string]domain.ReservationStatus, len(c.statuses))
	for key, status := range c.statuses {
		snapshot[key] = status
	}
	return snapshot
}

// StartPolling refreshes keys() every interval and calls onUpdated after
// each successful refresh. Tick failures go to the error reporter and
// never stop the loop. A previous loop is fully stopped before the new
// ticker is armed. onUpdated must not call StartPolling or StopPolling.
func (c *ReservationCache) StartPolling(ctx context.Context, keys func() []string, onUpdated func(), interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	c.pollMu.Lock()
	defer c.pollMu.Unlock()

	c.stopLocked()

	loopCtx, cancel := context.WithCancel(ctx)
	loop := &pollLoop{cancel: cancel, done: make(chan struct{})}
	ticker := c.clock.NewTicker(interval)
	c.poll = loop

	go func() {
		defer close(loop.done)
		defer ticker.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C():
				c.tick(loopCtx, keys, onUpdated)
			}
		}
	}()
}

// StopPolling stops the active loop and waits for an in-flight tick to
// finish. It is safe to call when nothing is polling.
func (c *ReservationCache) StopPolling() {
	c.pollMu.Lock()
	defer c.pollMu.Unlock()
	c.stopLocked()
}

func (c *ReservationCache) Polling() bool {
	c.pollMu.Lock()
	defer c.pollMu.Unlock()
	if c.poll == nil {
		return false
	}

	select {
	case <-c.poll.done:
		return false
	default:
		return true
	}
}

func (c *ReservationCache) stopLocked() {
	if c.poll == nil {
		return
	}
	c.poll.cancel()
	<-c.poll.done
	c.poll = nil
}

func (c *ReservationCache) tick(ctx context.Context, keys func() []string, onUpdated func()) {
	defer func() {
		if r := recover(); r != nil {
			c.reporter.Suppressed("poll.tick", fmt.Errorf("panic: %v", r))
		}
	}()

	titles, err := c.pollKeys(keys)
	if err != nil {
		c.reporter.Suppressed("poll.keys", err)
		return
	}

	if err := c.Refresh(ctx, titles); err != nil {
		if !errors.Is(err, context.Canceled) || ctx.Err() == nil {
			c.reporter.Suppressed("poll.tick", err)
		}
		return
	}
	if ctx.Err() != nil {
		return
	}

	if onUpdated != nil {
		onUpdated()
	}
}

func (c *ReservationCache) pollKeys(keys func() []string) (titles []string, err error) {
	if keys == nil {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return keys(), nil
}
