package throttle

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepEvery controls how often idle histories are dropped.
const sweepEvery = 1024

// MemoryLimiter keeps a sliding window of request times per key in process
// memory. A request is accepted while fewer than Requests of the recorded
// times fall inside the last Period.
type MemoryLimiter struct {
	mu        sync.Mutex
	histories map[string]*history
	sweeper   rate.Sometimes
	now       func() time.Time
}

// history holds accepted request times, oldest first.
type history struct {
	stamps []time.Time
	period time.Duration
}

func NewMemoryLimiter() *MemoryLimiter {
	return NewMemoryLimiterWithClock(time.Now)
}

// NewMemoryLimiterWithClock is NewMemoryLimiter with a custom time source.
func NewMemoryLimiterWithClock(now func() time.Time) *MemoryLimiter {
	return &MemoryLimiter{
		histories: make(map[string]*history),
		sweeper:   rate.Sometimes{Every: sweepEvery},
		now:       now,
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string, r Rate) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweeper.Do(func() { m.sweep(now) })

	h, ok := m.histories[key]
	if !ok {
		h = &history{}
		m.histories[key] = h
	}
	h.period = r.Period
	h.expire(now)

	if len(h.stamps) >= r.Requests {
		oldest := h.stamps[len(h.stamps)-r.Requests]
		return Result{
			Allowed:    false,
			Limit:      r.Requests,
			RetryAfter: oldest.Add(r.Period).Sub(now),
		}, nil
	}

	h.stamps = append(h.stamps, now)
	return Result{
		Allowed:   true,
		Limit:     r.Requests,
		Remaining: r.Requests - len(h.stamps),
	}, nil
}

// expire drops stamps that are at least one period old.
func (h *history) expire(now time.Time) {
	cutoff := now.Add(-h.period)
	n := 0
	for n < len(h.stamps) && !h.stamps[n].After(cutoff) {
		n++
	}
	if n > 0 {
		h.stamps = append(h.stamps[:0], h.stamps[n:]...)
	}
}

// sweep drops histories whose every stamp has left the window; they behave
// exactly like fresh ones. Must be called with m.mu held.
func (m *MemoryLimiter) sweep(now time.Time) {
	for key, h := range m.histories {
		h.expire(now)
		if len(h.stamps) == 0 {
			delete(m.histories, key)
		}
	}
}
