package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Memory keeps one bucket per key in process memory. Buckets idle for longer
// than idleTTL are dropped.
type Memory struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemory(perSecond float64, burst int) *Memory {
	return newMemory(perSecond, burst, time.Now)
}

func newMemory(perSecond float64, burst int, now func() time.Time) *Memory {
	if burst <= 0 {
		burst = 1
	}

	idle := 10 * time.Minute
	if perSecond > 0 {
		// A bucket idle this long has refilled completely.
		if full := time.Duration(float64(burst) / perSecond * float64(time.Second)); full > idle {
			idle = full
		}
	}

	return &Memory{
		limit:     rate.Limit(perSecond),
		burst:     burst,
		idleTTL:   idle,
		buckets:   make(map[string]*bucket),
		lastSweep: now(),
		now:       now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) > m.idleTTL {
		m.sweep(now)
	}

	b, ok := m.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[key] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1), nil
}

func (m *Memory) sweep(now time.Time) {
	for key, b := range m.buckets {
		if now.Sub(b.lastSeen) > m.idleTTL {
			delete(m.buckets, key)
		}
	}
	m.lastSweep = now
}
