// Package ratelimit provides sliding-window limits on how often a caller may
// start a device flow.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLimitExceeded is returned by callers that translate a denied Allow
var ErrLimitExceeded = errors.New("rate limit exceeded")

// Limiter decides whether key may perform one more operation in the
// current window
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	CheckHealth(ctx context.Context) error
}

// Memory is an in-process sliding-window limiter
type Memory struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

// NewMemory allows limit operations per key within any window-long interval
func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		limit:  limit,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

// Allow records an operation for key if the window has room for it
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	cutoff := now.Add(-m.window)

	recent := m.hits[key][:0]
	for _, t := range m.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= m.limit {
		m.hits[key] = recent
		return false, nil
	}
	m.hits[key] = append(recent, now)
	m.prune(cutoff)
	return true, nil
}

// prune drops keys whose hits have all left the window
func (m *Memory) prune(cutoff time.Time) {
	for key, hits := range m.hits {
		if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
			delete(m.hits, key)
		}
	}
}

// CheckHealth always succeeds
func (m *Memory) CheckHealth(context.Context) error {
	return nil
}
