// Package admission implements the Server Admission Controller: a
// lazily-created per-host counting semaphore that caps concurrent
// article downloads hitting the same host (spec.md §3 ServerAdmissionMap).
package admission

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Map holds one weighted semaphore per host, created on first use and
// never removed during a crawl. AdmissionMapLock (mu below) is held only
// long enough to materialize the semaphore reference; it is released
// before the blocking Acquire.
type Map struct {
	mu       sync.Mutex
	capacity int64
	hosts    map[string]*semaphore.Weighted
}

// NewMap returns a per-host admission controller with the given capacity
// (spec.md §4.1 PerHostBudget; default 8).
func NewMap(capacity int64) *Map {
	return &Map{
		capacity: capacity,
		hosts:    make(map[string]*semaphore.Weighted),
	}
}

func (m *Map) semaphoreFor(host string) *semaphore.Weighted {
	m.mu.Lock()
	sem, ok := m.hosts[host]
	if !ok {
		sem = semaphore.NewWeighted(m.capacity)
		m.hosts[host] = sem
	}
	m.mu.Unlock()
	return sem
}

// Acquire blocks until a slot for host becomes available, or ctx is
// done. The map lock is released before this blocking wait, per
// spec.md §5.
func (m *Map) Acquire(ctx context.Context, host string) error {
	return m.semaphoreFor(host).Acquire(ctx, 1)
}

// Release returns the unit acquired for host. host must have already
// had a successful Acquire.
func (m *Map) Release(host string) {
	m.semaphoreFor(host).Release(1)
}
