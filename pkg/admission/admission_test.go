package admission

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestPerHostCapEnforced drives 50 concurrent acquirers against a single
// host with capacity 8 and asserts the observed peak never exceeds it
// (spec.md §8 property 2 / scenario S3).
func TestPerHostCapEnforced(t *testing.T) {
	m := NewMap(8)
	ctx := context.Background()

	var active int32
	var peak int32
	var peakMu sync.Mutex

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Acquire(ctx, "example.com"); err != nil {
				t.Error(err)
				return
			}
			cur := atomic.AddInt32(&active, 1)
			peakMu.Lock()
			if cur > peak {
				peak = cur
			}
			peakMu.Unlock()
			time.Sleep(20 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			m.Release("example.com")
		}()
	}
	wg.Wait()

	if peak > 8 {
		t.Fatalf("observed peak concurrency %d exceeds cap of 8", peak)
	}
	if peak == 0 {
		t.Fatal("expected at least one acquire to have run")
	}
}

func TestSeparateHostsDoNotShareBudget(t *testing.T) {
	m := NewMap(1)
	ctx := context.Background()

	if err := m.Acquire(ctx, "a.example"); err != nil {
		t.Fatal(err)
	}
	defer m.Release("a.example")

	done := make(chan struct{})
	go func() {
		if err := m.Acquire(ctx, "b.example"); err != nil {
			t.Error(err)
		}
		m.Release("b.example")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("acquire on a different host should not block behind a.example's budget")
	}
}
