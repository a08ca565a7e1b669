package session

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yishak-cs/marmitas/internal/cart"
	"github.com/yishak-cs/marmitas/internal/models"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestRegistry(t *testing.T, max int, ttl time.Duration) (*Registry, *fakeClock) {
	t.Helper()
	r, err := NewRegistry(max, ttl, nil)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	clk := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	r.now = clk.Now
	return r, clk
}

var frango = models.MenuItem{Name: "Frango", Price: decimal.RequireFromString("22.00"), Category: models.CategoryDaily}

func TestResolveReturnsSameSession(t *testing.T) {
	r, _ := newTestRegistry(t, 10, time.Hour)
	s1, created := r.Resolve("")
	if !created || s1.ID == "" {
		t.Fatalf("expected a new session")
	}
	s2, created := r.Resolve(s1.ID)
	if created || s2 != s1 {
		t.Fatalf("expected the same session back")
	}
	if _, created := r.Resolve("unknown-id"); !created {
		t.Fatalf("unknown id should yield a new session")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	r, _ := newTestRegistry(t, 10, time.Hour)
	a := r.Create()
	b := r.Create()

	a.Do(func(c *cart.Store, _ *cart.Notification) { c.AddItem(frango) })

	b.Do(func(c *cart.Store, n *cart.Notification) {
		if c.ItemCount() != 0 {
			t.Fatalf("session b sees session a's cart")
		}
		if n.Pending() {
			t.Fatalf("session b sees session a's notification")
		}
	})
}

func TestIdleSessionExpires(t *testing.T) {
	r, clk := newTestRegistry(t, 10, 30*time.Minute)
	s := r.Create()

	clk.Advance(20 * time.Minute)
	if _, ok := r.Get(s.ID); !ok {
		t.Fatalf("session should still be live")
	}
	clk.Advance(20 * time.Minute)
	if _, ok := r.Get(s.ID); !ok {
		t.Fatalf("Get must refresh the idle timer")
	}
	clk.Advance(31 * time.Minute)
	if _, ok := r.Get(s.ID); ok {
		t.Fatalf("session should have expired")
	}
	if r.Len() != 0 {
		t.Fatalf("expired session should be removed, len=%d", r.Len())
	}
}

func TestSweep(t *testing.T) {
	r, clk := newTestRegistry(t, 10, time.Minute)
	r.Create()
	r.Create()
	clk.Advance(30 * time.Second)
	live := r.Create()
	clk.Advance(45 * time.Second)

	if n := r.Sweep(); n != 2 {
		t.Fatalf("expected 2 swept, got %d", n)
	}
	if _, ok := r.Get(live.ID); !ok {
		t.Fatalf("recent session swept")
	}
}

func TestCapacityEviction(t *testing.T) {
	r, _ := newTestRegistry(t, 2, 0)
	oldest := r.Create()
	r.Create()
	r.Create()
	if r.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", r.Len())
	}
	if _, ok := r.Get(oldest.ID); ok {
		t.Fatalf("oldest session should be evicted")
	}
}

func TestDoSerialisesConcurrentAdds(t *testing.T) {
	r, _ := newTestRegistry(t, 10, time.Hour)
	s := r.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(c *cart.Store, _ *cart.Notification) { c.AddItem(frango) })
		}()
	}
	wg.Wait()

	s.Do(func(c *cart.Store, _ *cart.Notification) {
		if c.ItemCount() != 50 {
			t.Fatalf("expected 50, got %d", c.ItemCount())
		}
	})
}
