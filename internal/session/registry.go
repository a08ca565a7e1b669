// Package session scopes carts to browser sessions.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/yishak-cs/marmitas/internal/cart"
)

// Session owns one cart and its notification slot
type Session struct {
	ID string

	mu           sync.Mutex
	cart         *cart.Store
	notification *cart.Notification
	lastSeen     atomic.Int64
}

func newSession(id string, now time.Time) *Session {
	n := &cart.Notification{}
	s := &Session{
		ID:           id,
		cart:         cart.NewStore(n),
		notification: n,
	}
	s.touch(now)
	return s
}

// Do runs fn with exclusive access to the session's cart, so every
// operation is applied as a single step.
func (s *Session) Do(fn func(c *cart.Store, n *cart.Notification)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cart, s.notification)
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// Registry keeps live sessions, bounded by count and idle time
type Registry struct {
	cache  *lru.Cache
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewRegistry creates a registry holding at most maxSessions sessions. A
// session idle for longer than idleTTL is discarded; zero disables expiry.
func NewRegistry(maxSessions int, idleTTL time.Duration, logger *zap.Logger) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{ttl: idleTTL, now: time.Now, logger: logger}
	cache, err := lru.NewWithEvict(maxSessions, func(key, _ interface{}) {
		logger.Debug("session evicted", zap.Any("session_id", key))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

// Get returns a live session and marks it as used
func (r *Registry) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := r.cache.Get(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	now := r.now()
	if r.expired(s, now) {
		r.cache.Remove(id)
		return nil, false
	}
	s.touch(now)
	return s, true
}

// Create starts a new session with an empty cart
func (r *Registry) Create() *Session {
	s := newSession(uuid.NewString(), r.now())
	r.cache.Add(s.ID, s)
	r.logger.Debug("session created", zap.String("session_id", s.ID))
	return s
}

// Resolve returns the session for id, creating a fresh one when id is
// unknown or expired. created reports which case applied.
func (r *Registry) Resolve(id string) (s *Session, created bool) {
	if s, ok := r.Get(id); ok {
		return s, false
	}
	return r.Create(), true
}

// Sweep removes every idle session and returns how many were removed
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	now := r.now()
	removed := 0
	for _, key := range r.cache.Keys() {
		v, ok := r.cache.Peek(key)
		if !ok {
			continue
		}
		if r.expired(v.(*Session), now) {
			r.cache.Remove(key)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is cancelled
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("idle sessions swept", zap.Int("removed", n), zap.Int("live", r.Len()))
			}
		}
	}
}

// Len returns the number of sessions held
func (r *Registry) Len() int {
	return r.cache.Len()
}

func (r *Registry) expired(s *Session, now time.Time) bool {
	return r.ttl > 0 && s.idleSince(now) > r.ttl
}
