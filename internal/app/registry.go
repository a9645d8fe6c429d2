package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"yogaslot/internal/logger"
	"yogaslot/internal/metrics"
)

type entry struct {
	app      *App
	lastSeen time.Time
}

// Registry holds the App of every logged-in browser session and drops
// sessions that stay idle longer than the configured TTL. Dropped sessions
// rehydrate from storage on their next request. Anonymous visitors are
// never held.
type Registry struct {
	mu      sync.Mutex
	apps    map[string]*entry
	factory Factory
	idle    time.Duration
	now     func() time.Time
}

func NewRegistry(factory Factory, idle time.Duration) *Registry {
	return &Registry{
		apps:    make(map[string]*entry),
		factory: factory,
		idle:    idle,
		now:     time.Now,
	}
}

// Lookup returns the App for id and whether the registry holds it. An empty
// or malformed id gets a transient App under a fresh id without touching
// storage. A well-formed id not in memory is rehydrated and held only if
// its login survived.
func (r *Registry) Lookup(ctx context.Context, id string) (*App, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return r.factory(ctx, uuid.NewString(), false), false
	}

	r.mu.Lock()
	if e, ok := r.apps[id]; ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		return e.app, true
	}
	r.mu.Unlock()

	a := r.factory(ctx, id, true)
	if !a.LoggedIn() {
		return a, false
	}
	return r.Adopt(a), true
}

// Adopt holds a under its ID. If another App already holds that ID, the
// held one wins and is returned.
func (r *Registry) Adopt(a *App) *App {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.apps[a.ID]; ok {
		e.lastSeen = r.now()
		return e.app
	}
	r.apps[a.ID] = &entry{app: a, lastSeen: r.now()}
	metrics.SetActiveSessions(len(r.apps))
	return a
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.apps, id)
	metrics.SetActiveSessions(len(r.apps))
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.apps)
}

// Sweep evicts idle sessions and returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	evicted := 0
	for id, e := range r.apps {
		if e.lastSeen.Before(cutoff) {
			delete(r.apps, id)
			evicted++
		}
	}
	metrics.SetActiveSessions(len(r.apps))
	return evicted
}

// Run sweeps on every tick until ctx is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Debug("evicted idle sessions", "count", n, "active", r.Len())
			}
		}
	}
}
