package callback

import (
	"sync"
	"time"
)

// Factory builds the Handler for a session.
type Factory func(sessionID string) *Handler

// Registry keeps one Handler per session so repeated deliveries of a
// redirect within a session share a latch. Entries unused for longer than
// the idle timeout are dropped.
type Registry struct {
	mu        sync.Mutex
	factory   Factory
	idle      time.Duration
	now       func() time.Time
	lastPrune time.Time
	handlers  map[string]*registryEntry
}

type registryEntry struct {
	handler  *Handler
	lastUsed time.Time
}

func NewRegistry(factory Factory, idle time.Duration) *Registry {
	return &Registry{
		factory:  factory,
		idle:     idle,
		now:      time.Now,
		handlers: make(map[string]*registryEntry),
	}
}

// For returns the session's Handler, creating it on first use.
func (r *Registry) For(sessionID string) *Handler {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.prune(now)

	entry, ok := r.handlers[sessionID]
	if !ok {
		entry = &registryEntry{handler: r.factory(sessionID)}
		r.handlers[sessionID] = entry
	}
	entry.lastUsed = now
	return entry.handler
}

// Forget drops the session's Handler, e.g. after sign-out.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.handlers, sessionID)
}

// Len returns the number of live handlers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.handlers)
}

// prune sweeps at most once per half idle period, so an entry may outlive
// the timeout by up to idle/2. Must be called with the lock held.
func (r *Registry) prune(now time.Time) {
	if r.idle <= 0 || now.Sub(r.lastPrune) < r.idle/2 {
		return
	}
	r.lastPrune = now
	for id, entry := range r.handlers {
		if now.Sub(entry.lastUsed) > r.idle {
			delete(r.handlers, id)
		}
	}
}
