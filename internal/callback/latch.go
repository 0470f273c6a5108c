package callback

import "sync/atomic"

// Latch is a one-shot guard. It is acquired right before a code exchange
// starts and released again only when that exchange fails.
type Latch struct {
	held atomic.Bool
}

// Held reports whether an exchange has been started and not failed.
func (l *Latch) Held() bool {
	return l.held.Load()
}

// Acquire sets the latch. It returns false when the latch was already held.
func (l *Latch) Acquire() bool {
	return l.held.CompareAndSwap(false, true)
}

// Release clears the latch so a later invocation may retry.
func (l *Latch) Release() {
	l.held.Store(false)
}
