// Package guard provides a process-wide, non-blocking processing gate.
//
// Only one holder at a time; a failed TryAcquire is final for the caller,
// nothing waits or queues.
package guard

import "sync/atomic"

// Guard is a binary, non-reentrant gate. The zero value is ready to use.
type Guard struct {
	held     atomic.Bool
	acquired atomic.Int64
	rejected atomic.Int64
}

// Stats contains guard counters since process start.
type Stats struct {
	Busy     bool  `json:"busy"`
	Acquired int64 `json:"acquired"`
	Rejected int64 `json:"rejected"`
}

// New creates an unheld guard.
func New() *Guard {
	return &Guard{}
}

// TryAcquire takes the guard if it is free and reports whether it did.
func (g *Guard) TryAcquire() bool {
	if g.held.CompareAndSwap(false, true) {
		g.acquired.Add(1)
		return true
	}
	g.rejected.Add(1)
	return false
}

// Release frees the guard. Releasing an unheld guard is a no-op.
func (g *Guard) Release() {
	g.held.Store(false)
}

// Busy reports whether the guard is currently held.
func (g *Guard) Busy() bool {
	return g.held.Load()
}

// Stats returns a snapshot of the guard counters.
func (g *Guard) Stats() Stats {
	return Stats{
		Busy:     g.held.Load(),
		Acquired: g.acquired.Load(),
		Rejected: g.rejected.Load(),
	}
}
