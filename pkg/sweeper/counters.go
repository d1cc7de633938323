// File: pkg/sweeper/counters.go
package sweeper

import (
	"sync"
)

// Counters tracks per-session action totals. The simulation itself is
// single-agent and turn-based, but reporting code may read counters from a
// different goroutine than the one driving the bot, so access is guarded.
type Counters struct {
	mu sync.Mutex

	moves   uint64
	cleaned uint64
	backups uint64
	invalid uint64
}

// CountersSnapshot is a point-in-time copy of the counters.
type CountersSnapshot struct {
	Moves   uint64
	Cleaned uint64
	Backups uint64
	Invalid uint64
}

func (c *Counters) incMoves() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moves++
}

func (c *Counters) incCleaned() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleaned++
}

func (c *Counters) incBackups() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backups++
}

func (c *Counters) incInvalid() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalid++
}

// Snapshot returns a copy of the current totals.
func (c *Counters) Snapshot() CountersSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CountersSnapshot{
		Moves:   c.moves,
		Cleaned: c.cleaned,
		Backups: c.backups,
		Invalid: c.invalid,
	}
}
