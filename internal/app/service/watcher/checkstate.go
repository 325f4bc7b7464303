package watcher

import (
	"sync"
	"time"
)

// checkState tracks one pending payment between polls. InfraErrors counts
// consecutive chain/store failures inside the shared Attempts counter so
// operators can tell a slow chain from a broken one.
type checkState struct {
	Attempts    int
	InfraErrors int
	LastCheck   time.Time
	Backoff     time.Duration
}

// checkTable is the watcher-owned arena of per-payment poll state. It lives
// only in memory; a restart starts polling fresh. The lock guards the map,
// each sweep worker mutates only its own entry.
type checkTable struct {
	mu     sync.Mutex
	states map[string]*checkState
}

func newCheckTable() *checkTable {
	return &checkTable{states: map[string]*checkState{}}
}

// get returns the state for a payment, creating it lazily on first poll.
func (t *checkTable) get(paymentID string) *checkState {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.states[paymentID]
	if !ok {
		st = &checkState{}
		t.states[paymentID] = st
	}
	return st
}

func (t *checkTable) drop(paymentID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, paymentID)
}

// prune drops state for payments that are no longer awaiting confirmation,
// whatever moved them on.
func (t *checkTable) prune(live map[string]struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id := range t.states {
		if _, ok := live[id]; !ok {
			delete(t.states, id)
		}
	}
}

func (t *checkTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.states)
}
