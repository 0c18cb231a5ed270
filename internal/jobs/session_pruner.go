package jobs

import (
	"context"
	"log"
)

// SessionStore is the slice of the session store the pruner needs.
type SessionStore interface {
	Len() int
	PruneOldest(max int) int
}

// SessionPruner bounds the number of retained chat sessions by evicting the
// least recently used ones. Histories within a surviving session are capped
// synchronously by the store itself; this task only bounds session count.
type SessionPruner struct {
	store SessionStore
	max   int
}

// NewSessionPruner creates a pruner keeping at most max sessions.
func NewSessionPruner(store SessionStore, max int) *SessionPruner {
	return &SessionPruner{store: store, max: max}
}

// Run evicts sessions beyond the bound.
func (p *SessionPruner) Run(ctx context.Context) error {
	evicted := p.store.PruneOldest(p.max)
	if evicted > 0 {
		log.Printf("session pruner: evicted %d sessions (%d retained)", evicted, p.store.Len())
	}
	return nil
}
