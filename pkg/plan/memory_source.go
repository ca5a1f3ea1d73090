package plan

import (
	"context"
	"sync"
)

type inMemSource struct {
	mu    sync.RWMutex
	tiers map[string]Tier
}

// NewInMemSource returns an in-memory Source with a deep copy of the given
// tiers. Panics if no tiers are provided so the catalog always starts with
// at least one valid plan.
func NewInMemSource(tiers ...Tier) Source {
	if len(tiers) < 1 {
		panic("plan: at least one tier is required")
	}

	copied := make(map[string]Tier, len(tiers))
	for _, tier := range tiers {
		copied[tier.ID] = tier.Clone()
	}

	return &inMemSource{tiers: copied}
}

// Load returns a deep copy of all tiers so callers cannot modify the
// source's internal state.
func (s *inMemSource) Load(ctx context.Context) (map[string]Tier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Tier, len(s.tiers))
	for id, tier := range s.tiers {
		out[id] = tier.Clone()
	}
	return out, nil
}
