package plan

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// FreePlanID is the distinguished baseline plan every tenant falls back to
// when it has no assignment, an expired assignment, or an unknown plan id.
const FreePlanID = "free"

// Source defines how tiers are loaded into a Catalog.
type Source interface {
	Load(ctx context.Context) (map[string]Tier, error)
}

// Catalog is an immutable registry of plan tiers keyed by plan id.
// It is loaded once at process start and replaced only via explicit Reload;
// business logic receives it by injection, never through a package singleton.
type Catalog struct {
	mu    sync.RWMutex
	src   Source
	tiers map[string]Tier
}

// NewCatalog loads tiers from the source and validates them.
// The free tier is mandatory: it is the fail-open target for every
// unknown plan id, so a catalog without it cannot satisfy resolution.
func NewCatalog(ctx context.Context, src Source) (*Catalog, error) {
	if src == nil {
		panic("plan: Source is required")
	}

	tiers, err := load(ctx, src)
	if err != nil {
		return nil, err
	}

	return &Catalog{src: src, tiers: tiers}, nil
}

// Resolve returns the tier for the given plan id. Unknown or empty ids
// resolve to the free tier rather than failing, so a tenant never ends up
// entitlement-less because a plan id was renamed or removed.
func (c *Catalog) Resolve(planID string) Tier {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if tier, ok := c.tiers[planID]; ok {
		return tier.Clone()
	}
	return c.tiers[FreePlanID].Clone()
}

// Exists reports whether the plan id is registered.
// Explicit assignment paths use this to fail loudly instead of degrading.
func (c *Catalog) Exists(planID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.tiers[planID]
	return ok
}

// HasFeature reports whether the plan grants the feature.
// Plan identity is fail-open (unknown plans degrade to free), feature
// lookup is fail-closed (unknown keys are never granted).
func (c *Catalog) HasFeature(planID string, f Feature) bool {
	return c.Resolve(planID).HasFeature(f)
}

// Tiers returns a copy of all registered tiers.
func (c *Catalog) Tiers() map[string]Tier {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]Tier, len(c.tiers))
	for id, tier := range c.tiers {
		out[id] = tier.Clone()
	}
	return out
}

// Reload re-reads the source and swaps the registry atomically.
// On load failure the previous registry stays in place.
func (c *Catalog) Reload(ctx context.Context) error {
	tiers, err := load(ctx, c.src)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.tiers = tiers
	c.mu.Unlock()
	return nil
}

func load(ctx context.Context, src Source) (map[string]Tier, error) {
	tiers, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	if err := validate(tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

func validate(tiers map[string]Tier) error {
	if _, ok := tiers[FreePlanID]; !ok {
		return ErrMissingFreeTier
	}
	for id, tier := range tiers {
		for res, limit := range tier.Limits {
			if limit < Unlimited {
				return errors.Join(ErrInvalidPlanConfiguration,
					fmt.Errorf("plan %s has invalid limit %d for resource %s", id, limit, res))
			}
		}
	}
	return nil
}
