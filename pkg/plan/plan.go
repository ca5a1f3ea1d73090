package plan

import (
	"maps"
	"slices"
)

// Tier describes a plan and its resource/feature constraints.
type Tier struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description" json:"description"`
	Price       Money              `yaml:"price" json:"price"`
	Interval    BillingInterval    `yaml:"interval" json:"interval"`
	Limits      map[Resource]int64 `yaml:"limits" json:"limits"`    // -1 represents unlimited, 0 disables the resource
	Features    []Feature          `yaml:"features" json:"features"`
	Public      bool               `yaml:"public" json:"public"` // available for self-service signup
}

// LimitFor returns the cap for a resource. A resource absent from the
// limits map is disabled (0), not unlimited.
func (t Tier) LimitFor(res Resource) int64 {
	limit, ok := t.Limits[res]
	if !ok {
		return 0
	}
	return limit
}

// HasFeature reports whether the tier grants the given feature.
// Unknown keys are simply not granted.
func (t Tier) HasFeature(f Feature) bool {
	return slices.Contains(t.Features, f)
}

// Clone returns a deep copy so callers cannot mutate catalog state.
func (t Tier) Clone() Tier {
	t.Limits = maps.Clone(t.Limits)
	t.Features = slices.Clone(t.Features)
	return t
}

// Comparison contains the differences between two tiers.
// Used to validate downgrades and communicate changes to users.
type Comparison struct {
	NewFeatures      []Feature
	LostFeatures     []Feature
	IncreasedLimits  map[Resource]LimitChange
	DecreasedLimits  map[Resource]LimitChange
	NewResources     map[Resource]int64
	RemovedResources map[Resource]int64
}

// LimitChange represents a change in a resource cap.
type LimitChange struct {
	From int64
	To   int64
}

// HasDecreases returns true if any resource caps shrink in the target tier.
func (c *Comparison) HasDecreases() bool {
	return len(c.DecreasedLimits) > 0 || len(c.RemovedResources) > 0
}

// Compare returns the differences between the current and target tiers.
func Compare(current, target *Tier) *Comparison {
	if current == nil || target == nil {
		return nil
	}

	cmp := &Comparison{
		NewFeatures:      make([]Feature, 0),
		LostFeatures:     make([]Feature, 0),
		IncreasedLimits:  make(map[Resource]LimitChange),
		DecreasedLimits:  make(map[Resource]LimitChange),
		NewResources:     make(map[Resource]int64),
		RemovedResources: make(map[Resource]int64),
	}

	for _, f := range target.Features {
		if !slices.Contains(current.Features, f) {
			cmp.NewFeatures = append(cmp.NewFeatures, f)
		}
	}
	for _, f := range current.Features {
		if !slices.Contains(target.Features, f) {
			cmp.LostFeatures = append(cmp.LostFeatures, f)
		}
	}

	for res, targetLimit := range target.Limits {
		currentLimit, exists := current.Limits[res]
		if !exists {
			cmp.NewResources[res] = targetLimit
			continue
		}
		if targetLimit == currentLimit {
			continue
		}

		change := LimitChange{From: currentLimit, To: targetLimit}

		// Leaving unlimited is always a decrease, entering it always an increase.
		switch {
		case currentLimit == Unlimited:
			cmp.DecreasedLimits[res] = change
		case targetLimit == Unlimited:
			cmp.IncreasedLimits[res] = change
		case targetLimit > currentLimit:
			cmp.IncreasedLimits[res] = change
		default:
			cmp.DecreasedLimits[res] = change
		}
	}

	for res, currentLimit := range current.Limits {
		if _, exists := target.Limits[res]; !exists {
			cmp.RemovedResources[res] = currentLimit
		}
	}

	return cmp
}
