package plan

import (
	"fmt"
	"strings"
)

// Ref is a normalized plan reference. Legacy tenant records carry the plan
// either as a bare id string or as an embedded plan object; every loose
// value goes through NormalizeRef exactly once, before any other component
// touches it.
type Ref struct {
	id     string
	inline *Tier
}

// RefFromID returns a reference to a catalog plan by id.
func RefFromID(id string) Ref {
	return Ref{id: strings.TrimSpace(id)}
}

// RefFromTier returns a reference carrying an inline tier definition.
func RefFromTier(t Tier) Ref {
	tier := t.Clone()
	return Ref{id: t.ID, inline: &tier}
}

// IsZero reports whether the reference carries neither an id nor a tier.
func (r Ref) IsZero() bool {
	return r.id == "" && r.inline == nil
}

// PlanID returns the referenced plan id, which may be empty for
// anonymous inline tiers.
func (r Ref) PlanID() string {
	return r.id
}

// Resolve returns the referenced tier. Inline definitions win over the
// catalog; everything else goes through the catalog's fail-open lookup.
func (r Ref) Resolve(catalog *Catalog) Tier {
	if r.inline != nil {
		return r.inline.Clone()
	}
	return catalog.Resolve(r.id)
}

// NormalizeRef converts the loosely-typed plan values found in persisted
// records into a Ref. Accepted forms: plan id string, Tier, *Tier, Ref,
// and the map shape produced by decoding legacy embedded plan documents.
func NormalizeRef(v any) (Ref, error) {
	switch val := v.(type) {
	case nil:
		return Ref{}, nil
	case Ref:
		return val, nil
	case string:
		return RefFromID(val), nil
	case Tier:
		return RefFromTier(val), nil
	case *Tier:
		if val == nil {
			return Ref{}, nil
		}
		return RefFromTier(*val), nil
	case map[string]any:
		// Legacy embedded plan documents carry at least an id field.
		for _, key := range []string{"id", "_id", "planId"} {
			if id, ok := val[key].(string); ok && id != "" {
				return RefFromID(id), nil
			}
		}
		return Ref{}, fmt.Errorf("%w: embedded plan document without id", ErrInvalidRef)
	default:
		return Ref{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidRef, v)
	}
}
