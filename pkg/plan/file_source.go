package plan

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource loads plan tiers from a YAML file. The file maps plan id to
// tier definition:
//
//	free:
//	  name: Free
//	  interval: none
//	  limits:
//	    flyers: 3
//	    products: 10
//	pro:
//	  name: Pro
//	  interval: monthly
//	  price: { amount: 2990, currency: BRL }
//	  limits:
//	    flyers: -1
//	  features: [custom_domain, analytics]
type FileSource struct {
	Path string
}

// NewFileSource returns a Source reading from the given YAML file.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the plan file. The map key wins over any id field
// inside the tier definition to keep the file unambiguous.
func (s *FileSource) Load(ctx context.Context) (map[string]Tier, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var raw map[string]Tier
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	tiers := make(map[string]Tier, len(raw))
	for id, tier := range raw {
		tier.ID = id
		tiers[id] = tier
	}
	return tiers, nil
}
