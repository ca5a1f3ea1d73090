package usage

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/promoflow/entitlements/pkg/plan"
	"github.com/promoflow/entitlements/pkg/tenant"
)

// DefaultCollections maps each resource type to the collection holding its
// records. Collection names follow the historical store layout.
var DefaultCollections = map[plan.Resource]string{
	plan.ResourceFlyers:            "flyers",
	plan.ResourceProducts:          "products",
	plan.ResourceCampaigns:         "campaigns",
	plan.ResourceClients:           "clients",
	plan.ResourceIntegrations:      "integrations",
	plan.ResourceStorefrontWidgets: "widgets",
}

// MongoCounter counts owned records with the shared multi-field ownership
// predicate. Resource records were persisted against inconsistent tenant
// reference field names, exactly like the accounts themselves.
type MongoCounter struct {
	db          *mongo.Database
	collections map[plan.Resource]string
}

// NewMongoCounter creates a counter over the given database using
// DefaultCollections. Panics on nil database to fail fast.
func NewMongoCounter(db *mongo.Database) *MongoCounter {
	if db == nil {
		panic("usage: mongo database is required")
	}
	return &MongoCounter{db: db, collections: maps.Clone(DefaultCollections)}
}

// Count returns the number of records the tenant owns for the resource.
// Zero matches is a valid 0; only connectivity failures surface as
// ErrCountUnavailable.
func (c *MongoCounter) Count(ctx context.Context, tenantID string, res plan.Resource) (int64, error) {
	collName, ok := c.collections[res]
	if !ok {
		return 0, fmt.Errorf("%w: unknown resource %q", ErrCountUnavailable, res)
	}

	n, err := c.db.Collection(collName).CountDocuments(ctx, tenant.OwnershipFilter(tenantID))
	if err != nil {
		return 0, errors.Join(ErrCountUnavailable, err)
	}
	return n, nil
}

// Resources lists the resource types with a backing collection.
func (c *MongoCounter) Resources() []plan.Resource {
	out := slices.Collect(maps.Keys(c.collections))
	slices.Sort(out)
	return out
}
