package tenant

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/promoflow/entitlements/pkg/plan"
)

// DefaultAccountsCollection is the collection holding tenant accounts.
const DefaultAccountsCollection = "accounts"

// MongoStore implements Store on top of a mongo collection that has been
// written under several schema generations. Lookups reconcile all of them
// through MatchFilter; this store never narrows the predicate per call site.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over the given database.
// Panics on nil database to fail fast during initialization.
func NewMongoStore(db *mongo.Database) *MongoStore {
	if db == nil {
		panic("tenant: mongo database is required")
	}
	return &MongoStore{coll: db.Collection(DefaultAccountsCollection)}
}

// accountDoc tolerates the schema drift in persisted accounts: _id may be
// a string or ObjectID, and the plan may live in a structured assignment
// subdocument or in a legacy duck-typed "plan" field.
type accountDoc struct {
	ID         any             `bson:"_id"`
	Name       string          `bson:"name"`
	Active     *bool           `bson:"active"`
	Assignment *PlanAssignment `bson:"assignment"`
	Plan       any             `bson:"plan"`
	CreatedAt  time.Time       `bson:"createdAt"`
}

func (d *accountDoc) toAccount() (*Account, error) {
	id, err := NormalizeID(d.ID)
	if err != nil {
		if oid, ok := d.ID.(bson.ObjectID); ok {
			id = oid.Hex()
		} else {
			return nil, err
		}
	}

	acc := &Account{
		ID:         id,
		Name:       d.Name,
		Active:     d.Active == nil || *d.Active, // absent flag predates soft-deactivation
		Assignment: d.Assignment,
		CreatedAt:  d.CreatedAt,
	}

	// Legacy records carry the plan directly, either as an id string or an
	// embedded plan object. Normalize once, here, so nothing downstream
	// ever sees the duck-typed field.
	if acc.Assignment == nil && d.Plan != nil {
		ref, err := plan.NormalizeRef(plainValue(d.Plan))
		if err != nil {
			return nil, err
		}
		if !ref.IsZero() {
			acc.Assignment = &PlanAssignment{PlanID: ref.PlanID(), Active: true}
		}
	}

	return acc, nil
}

// plainValue flattens the driver's document types into the plain Go shapes
// plan.NormalizeRef understands. Interface-typed fields decode embedded
// documents as bson.D, not map[string]any.
func plainValue(v any) any {
	switch val := v.(type) {
	case bson.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = e.Value
		}
		return m
	case bson.M:
		return map[string]any(val)
	}
	return v
}

// FindByIdentifier looks up an account via the multi-field predicate.
func (s *MongoStore) FindByIdentifier(ctx context.Context, id string) (*Account, error) {
	var doc accountDoc
	err := s.coll.FindOne(ctx, MatchFilter(id)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return doc.toAccount()
}

// SaveAssignment replaces the tenant's assignment subdocument in a single
// update, giving last-write-wins semantics for concurrent saves.
func (s *MongoStore) SaveAssignment(ctx context.Context, tenantID string, assignment PlanAssignment) error {
	res, err := s.coll.UpdateOne(ctx, MatchFilter(tenantID), bson.M{
		"$set": bson.M{"assignment": assignment},
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrTenantNotFound
	}
	return nil
}
