package tenant

import "go.mongodb.org/mongo-driver/v2/bson"

// idRepresentations returns every persisted form a canonical id may take:
// the raw string plus the typed ObjectID when the string is valid hex.
// Old writers stored whichever representation they had in hand.
func idRepresentations(id string) []any {
	values := []any{id}
	if oid, err := bson.ObjectIDFromHex(id); err == nil {
		values = append(values, oid)
	}
	return values
}

// MatchFilter builds the reconciliation predicate for locating a tenant
// account: an OR across the primary key and every historical alias field,
// each in both raw-string and typed-id form.
func MatchFilter(id string) bson.M {
	fields := append([]string{"_id"}, IDFieldAliases...)
	return orFilter(fields, id)
}

// OwnershipFilter builds the predicate for records owned by a tenant
// (flyers, products, ...). Same alias reconciliation, minus the primary
// key, since owned records keep their own _id.
func OwnershipFilter(id string) bson.M {
	return orFilter(IDFieldAliases, id)
}

func orFilter(fields []string, id string) bson.M {
	values := idRepresentations(id)
	clauses := make(bson.A, 0, len(fields)*len(values))
	for _, field := range fields {
		for _, value := range values {
			clauses = append(clauses, bson.M{field: value})
		}
	}
	return bson.M{"$or": clauses}
}
