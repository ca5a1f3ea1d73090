package tenant

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDFieldAliases is the single authoritative list of field names that may
// hold a tenant reference in persisted records. Schemas drifted over time
// (ownerId, userId, accountId) and old documents were never migrated, so
// every lookup predicate must OR across all of them. Call sites consume
// this list; they never re-derive it.
var IDFieldAliases = []string{"tenantId", "ownerId", "userId", "accountId"}

// NormalizeID converts a loosely-typed tenant identifier into its
// canonical string form. Callers arrive with strings, numeric ids from
// legacy integer keys, decoded JSON numbers, and typed uuid values.
// Returns ErrInvalidIdentifier for empty or unsupported inputs.
func NormalizeID(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		id := strings.TrimSpace(v)
		if id == "" {
			return "", ErrInvalidIdentifier
		}
		return id, nil
	case uuid.UUID:
		if v == uuid.Nil {
			return "", ErrInvalidIdentifier
		}
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		// JSON decoding yields float64 for numeric ids.
		if v != math.Trunc(v) {
			return "", fmt.Errorf("%w: non-integer numeric id %v", ErrInvalidIdentifier, v)
		}
		return strconv.FormatInt(int64(v), 10), nil
	case fmt.Stringer:
		id := strings.TrimSpace(v.String())
		if id == "" {
			return "", ErrInvalidIdentifier
		}
		return id, nil
	default:
		return "", fmt.Errorf("%w: unsupported identifier type %T", ErrInvalidIdentifier, raw)
	}
}
