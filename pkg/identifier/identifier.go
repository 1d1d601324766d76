// Package identifier classifies record identifiers into the two formats the
// durable store accepts: legacy v4 UUID strings and store-generated ObjectIDs.
package identifier

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kind is the detected format of an identifier.
type Kind int

const (
	Unrecognized Kind = iota
	LegacyUUID
	DurableID
)

const legacyUUIDLength = 36

func (k Kind) String() string {
	switch k {
	case LegacyUUID:
		return "legacy_uuid"
	case DurableID:
		return "durable_id"
	default:
		return "unrecognized"
	}
}

// Classify reports the format of id. Hex digits are matched case-insensitively.
func Classify(id string) Kind {
	if isLegacyUUID(id) {
		return LegacyUUID
	}
	if primitive.IsValidObjectID(id) {
		return DurableID
	}
	return Unrecognized
}

// Valid is true for any identifier the durable store can be queried with.
func Valid(id string) bool {
	return Classify(id) != Unrecognized
}

// uuid.Parse also accepts the braced and urn: forms, so the canonical
// 36 character layout is enforced before parsing.
func isLegacyUUID(id string) bool {
	if len(id) != legacyUUIDLength {
		return false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}
