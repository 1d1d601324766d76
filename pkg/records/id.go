package records

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/artvault/artvault/pkg/identifier"
)

// ID is a record identifier in its canonical string form. Durable ids are
// stored as BSON ObjectIDs, legacy UUIDs as plain strings.
type ID string

// NewID returns a fresh durable id.
func NewID() ID {
	return ID(primitive.NewObjectID().Hex())
}

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}

// MarshalBSONValue implements bson.ValueMarshaler.
func (id ID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if identifier.Classify(string(id)) == identifier.DurableID {
		oid, err := primitive.ObjectIDFromHex(string(id))
		if err != nil {
			return 0, nil, err
		}
		return bson.MarshalValue(oid)
	}
	return bson.MarshalValue(string(id))
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		*id = ID(raw.ObjectID().Hex())
	case bsontype.String:
		*id = ID(raw.StringValue())
	case bsontype.Null, bsontype.Undefined:
		*id = ""
	default:
		return fmt.Errorf("cannot decode %s into a record ID", t)
	}
	return nil
}

// IDs converts a list of identifiers to their string form.
func IDs(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
