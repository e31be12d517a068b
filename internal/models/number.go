package models

import (
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Number is a float64 that tolerates the loosely typed numerics in the
// dataset: JSON numbers, quoted strings like "10.00", or garbage. Anything
// that does not parse to a finite float becomes 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.TrimSpace(strings.Trim(s, `"`))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

func (n *Number) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeDouble:
		f := rv.Double()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			f = 0
		}
		*n = Number(f)
	case bson.TypeInt32:
		*n = Number(rv.Int32())
	case bson.TypeInt64:
		*n = Number(rv.Int64())
	case bson.TypeString:
		f, err := strconv.ParseFloat(rv.StringValue(), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			f = 0
		}
		*n = Number(f)
	default:
		*n = 0
	}
	return nil
}
