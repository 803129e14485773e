package survey

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Flag marks the primary (true) or secondary (false) side of a role.
type Flag bool

// String returns "true" or "false"; it is used in ids and class names.
func (f Flag) String() string { return strconv.FormatBool(bool(f)) }

// Side returns -1 for primary and +1 for secondary, the direction in which
// the side is drawn away from the role axis.
func (f Flag) Side() float64 {
	if f {
		return -1
	}
	return 1
}

// ParseFlag accepts "true" or "false" in any letter case.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid primary flag %q", s)
}

// MarshalJSON encodes the flag as a JSON bool.
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// UnmarshalJSON accepts a JSON bool or a "True"/"False" string.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("primary flag: %s is neither bool nor string", data)
	}
	v, err := ParseFlag(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MarshalBSONValue encodes the flag as a BSON boolean.
func (f Flag) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bsontype.Boolean, bsoncore.AppendBoolean(nil, bool(f)), nil
}

// UnmarshalBSONValue accepts a BSON boolean or string.
func (f *Flag) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bsoncore.Value{Type: t, Data: data}
	if b, ok := v.BooleanOK(); ok {
		*f = Flag(b)
		return nil
	}
	if s, ok := v.StringValueOK(); ok {
		parsed, err := ParseFlag(s)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	}
	return fmt.Errorf("primary flag: unsupported BSON type %s", t)
}
