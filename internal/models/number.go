package models

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/ngmaloney/vessel-console/internal/coerce"
)

// Number is a numeric API field that may arrive as a JSON number, a numeric
// string (decimal columns) or null. Unreadable values decode to 0 but still
// count as present.
type Number struct {
	value float64
	set   bool
}

// NumberOf returns a present Number holding f.
func NumberOf(f float64) Number {
	return Number{value: coerce.Number(f), set: true}
}

// Float returns the value, 0 when absent.
func (n Number) Float() float64 {
	return n.value
}

// IsSet reports whether the field was present and not null.
func (n Number) IsSet() bool {
	return n.set
}

func (n Number) String() string {
	if !n.set {
		return "-"
	}
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*n = Number{}
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Number{value: coerce.Number(raw), set: true}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}
