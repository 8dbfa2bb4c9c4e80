package common

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// EnumTable maps a closed enumeration to its canonical names. Index 0 is
// always the "unknown" member and index 1 the "other" member.
type EnumTable[T ~int32] struct {
	kind  string
	names []string
}

// NewEnumTable builds a table from names indexed by value.
func NewEnumTable[T ~int32](kind string, names ...string) EnumTable[T] {
	return EnumTable[T]{kind: kind, names: names}
}

// IsValid reports whether v is a member of the closed set.
func (e EnumTable[T]) IsValid(v T) bool {
	return v >= 0 && int(v) < len(e.names)
}

// Name returns the canonical name of v, or a numeric placeholder for values
// outside the set.
func (e EnumTable[T]) Name(v T) string {
	if e.IsValid(v) {
		return e.names[v]
	}
	return fmt.Sprintf("%s(%d)", e.kind, int32(v))
}

// Text returns the canonical name of v, or its decimal value for values
// outside the set so Parse can read it back.
func (e EnumTable[T]) Text(v T) string {
	if e.IsValid(v) {
		return e.names[v]
	}
	return strconv.FormatInt(int64(v), 10)
}

// Parse accepts a canonical name (case-insensitive) or a decimal value.
// Unknown names are an error; out-of-range numbers are accepted as-is so
// newer peers can round-trip values this build does not model.
func (e EnumTable[T]) Parse(s string) (T, error) {
	s = strings.TrimSpace(s)
	for i, n := range e.names {
		if strings.EqualFold(n, s) {
			return T(i), nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return T(n), nil
	}
	return 0, fmt.Errorf("unknown %s %q", e.kind, s)
}

// UnmarshalJSON decodes either a JSON string name or a JSON number.
func (e EnumTable[T]) UnmarshalJSON(data []byte, dst *T) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		v, err := e.Parse(name)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	var n int32
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%s must be a name or integer: %w", e.kind, err)
	}
	*dst = T(n)
	return nil
}
