package core

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-glaze/glaze/pkg/errors"
)

// Snapshot is an immutable state record: field names mapped to
// JSON-serializable values. Reads never observe in-progress mutation;
// transitions build a Draft and commit it as a fresh Snapshot.
type Snapshot struct {
	values map[string]any
}

// SnapshotOf builds a snapshot from a plain map, normalizing values to
// the JSON kinds state records may hold. Decoded hydration payloads pass
// through here.
func SnapshotOf(m map[string]any) (Snapshot, error) {
	const op = "core.SnapshotOf"
	if len(m) == 0 {
		return Snapshot{}, nil
	}
	values := make(map[string]any, len(m))
	for k, v := range m {
		nv, err := normalizeValue(v)
		if err != nil {
			return Snapshot{}, errors.New(op, errors.KindStateAccess,
				fmt.Errorf("field %q: %w", k, err))
		}
		values[k] = nv
	}
	return Snapshot{values: values}, nil
}

// Get returns the value stored under key.
func (s Snapshot) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Int returns the field as an int, coercing the numeric kinds a JSON
// round trip produces. Missing or non-numeric fields yield 0.
func (s Snapshot) Int(key string) int {
	switch v := s.values[key].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Float returns the field as a float64, or 0 when absent or non-numeric.
func (s Snapshot) Float(key string) float64 {
	switch v := s.values[key].(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

// String returns the field as a string, or "" when absent or non-string.
func (s Snapshot) String(key string) string {
	v, _ := s.values[key].(string)
	return v
}

// Bool returns the field as a bool, or false when absent or non-bool.
func (s Snapshot) Bool(key string) bool {
	v, _ := s.values[key].(bool)
	return v
}

// Len returns the number of fields.
func (s Snapshot) Len() int { return len(s.values) }

// Keys returns the field names in sorted order.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a snapshot with over's fields laid over s.
// Hydration uses this to overlay a serialized record on seeded defaults.
func (s Snapshot) Merge(over Snapshot) Snapshot {
	if over.Len() == 0 {
		return s
	}
	values := make(map[string]any, len(s.values)+len(over.values))
	for k, v := range s.values {
		values[k] = v
	}
	for k, v := range over.values {
		values[k] = v
	}
	return Snapshot{values: values}
}

// MarshalJSON encodes the record as a JSON object with sorted keys.
// An empty record encodes as {}.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.values)
}

// draft copies the record into a mutable draft.
func (s Snapshot) draft() *Draft {
	values := make(map[string]any, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}
	return &Draft{values: values}
}

// Draft is the mutable working copy a state transition edits. Committing
// produces a fresh Snapshot; the one the draft came from is untouched.
type Draft struct {
	values map[string]any
}

// Set stores a value under key. Values are restricted to the JSON kinds:
// nil, bool, string, integers, floats, []any, and map[string]any.
// Anything else panics, since a record that cannot serialize cannot
// freeze or hydrate.
func (d *Draft) Set(key string, value any) {
	nv, err := normalizeValue(value)
	if err != nil {
		panic(errors.New("core.Draft.Set", errors.KindStateAccess,
			fmt.Errorf("field %q: %w", key, err)))
	}
	d.values[key] = nv
}

// Get returns the current draft value under key.
func (d *Draft) Get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Int reads a numeric draft field as an int, like Snapshot.Int.
func (d *Draft) Int(key string) int {
	switch v := d.values[key].(type) {
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Delete removes a field from the draft.
func (d *Draft) Delete(key string) {
	delete(d.values, key)
}

// commit seals the draft into an immutable snapshot.
func (d *Draft) commit() Snapshot {
	values := d.values
	d.values = nil
	return Snapshot{values: values}
}

// normalizeValue maps Go values onto the canonical state kinds: int64 for
// integers, float64 for floats, bool, string, nil, []any, map[string]any.
// Canonical kinds keep repeated freezes byte-identical across a
// serialize/decode cycle.
func normalizeValue(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, int64, float64:
		return t, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case float32:
		return float64(t), nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			ne, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			ne, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[k] = ne
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value of type %T is not a state kind", v)
	}
}
