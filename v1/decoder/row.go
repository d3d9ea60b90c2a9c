package decoder

import (
	"bytes"
	"encoding/json"
)

// Row is a generic decoded row: field names in column order mapped to values.
// Values are the cell text, or the result of a bound transform.
type Row struct {
	keys   []string
	values map[string]any
}

// NewRow returns an empty row with room for n fields.
func NewRow(n int) *Row {
	return &Row{keys: make([]string, 0, n), values: make(map[string]any, n)}
}

// Set stores v under key. A key keeps the position of its first Set.
func (r *Row) Set(key string, v any) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r *Row) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in column order.
func (r *Row) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of fields.
func (r *Row) Len() int {
	return len(r.keys)
}

// Map copies the row into a plain map.
func (r *Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the row as an object with keys in column order.
func (r *Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
