package service

import "encoding/json"

// Optional is a tri-state JSON field for partial updates: a field that is
// absent from the request body leaves Set false, an explicit null sets Set
// with a nil Value, and a concrete value sets both. This is what lets the
// update rules tell "leave unchanged" apart from "clear".
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only invoked for fields present in the body, so Set
// doubles as a presence flag.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON restores the wire shape; an unset field marshals as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// NewOptional wraps a concrete value
func NewOptional[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// NullOptional wraps an explicit null
func NullOptional[T any]() Optional[T] {
	return Optional[T]{Set: true}
}
