package dto

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state JSON field for partial updates: a field can be
// absent (leave the stored value untouched), explicitly null (clear it), or
// set to a value. encoding/json never calls UnmarshalJSON for absent fields,
// so a zero Optional means absent.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Some builds a set Optional, mostly useful in tests.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null builds an explicitly-null Optional.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}
