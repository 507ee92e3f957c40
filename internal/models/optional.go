package models

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Optional represents a JSON field whose absence, explicit null, and value
// are three distinct states. Set reports whether the key appeared in the
// payload at all; Valid reports whether it carried a non-null value.
// This lets partial-update handlers tell "leave the column alone" apart
// from "clear the column".
type Optional[T any] struct {
	Value T
	Set   bool
	Valid bool
}

// NewOptional returns a present, non-null Optional holding v.
func NewOptional[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true, Valid: true}
}

// NullOptional returns a present Optional carrying an explicit null.
func NullOptional[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// so Set is always true here; fields left absent keep the zero Optional.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		var zero T
		o.Value = zero
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON renders an explicit null for absent or null Optionals.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}
