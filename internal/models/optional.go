package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state update field: absent, explicit null, or a value.
// encoding/json never calls UnmarshalJSON for keys missing from the payload,
// so Present stays false for fields the caller did not send. An explicit
// JSON null sets Null, which clears nullable columns and is rejected on
// columns that cannot be cleared.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Some wraps a value as a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}

// Null returns a present Optional carrying an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true, Null: true}
}
