// Package optx provides a present/absent wrapper for patch inputs, so that
// "not supplied" is distinguishable from a zero value.
package optx

import "encoding/json"

// Optional holds a value that may or may not have been supplied.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSet reports whether a value was supplied.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// UnmarshalJSON marks the field as present whenever the key appears in the
// document, including an explicit null (which leaves the zero value).
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var v T
	if string(data) != "null" {
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
	}
	o.value = v
	o.set = true
	return nil
}
