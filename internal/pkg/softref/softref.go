// Package softref provides lazily bound references to shared data assets.
//
// A Ref is authored as an asset path. The asset registry binds the target
// after loading; engine code only ever calls Get and treats nil as "not
// loadable", falling back to whatever inline data it has.
package softref

import (
	"encoding/json"
)

// Ref points at an asset of type T by path
type Ref[T any] struct {
	Path  string
	value *T
}

// To returns a reference to path
func To[T any](path string) Ref[T] {
	return Ref[T]{Path: path}
}

// Of returns a reference already bound to v
func Of[T any](path string, v *T) Ref[T] {
	return Ref[T]{Path: path, value: v}
}

// IsSet reports whether a path was authored
func (r Ref[T]) IsSet() bool {
	return r.Path != ""
}

// IsBound reports whether the target has been loaded
func (r Ref[T]) IsBound() bool {
	return r.value != nil
}

// Get returns the bound target, or nil
func (r Ref[T]) Get() *T {
	return r.value
}

// Bind sets the loaded target
func (r *Ref[T]) Bind(v *T) {
	r.value = v
}

// MarshalJSON encodes the reference as its path
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Path)
}

// UnmarshalJSON decodes a path string
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Path)
}
