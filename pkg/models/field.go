// Package models contains domain models for dreamlog.
package models

// Field is one optional assignment in an update patch.
// The zero value is an absent field; Set marks it present, and for pointer
// types a present nil value writes NULL.
type Field[V any] struct {
	Value V
	Set   bool
}

// Set returns a present field holding v.
func Set[V any](v V) Field[V] {
	return Field[V]{Value: v, Set: true}
}

// Null returns a present field that clears a nullable column.
func Null[V any]() Field[*V] {
	return Field[*V]{Set: true}
}

// Ptr returns a pointer to v. Handy for nullable inputs.
func Ptr[V any](v V) *V {
	return &v
}
