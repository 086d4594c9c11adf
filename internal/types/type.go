// Package types implements the type descriptors that tags refer to.
// It provides the descriptor model, category classification, identity
// and layout, without any dependency on how descriptors are obtained.
package types

// Type is the interface implemented by all type descriptors.
type Type interface {
	// Underlying returns the underlying type.
	// For template instances with an expansion, returns the expansion.
	// For all other types, returns the receiver.
	Underlying() Type

	// String returns a human-readable representation of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
