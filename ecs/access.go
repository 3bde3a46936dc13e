package ecs

import (
	"fmt"
	"reflect"
)

// Read, Write, Res, and ResMut are the access qualifiers a query or system
// is declared over. They carry no data — each is a phantom-typed marker
// used only as a type argument to ForEach*/AddSystem* — and exist so the
// scheduler can derive read/write access sets without the caller spelling
// them out by hand. isWrite also governs the reference a callback or
// Get on a View actually receives for the slot: Read/Res hand back a pointer to
// a private copy, Write/ResMut hand back the real store or resource
// pointer, so a system declared Read can't silently mutate shared state
// through its parameter.
//
// Go methods cannot introduce new type parameters, so there is no way to
// express a single generic "AddComponent" on a World value; the same
// restriction means these qualifiers cannot carry a compile-time-checked
// association with the callback parameter type. Instead ForEach*/AddSystem*
// take the qualifier and the callback's component type as separate type
// parameters and verify at call time (once, not per entity) that they
// agree — the fail-fast fallback for a check Go's type system can't make
// at compile time.
type (
	Read[T any]   struct{}
	Write[T any]  struct{}
	Res[T any]    struct{}
	ResMut[T any] struct{}
)

// qualKind is the runtime-inspectable shape of an access qualifier: which
// Go type it refers to, whether that type is a resource or a component, and
// whether the declared access is mutable.
type qualKind struct {
	elem       reflect.Type
	isResource bool
	isWrite    bool
}

// accessQualifier is the sealed marker every qualifier type implements.
// Sealing it (unexported method) prevents user types from pretending to be
// a qualifier and bypassing the fail-fast checks in ForEach*/AddSystem*.
type accessQualifier interface {
	describe() qualKind
}

func (Read[T]) describe() qualKind   { return qualKind{elem: typeOf[T](), isResource: false, isWrite: false} }
func (Write[T]) describe() qualKind  { return qualKind{elem: typeOf[T](), isResource: false, isWrite: true} }
func (Res[T]) describe() qualKind    { return qualKind{elem: typeOf[T](), isResource: true, isWrite: false} }
func (ResMut[T]) describe() qualKind { return qualKind{elem: typeOf[T](), isResource: true, isWrite: true} }

// describeQualifier inspects Q's zero value. Every accessQualifier
// implementation is a zero-size struct, so constructing one is free.
func describeQualifier[Q accessQualifier]() qualKind {
	var q Q
	return q.describe()
}

// requireElem panics with a UsageError if the qualifier's declared element
// type doesn't match T — the one check Go's type system can't do for us at
// the ForEach2[Read[Position], Write[Velocity]](..., func(..., *Velocity,
// *Position)) call site.
func requireElem[T any](k qualKind, slot int) {
	if got := typeOf[T](); got != k.elem {
		panic(newUsageError(fmt.Sprintf(
			"query slot %d: qualifier declares %s but callback parameter type is %s",
			slot, k.elem, got,
		)))
	}
}
