package ecs

import (
	"fmt"
	"reflect"
)

// View is the handle a query callback receives alongside the driving
// Entity. It scopes opportunistic lookups (Get) to the component types the
// originating query actually declared, and honors each type's declared
// mutability the same way the callback's own parameters do: a type
// declared Read comes back as a pointer to a private copy, a type declared
// Write comes back as the real store pointer.
type View struct {
	w        *World
	declared map[reflect.Type]qualKind
}

func newView(w *World, declared ...qualKind) View {
	set := make(map[reflect.Type]qualKind, len(declared))
	for _, k := range declared {
		set[k.elem] = k
	}
	return View{w: w, declared: set}
}

// Get fetches T for entity e, restricted to a T the current query declared
// (as either a Read or a Write slot). Calling it with an undeclared T is a
// programming error and panics with a *UsageError — one of the checks Go's
// type system can't make at the call site.
func Get[T any](v View, e Entity) (*T, bool) {
	t := typeOf[T]()
	k, declared := v.declared[t]
	if !declared {
		panic(newUsageError(fmt.Sprintf("view: component %s was not declared by this query", t)))
	}
	s := lookupStore[T](v.w)
	if s == nil {
		return nil, false
	}
	ptr, ok := s.get(e)
	if !ok {
		return nil, false
	}
	return refFor(k, ptr), true
}
