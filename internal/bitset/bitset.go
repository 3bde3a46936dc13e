// Package bitset provides the dynamic bit-vector primitive the scheduler
// uses to track per-system component and resource access, referenced only
// through a "set, test, intersects, any" contract. AccessSet wraps
// github.com/RoaringBitmap/roaring/v2 behind exactly that contract rather
// than hand-rolling one.
package bitset

import "github.com/RoaringBitmap/roaring/v2"

// AccessSet is a growable set of small non-negative integers (type ids).
// The zero value is a usable empty set.
type AccessSet struct {
	bits roaring.Bitmap
}

// Set marks bit as present.
func (a *AccessSet) Set(bit int) {
	a.bits.Add(uint32(bit))
}

// Test reports whether bit is present.
func (a *AccessSet) Test(bit int) bool {
	return a.bits.Contains(uint32(bit))
}

// Any reports whether the set has any bits at all.
func (a *AccessSet) Any() bool {
	return !a.bits.IsEmpty()
}

// Intersects reports whether a and other share at least one set bit —
// the conflict predicate the scheduler's batching algorithm needs.
func (a *AccessSet) Intersects(other *AccessSet) bool {
	return a.bits.Intersects(&other.bits)
}
