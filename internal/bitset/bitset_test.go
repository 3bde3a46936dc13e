package bitset

import "testing"

func TestAccessSetSetTest(t *testing.T) {
	var a AccessSet
	if a.Any() {
		t.Fatal("zero value should be empty")
	}
	a.Set(3)
	if !a.Test(3) {
		t.Fatal("expected bit 3 set")
	}
	if a.Test(4) {
		t.Fatal("bit 4 should not be set")
	}
	if !a.Any() {
		t.Fatal("expected Any() true after Set")
	}
}

func TestAccessSetIntersects(t *testing.T) {
	var a, b AccessSet
	a.Set(1)
	b.Set(2)
	if a.Intersects(&b) {
		t.Fatal("disjoint sets should not intersect")
	}
	b.Set(1)
	if !a.Intersects(&b) {
		t.Fatal("sets sharing bit 1 should intersect")
	}
}
