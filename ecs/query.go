package ecs

// declaredKinds collects the component qualifiers across a query (dropping
// resource slots), for scoping the View a ForEach* call hands to its
// callback. Resources aren't included: Get on a View only ever resolves
// components — resources are fetched once per call via the fixed pointer
// already passed into the callback. Keeping the full qualKind (not just the
// type) lets Get honor the same Read-vs-Write reference rule as the
// callback's own parameters.
func declaredKinds(kinds ...qualKind) []qualKind {
	out := make([]qualKind, 0, len(kinds))
	for _, k := range kinds {
		if !k.isResource {
			out = append(out, k)
		}
	}
	return out
}

// refFor returns the pointer a callback or view lookup receives for ptr,
// honoring the qualifier's declared mutability: a Write/ResMut slot gets
// ptr itself, so mutations land in the real store or resource; a Read/Res
// slot gets a pointer to a private copy, so mutation through it has no
// observable effect on shared state. This is what makes the scheduler's
// conflict-free-batch guarantee actually hold at runtime instead of being
// advisory.
func refFor[T any](k qualKind, ptr *T) *T {
	if k.isWrite {
		return ptr
	}
	cp := *ptr
	return &cp
}

// driveValue fetches the driving slot's component for e and applies refFor,
// so the driving slot gets the same copy-vs-alias treatment as every other
// slot in the query.
func driveValue[T any](k qualKind, s *componentStore[T], e Entity) *T {
	v, _ := s.get(e)
	return refFor(k, v)
}

// pickDriver picks the smallest non-negative length in lens, returning its
// index and value. A negative length marks a resource slot (not entity
// indexed, never eligible to drive). Ties go to the earliest index: the
// scan only replaces the incumbent on a strictly smaller length, so the
// first slot seen at the minimum size wins.
func pickDriver(lens []int) (driver, best int) {
	driver, best = -1, -1
	for i, l := range lens {
		if l < 0 {
			continue
		}
		if driver == -1 || l < best {
			driver, best = i, l
		}
	}
	return
}

// ForEach1 iterates every entity holding the component declared by Q1,
// invoking fn once per entity. If T1's store has never been used, this
// yields zero callbacks rather than faulting.
func ForEach1[Q1 accessQualifier, T1 any](w *World, fn func(View, Entity, *T1)) {
	k1 := describeQualifier[Q1]()
	requireElem[T1](k1, 0)
	if k1.isResource {
		panic(newUsageError("for_each: query must contain at least one component slot"))
	}

	s1 := lookupStore[T1](w)
	if s1 == nil {
		return
	}

	view := newView(w, declaredKinds(k1)...)
	for _, e := range s1.denseEntities {
		fn(view, e, driveValue(k1, s1, e))
	}
}

// ForEach2 iterates the smaller of T1's and T2's stores, testing membership
// in the other, with Res/ResMut slots resolved once and passed fixed into
// every callback invocation.
func ForEach2[Q1, Q2 accessQualifier, T1, T2 any](w *World, fn func(View, Entity, *T1, *T2)) {
	k1, k2 := describeQualifier[Q1](), describeQualifier[Q2]()
	requireElem[T1](k1, 0)
	requireElem[T2](k2, 1)
	if k1.isResource && k2.isResource {
		panic(newUsageError("for_each: query must contain at least one component slot"))
	}

	var s1 *componentStore[T1]
	var s2 *componentStore[T2]
	var r1 *resourceSlot[T1]
	var r2 *resourceSlot[T2]

	if k1.isResource {
		if r1 = lookupResource[T1](w); r1 == nil || !r1.set {
			return
		}
	} else {
		s1 = lookupStore[T1](w)
	}
	if k2.isResource {
		if r2 = lookupResource[T2](w); r2 == nil || !r2.set {
			return
		}
	} else {
		s2 = lookupStore[T2](w)
	}

	lens := make([]int, 2)
	lens[0], lens[1] = -1, -1
	if !k1.isResource {
		if s1 != nil {
			lens[0] = s1.len()
		} else {
			lens[0] = 0
		}
	}
	if !k2.isResource {
		if s2 != nil {
			lens[1] = s2.len()
		} else {
			lens[1] = 0
		}
	}
	driver, best := pickDriver(lens)
	if best == 0 {
		return
	}

	view := newView(w, declaredKinds(k1, k2)...)

	if driver == 0 {
		for _, e := range s1.denseEntities {
			v1 := driveValue(k1, s1, e)
			v2, ok := resolveSlot(k2, r2, s2, e)
			if !ok {
				continue
			}
			fn(view, e, v1, v2)
		}
		return
	}

	for _, e := range s2.denseEntities {
		v2 := driveValue(k2, s2, e)
		v1, ok := resolveSlot(k1, r1, s1, e)
		if !ok {
			continue
		}
		fn(view, e, v1, v2)
	}
}

// resolveSlot fetches a non-driving query slot's value for e: the fixed
// resource value if the slot is a resource that was actually inserted, or a
// presence-tested component lookup otherwise. The bool result is false iff
// the slot has nothing to offer — a component the entity lacks, or a
// resource that was never InsertResource'd — telling the caller to skip e
// the same way an empty store does. The returned pointer honors the
// qualifier's declared mutability via refFor.
func resolveSlot[T any](k qualKind, r *resourceSlot[T], s *componentStore[T], e Entity) (*T, bool) {
	if k.isResource {
		if r == nil || !r.set {
			return nil, false
		}
		return refFor(k, &r.value), true
	}
	if s == nil {
		return nil, false
	}
	v, ok := s.get(e)
	if !ok {
		return nil, false
	}
	return refFor(k, v), true
}

// ForEach3 iterates the smallest of three query slots, testing membership
// in the other two.
func ForEach3[Q1, Q2, Q3 accessQualifier, T1, T2, T3 any](w *World, fn func(View, Entity, *T1, *T2, *T3)) {
	k1, k2, k3 := describeQualifier[Q1](), describeQualifier[Q2](), describeQualifier[Q3]()
	requireElem[T1](k1, 0)
	requireElem[T2](k2, 1)
	requireElem[T3](k3, 2)
	if k1.isResource && k2.isResource && k3.isResource {
		panic(newUsageError("for_each: query must contain at least one component slot"))
	}

	var s1 *componentStore[T1]
	var s2 *componentStore[T2]
	var s3 *componentStore[T3]
	var r1 *resourceSlot[T1]
	var r2 *resourceSlot[T2]
	var r3 *resourceSlot[T3]

	if k1.isResource {
		if r1 = lookupResource[T1](w); r1 == nil || !r1.set {
			return
		}
	} else {
		s1 = lookupStore[T1](w)
	}
	if k2.isResource {
		if r2 = lookupResource[T2](w); r2 == nil || !r2.set {
			return
		}
	} else {
		s2 = lookupStore[T2](w)
	}
	if k3.isResource {
		if r3 = lookupResource[T3](w); r3 == nil || !r3.set {
			return
		}
	} else {
		s3 = lookupStore[T3](w)
	}

	lens := make([]int, 3)
	for i := range lens {
		lens[i] = -1
	}
	if !k1.isResource {
		if s1 != nil {
			lens[0] = s1.len()
		} else {
			lens[0] = 0
		}
	}
	if !k2.isResource {
		if s2 != nil {
			lens[1] = s2.len()
		} else {
			lens[1] = 0
		}
	}
	if !k3.isResource {
		if s3 != nil {
			lens[2] = s3.len()
		} else {
			lens[2] = 0
		}
	}
	driver, best := pickDriver(lens)
	if best == 0 {
		return
	}

	view := newView(w, declaredKinds(k1, k2, k3)...)

	switch driver {
	case 0:
		for _, e := range s1.denseEntities {
			v1 := driveValue(k1, s1, e)
			v2, ok2 := resolveSlot(k2, r2, s2, e)
			if !ok2 {
				continue
			}
			v3, ok3 := resolveSlot(k3, r3, s3, e)
			if !ok3 {
				continue
			}
			fn(view, e, v1, v2, v3)
		}
	case 1:
		for _, e := range s2.denseEntities {
			v2 := driveValue(k2, s2, e)
			v1, ok1 := resolveSlot(k1, r1, s1, e)
			if !ok1 {
				continue
			}
			v3, ok3 := resolveSlot(k3, r3, s3, e)
			if !ok3 {
				continue
			}
			fn(view, e, v1, v2, v3)
		}
	default:
		for _, e := range s3.denseEntities {
			v3 := driveValue(k3, s3, e)
			v1, ok1 := resolveSlot(k1, r1, s1, e)
			if !ok1 {
				continue
			}
			v2, ok2 := resolveSlot(k2, r2, s2, e)
			if !ok2 {
				continue
			}
			fn(view, e, v1, v2, v3)
		}
	}
}

// ForEach4 iterates the smallest of four query slots, testing membership in
// the other three. This is the iteration engine's arity ceiling: capping
// generic arity by hand here avoids reaching for reflection on the hot
// path.
func ForEach4[Q1, Q2, Q3, Q4 accessQualifier, T1, T2, T3, T4 any](w *World, fn func(View, Entity, *T1, *T2, *T3, *T4)) {
	k1, k2, k3, k4 := describeQualifier[Q1](), describeQualifier[Q2](), describeQualifier[Q3](), describeQualifier[Q4]()
	requireElem[T1](k1, 0)
	requireElem[T2](k2, 1)
	requireElem[T3](k3, 2)
	requireElem[T4](k4, 3)
	if k1.isResource && k2.isResource && k3.isResource && k4.isResource {
		panic(newUsageError("for_each: query must contain at least one component slot"))
	}

	var s1 *componentStore[T1]
	var s2 *componentStore[T2]
	var s3 *componentStore[T3]
	var s4 *componentStore[T4]
	var r1 *resourceSlot[T1]
	var r2 *resourceSlot[T2]
	var r3 *resourceSlot[T3]
	var r4 *resourceSlot[T4]

	if k1.isResource {
		if r1 = lookupResource[T1](w); r1 == nil || !r1.set {
			return
		}
	} else {
		s1 = lookupStore[T1](w)
	}
	if k2.isResource {
		if r2 = lookupResource[T2](w); r2 == nil || !r2.set {
			return
		}
	} else {
		s2 = lookupStore[T2](w)
	}
	if k3.isResource {
		if r3 = lookupResource[T3](w); r3 == nil || !r3.set {
			return
		}
	} else {
		s3 = lookupStore[T3](w)
	}
	if k4.isResource {
		if r4 = lookupResource[T4](w); r4 == nil || !r4.set {
			return
		}
	} else {
		s4 = lookupStore[T4](w)
	}

	lens := make([]int, 4)
	for i := range lens {
		lens[i] = -1
	}
	if !k1.isResource {
		if s1 != nil {
			lens[0] = s1.len()
		} else {
			lens[0] = 0
		}
	}
	if !k2.isResource {
		if s2 != nil {
			lens[1] = s2.len()
		} else {
			lens[1] = 0
		}
	}
	if !k3.isResource {
		if s3 != nil {
			lens[2] = s3.len()
		} else {
			lens[2] = 0
		}
	}
	if !k4.isResource {
		if s4 != nil {
			lens[3] = s4.len()
		} else {
			lens[3] = 0
		}
	}
	driver, best := pickDriver(lens)
	if best == 0 {
		return
	}

	view := newView(w, declaredKinds(k1, k2, k3, k4)...)

	switch driver {
	case 0:
		for _, e := range s1.denseEntities {
			v1 := driveValue(k1, s1, e)
			v2, ok := resolveSlot(k2, r2, s2, e)
			if !ok {
				continue
			}
			v3, ok := resolveSlot(k3, r3, s3, e)
			if !ok {
				continue
			}
			v4, ok := resolveSlot(k4, r4, s4, e)
			if !ok {
				continue
			}
			fn(view, e, v1, v2, v3, v4)
		}
	case 1:
		for _, e := range s2.denseEntities {
			v2 := driveValue(k2, s2, e)
			v1, ok := resolveSlot(k1, r1, s1, e)
			if !ok {
				continue
			}
			v3, ok := resolveSlot(k3, r3, s3, e)
			if !ok {
				continue
			}
			v4, ok := resolveSlot(k4, r4, s4, e)
			if !ok {
				continue
			}
			fn(view, e, v1, v2, v3, v4)
		}
	case 2:
		for _, e := range s3.denseEntities {
			v3 := driveValue(k3, s3, e)
			v1, ok := resolveSlot(k1, r1, s1, e)
			if !ok {
				continue
			}
			v2, ok := resolveSlot(k2, r2, s2, e)
			if !ok {
				continue
			}
			v4, ok := resolveSlot(k4, r4, s4, e)
			if !ok {
				continue
			}
			fn(view, e, v1, v2, v3, v4)
		}
	default:
		for _, e := range s4.denseEntities {
			v4 := driveValue(k4, s4, e)
			v1, ok := resolveSlot(k1, r1, s1, e)
			if !ok {
				continue
			}
			v2, ok := resolveSlot(k2, r2, s2, e)
			if !ok {
				continue
			}
			v3, ok := resolveSlot(k3, r3, s3, e)
			if !ok {
				continue
			}
			fn(view, e, v1, v2, v3, v4)
		}
	}
}
