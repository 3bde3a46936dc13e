package ecs

import (
	"fmt"

	"github.com/voxent/ecsgo/internal/bitset"
)

// ScheduleID names a Schedule within a single world.
type ScheduleID uint64

// Schedule is a set of system ids. Membership is idempotent — adding an
// already-member id is a no-op — but per the Open Question recorded in
// DESIGN.md we also keep insertion order so RunSchedule has a documented,
// stable serial order instead of relying on unordered-set iteration.
type Schedule struct {
	id     ScheduleID
	order  []SystemID
	member map[SystemID]struct{}
}

func newSchedule(id ScheduleID) *Schedule {
	return &Schedule{id: id, member: make(map[SystemID]struct{})}
}

func (s *Schedule) add(id SystemID) {
	if _, ok := s.member[id]; ok {
		return
	}
	s.member[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Schedule) remove(id SystemID) {
	if _, ok := s.member[id]; !ok {
		return
	}
	delete(s.member, id)
	for i, sid := range s.order {
		if sid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// NewSchedule allocates a fresh, empty Schedule on w.
func NewSchedule(w *World) ScheduleID {
	id := w.nextScheduleID
	w.nextScheduleID++
	w.schedules[id] = newSchedule(id)
	return id
}

func (w *World) mustSchedule(id ScheduleID) *Schedule {
	s, ok := w.schedules[id]
	if !ok {
		panic(newUsageError(fmt.Sprintf("schedule %d does not exist", id)))
	}
	return s
}

// systemRecord is the world-owned entry pairing a system's wrapped
// callback with its declared access sets (cRead, cWrite, rRead, rWrite).
// run invokes the wrapped ForEach over the system's declared query; it
// never returns an error — faults are captured by runGuarded at the call
// site in scheduler.go.
type systemRecord struct {
	id     SystemID
	run    func()
	cRead  *bitset.AccessSet
	cWrite *bitset.AccessSet
	rRead  *bitset.AccessSet
	rWrite *bitset.AccessSet
}

func buildAccessSets(w *World, kinds []qualKind) (cRead, cWrite, rRead, rWrite *bitset.AccessSet) {
	cRead, cWrite, rRead, rWrite = &bitset.AccessSet{}, &bitset.AccessSet{}, &bitset.AccessSet{}, &bitset.AccessSet{}
	for _, k := range kinds {
		if k.isResource {
			id, _ := w.registry.resourceID(k.elem)
			if k.isWrite {
				rWrite.Set(id)
			} else {
				rRead.Set(id)
			}
			continue
		}
		id, _ := w.registry.componentID(k.elem)
		if k.isWrite {
			cWrite.Set(id)
		} else {
			cRead.Set(id)
		}
	}
	return
}

func (w *World) registerSystem(sched ScheduleID, kinds []qualKind, run func()) SystemID {
	cRead, cWrite, rRead, rWrite := buildAccessSets(w, kinds)
	id := w.registry.allocateSystemID()
	w.growSystems(int(id) + 1)
	w.systems[id] = &systemRecord{id: id, run: run, cRead: cRead, cWrite: cWrite, rRead: rRead, rWrite: rWrite}
	w.mustSchedule(sched).add(id)
	return id
}

// ensureSlot materializes T's store or resource slot eagerly, at
// registration time, on the orchestrating goroutine — so that by the time
// RunScheduleParallel dispatches any batch, every store a registered
// system touches already exists and later lookupStore/lookupResource
// calls from worker goroutines are pure reads. This sidesteps the need for
// a separate "warm stores before dispatch" pass.
func ensureSlot[T any](w *World, k qualKind) {
	if k.isResource {
		resourceOf[T](w)
	} else {
		storeOf[T](w)
	}
}

// AddSystem1 registers fn against a single query slot and appends the
// resulting system id to sched.
func AddSystem1[Q1 accessQualifier, T1 any](w *World, sched ScheduleID, fn func(View, Entity, *T1)) SystemID {
	k1 := describeQualifier[Q1]()
	requireElem[T1](k1, 0)
	ensureSlot[T1](w, k1)
	return w.registerSystem(sched, []qualKind{k1}, func() { ForEach1[Q1, T1](w, fn) })
}

// AddSystem2 registers fn against two query slots.
func AddSystem2[Q1, Q2 accessQualifier, T1, T2 any](w *World, sched ScheduleID, fn func(View, Entity, *T1, *T2)) SystemID {
	k1, k2 := describeQualifier[Q1](), describeQualifier[Q2]()
	requireElem[T1](k1, 0)
	requireElem[T2](k2, 1)
	ensureSlot[T1](w, k1)
	ensureSlot[T2](w, k2)
	return w.registerSystem(sched, []qualKind{k1, k2}, func() { ForEach2[Q1, Q2, T1, T2](w, fn) })
}

// AddSystem3 registers fn against three query slots.
func AddSystem3[Q1, Q2, Q3 accessQualifier, T1, T2, T3 any](w *World, sched ScheduleID, fn func(View, Entity, *T1, *T2, *T3)) SystemID {
	k1, k2, k3 := describeQualifier[Q1](), describeQualifier[Q2](), describeQualifier[Q3]()
	requireElem[T1](k1, 0)
	requireElem[T2](k2, 1)
	requireElem[T3](k3, 2)
	ensureSlot[T1](w, k1)
	ensureSlot[T2](w, k2)
	ensureSlot[T3](w, k3)
	return w.registerSystem(sched, []qualKind{k1, k2, k3}, func() { ForEach3[Q1, Q2, Q3, T1, T2, T3](w, fn) })
}

// AddSystem4 registers fn against four query slots.
func AddSystem4[Q1, Q2, Q3, Q4 accessQualifier, T1, T2, T3, T4 any](w *World, sched ScheduleID, fn func(View, Entity, *T1, *T2, *T3, *T4)) SystemID {
	k1, k2, k3, k4 := describeQualifier[Q1](), describeQualifier[Q2](), describeQualifier[Q3](), describeQualifier[Q4]()
	requireElem[T1](k1, 0)
	requireElem[T2](k2, 1)
	requireElem[T3](k3, 2)
	requireElem[T4](k4, 3)
	ensureSlot[T1](w, k1)
	ensureSlot[T2](w, k2)
	ensureSlot[T3](w, k3)
	ensureSlot[T4](w, k4)
	return w.registerSystem(sched, []qualKind{k1, k2, k3, k4}, func() { ForEach4[Q1, Q2, Q3, Q4, T1, T2, T3, T4](w, fn) })
}

// RemoveSystem drops id from sched's membership, silently doing nothing if
// id was never a member of that schedule. The underlying system record
// stays in the world (it may belong to other schedules).
func RemoveSystem(w *World, sched ScheduleID, id SystemID) {
	s, ok := w.schedules[sched]
	if !ok {
		return
	}
	s.remove(id)
}
