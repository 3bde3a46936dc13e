package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleMembershipIsIdempotent(t *testing.T) {
	w := NewWorld(WorldConfig{})
	sched := NewSchedule(w)
	id := AddSystem1[Write[compA], compA](w, sched, func(v View, e Entity, a *compA) {})

	s := w.schedules[sched]
	s.add(id)
	s.add(id)

	assert.Len(t, s.order, 1)
	assert.Contains(t, s.member, id)
}

func TestRemoveSystemAbsentIsNoOp(t *testing.T) {
	w := NewWorld(WorldConfig{})
	sched := NewSchedule(w)
	assert.NotPanics(t, func() { RemoveSystem(w, sched, SystemID(999)) })
}

func TestRunScheduleRunsEverySystemOnce(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e := CreateEntity(w)
	AddComponent(w, e, compA{n: 0})

	sched := NewSchedule(w)
	AddSystem1[Write[compA], compA](w, sched, func(v View, ent Entity, a *compA) {
		a.n++
	})

	require.NoError(t, RunSchedule(w, sched))
	got, _ := GetComponent[compA](w, e)
	assert.Equal(t, 1, got.n)
}

func TestRunScheduleUnknownIDReturnsError(t *testing.T) {
	w := NewWorld(WorldConfig{})
	err := RunSchedule(w, ScheduleID(123))
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestRunScheduleCapturesFirstFaultAndFinishesBatch(t *testing.T) {
	w := NewWorld(WorldConfig{})
	e := CreateEntity(w)
	AddComponent(w, e, compA{n: 0})
	AddComponent(w, e, compB{n: 0})

	sched := NewSchedule(w)
	AddSystem1[Write[compA], compA](w, sched, func(v View, ent Entity, a *compA) {
		panic("boom")
	})
	ran := false
	AddSystem1[Write[compB], compB](w, sched, func(v View, ent Entity, b *compB) {
		ran = true
	})

	err := RunSchedule(w, sched)
	require.Error(t, err)
	var sysErr *SystemError
	require.ErrorAs(t, err, &sysErr)
	assert.Equal(t, "boom", sysErr.Panic)
	assert.True(t, ran, "remaining systems must still run after a fault")
}

// TestParallelBatchPlanning: S1 writes A, S2 writes B, S3 reads A and
// writes C. S1 and S2 share no access and must land in batch 1; S3
// conflicts with S1 on A and must land in batch 2.
func TestParallelBatchPlanning(t *testing.T) {
	w := NewWorld(WorldConfig{})
	sched := NewSchedule(w)

	s1 := AddSystem1[Write[compA], compA](w, sched, func(v View, e Entity, a *compA) {})
	s2 := AddSystem1[Write[compB], compB](w, sched, func(v View, e Entity, b *compB) {})
	s3 := AddSystem2[Read[compA], Write[compC], compA, compC](w, sched, func(v View, e Entity, a *compA, c *compC) {})

	_, systems, err := w.resolveSchedule(sched)
	require.NoError(t, err)
	batches := planBatches(systems)

	require.Len(t, batches, 2)
	batch1IDs := []SystemID{batches[0][0].id, batches[0][1].id}
	assert.ElementsMatch(t, []SystemID{s1, s2}, batch1IDs)
	require.Len(t, batches[1], 1)
	assert.Equal(t, s3, batches[1][0].id)
}

// TestSerialParallelEquivalence: running the same conflict-free schedule
// serially and in parallel from identical initial state must produce
// bit-equal results.
func TestSerialParallelEquivalence(t *testing.T) {
	type pos struct{ x, y float64 }
	type vel struct{ x, y float64 }

	const n = 10000
	build := func() (*World, ScheduleID, []Entity) {
		w := NewWorld(WorldConfig{})
		entities := make([]Entity, n)
		for i := 0; i < n; i++ {
			e := CreateEntity(w)
			entities[i] = e
			AddComponent(w, e, pos{x: float64(i), y: float64(-i)})
			AddComponent(w, e, vel{x: 1, y: 2})
		}
		sched := NewSchedule(w)
		AddSystem2[Write[pos], Read[vel], pos, vel](w, sched, func(v View, e Entity, p *pos, vl *vel) {
			p.x += vl.x
			p.y += vl.y
		})
		return w, sched, entities
	}

	wSerial, schedSerial, entitiesSerial := build()
	require.NoError(t, RunSchedule(wSerial, schedSerial))

	wParallel, schedParallel, entitiesParallel := build()
	require.NoError(t, RunScheduleParallel(wParallel, schedParallel))

	for i := range entitiesSerial {
		ps, _ := GetComponent[pos](wSerial, entitiesSerial[i])
		pp, _ := GetComponent[pos](wParallel, entitiesParallel[i])
		require.Equal(t, *ps, *pp)
	}
}

func TestRunScheduleParallelUnknownIDReturnsError(t *testing.T) {
	w := NewWorld(WorldConfig{})
	err := RunScheduleParallel(w, ScheduleID(42))
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
