package ecs

import (
	"context"
	"sync"
)

// conflict is the scheduler's batching predicate: two reads of the same
// type never conflict; a write against any read or write of the same type
// does, over both the component and resource access-set pairs.
func conflict(a, b *systemRecord) bool {
	if a.cWrite.Intersects(b.cWrite) || a.cWrite.Intersects(b.cRead) || b.cWrite.Intersects(a.cRead) {
		return true
	}
	if a.rWrite.Intersects(b.rWrite) || a.rWrite.Intersects(b.rRead) || b.rWrite.Intersects(a.rRead) {
		return true
	}
	return false
}

// planBatches partitions order's systems into sequential batches using
// greedy first-fit: scan existing batches in order, drop the system into
// the first one with no conflicting member, else open a new batch.
func planBatches(systems []*systemRecord) [][]*systemRecord {
	var batches [][]*systemRecord
	for _, sys := range systems {
		placed := false
		for bi, batch := range batches {
			conflicts := false
			for _, other := range batch {
				if conflict(sys, other) {
					conflicts = true
					break
				}
			}
			if !conflicts {
				batches[bi] = append(batch, sys)
				placed = true
				break
			}
		}
		if !placed {
			batches = append(batches, []*systemRecord{sys})
		}
	}
	return batches
}

func (w *World) resolveSchedule(id ScheduleID) (*Schedule, []*systemRecord, error) {
	s, ok := w.schedules[id]
	if !ok {
		return nil, nil, ErrScheduleNotFound
	}
	systems := make([]*systemRecord, 0, len(s.order))
	for _, sid := range s.order {
		if int(sid) < len(w.systems) && w.systems[sid] != nil {
			systems = append(systems, w.systems[sid])
		}
	}
	return s, systems, nil
}

// RunSchedule executes sched's systems serially, in the schedule's
// insertion order (see the Open Question decision in DESIGN.md for why an
// insertion-ordered container was chosen). Returns the first captured
// *SystemError, if any; the remaining systems in the schedule still run to
// completion — a fault propagates to the caller, it doesn't abort the run.
func RunSchedule(w *World, sched ScheduleID) error {
	s, systems, err := w.resolveSchedule(sched)
	if err != nil {
		return err
	}

	var first *SystemError
	for _, sys := range systems {
		if e := runGuarded(s.id, sys.id, sys.run); e != nil && first == nil {
			first = e
		}
	}
	if first != nil {
		return first
	}
	return nil
}

// RunScheduleParallel plans conflict-free batches over sched's systems and
// runs each batch's members concurrently on the world's worker pool,
// waiting for every member to reach Done before starting the next batch —
// a strict happens-before between batches, so no two systems with
// conflicting access ever run concurrently. It returns once every system
// has executed exactly once.
func RunScheduleParallel(w *World, sched ScheduleID) error {
	s, systems, err := w.resolveSchedule(sched)
	if err != nil {
		return err
	}

	batches := planBatches(systems)
	log := withSchedule(s.id)
	log.Debug().Int("batches", len(batches)).Msg("planned parallel batches")

	ctx := context.Background()
	var first *SystemError
	var firstMu sync.Mutex

	for bi, batch := range batches {
		var wg sync.WaitGroup
		wg.Add(len(batch))
		for _, sys := range batch {
			sys := sys
			if err := w.pool.Enqueue(ctx, func() {
				defer wg.Done()
				if e := runGuarded(s.id, sys.id, sys.run); e != nil {
					firstMu.Lock()
					if first == nil {
						first = e
					}
					firstMu.Unlock()
				}
			}); err != nil {
				// Enqueue only fails if ctx is cancelled; context.Background()
				// never is, so this path is unreachable in practice. Still
				// release the WaitGroup slot so the batch can't deadlock.
				wg.Done()
			}
		}
		wg.Wait()
		log.Debug().Int("batch", bi).Int("size", len(batch)).Msg("batch complete")
	}

	if first != nil {
		return first
	}
	return nil
}
