// Package workerpool provides the worker-pool primitive the parallel
// scheduler dispatches batch tasks onto, referenced only through an
// enqueue(task) contract that any work-stealing or fixed-size thread pool
// satisfies. Pool bounds concurrency with golang.org/x/sync/semaphore
// rather than a hand-rolled channel-of-tickets pool.
package workerpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Pool dispatches tasks onto goroutines, never running more than its
// configured capacity concurrently. It has no queue of its own — Enqueue
// blocks until a slot is free (or ctx is cancelled) before spawning.
type Pool struct {
	sem *semaphore.Weighted
	cap int64
}

// New creates a Pool with room for capacity concurrent tasks. A capacity of
// 0 or less defaults to GOMAXPROCS, matching the scheduler's "one task per
// available core" baseline expectation.
func New(capacity int) *Pool {
	if capacity <= 0 {
		capacity = runtime.GOMAXPROCS(0)
	}
	return &Pool{sem: semaphore.NewWeighted(int64(capacity)), cap: int64(capacity)}
}

// Capacity returns the maximum number of tasks this pool runs concurrently.
func (p *Pool) Capacity() int {
	return int(p.cap)
}

// Enqueue blocks until a slot is available, then runs task on a new
// goroutine. It returns once that goroutine is launched, not once task has
// finished —
// callers that need completion must signal it themselves (the scheduler
// does this with a sync.WaitGroup per batch).
func (p *Pool) Enqueue(ctx context.Context, task func()) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	go func() {
		defer p.sem.Release(1)
		task()
	}()
	return nil
}
