// Package ecs provides an in-process Entity-Component-System runtime: a
// family of sparse/dense component stores, a typed query engine that drives
// iteration off the smallest matching store, and a conflict-graph scheduler
// that batches systems for data-race-free parallel execution.
//
// The package is not safe for concurrent use except where explicitly
// documented: entity creation, component mutation, resource mutation, and
// system/schedule registration are confined to a single orchestrating
// goroutine. Only RunScheduleParallel fans work out across goroutines, and
// it does so only for systems whose declared access sets are conflict-free
// within a batch.
package ecs
