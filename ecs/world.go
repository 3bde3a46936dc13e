package ecs

import "github.com/voxent/ecsgo/internal/workerpool"

// WorldConfig tunes a World's internal allocation and concurrency behavior.
// The zero value is valid and picks sane defaults.
type WorldConfig struct {
	// StoreCapacityHint preallocates each component store's dense/sparse
	// backing arrays. Zero means "grow from empty as usual."
	StoreCapacityHint int

	// WorkerPoolSize bounds how many systems RunScheduleParallel runs
	// concurrently within a batch. Zero or negative defaults to
	// runtime.GOMAXPROCS(0) (see internal/workerpool.New).
	WorkerPoolSize int
}

// World owns every store, every resource, the entity id generator, and the
// system/schedule tables. All CRUD operations are package-level generic
// functions rather than generic methods, because Go methods cannot
// introduce new type parameters; World itself stays a plain, non-generic
// struct.
type World struct {
	config WorldConfig

	nextEntity Entity
	registry   *typeRegistry

	stores    []any
	resources []any

	systems        []*systemRecord
	schedules      map[ScheduleID]*Schedule
	nextScheduleID ScheduleID

	pool *workerpool.Pool
}

// NewWorld constructs an empty World ready to accept entities, components,
// resources, and systems.
func NewWorld(cfg WorldConfig) *World {
	return &World{
		config:    cfg,
		registry:  newTypeRegistry(),
		schedules: make(map[ScheduleID]*Schedule),
		pool:      workerpool.New(cfg.WorkerPoolSize),
	}
}

func (w *World) growStores(n int) {
	if n <= len(w.stores) {
		return
	}
	grown := make([]any, n)
	copy(grown, w.stores)
	w.stores = grown
}

func (w *World) growResources(n int) {
	if n <= len(w.resources) {
		return
	}
	grown := make([]any, n)
	copy(grown, w.resources)
	w.resources = grown
}

func (w *World) growSystems(n int) {
	if n <= len(w.systems) {
		return
	}
	grown := make([]*systemRecord, n)
	copy(grown, w.systems)
	w.systems = grown
}

// CreateEntity allocates a fresh, never-before-seen Entity. Not safe to call
// from inside a parallel system — entity/component mutation is confined to
// the orchestrating goroutine.
func CreateEntity(w *World) Entity {
	return w.createEntity()
}

// AddComponent attaches value to e as its T, silently doing nothing if e
// already has one.
func AddComponent[T any](w *World, e Entity, value T) {
	storeOf[T](w).insert(e, value)
}

// RemoveComponent detaches e's T, silently doing nothing if e has none.
func RemoveComponent[T any](w *World, e Entity) {
	s := lookupStore[T](w)
	if s == nil {
		return
	}
	s.remove(e)
}

// GetComponent returns a pointer to e's T, or (nil, false) if e has none.
func GetComponent[T any](w *World, e Entity) (*T, bool) {
	s := lookupStore[T](w)
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

// HasComponent reports whether e currently has a T.
func HasComponent[T any](w *World, e Entity) bool {
	s := lookupStore[T](w)
	if s == nil {
		return false
	}
	return s.has(e)
}
