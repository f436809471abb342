package astrocat

import (
	"context"
	"fmt"
	"iter"
	"weak"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/astrocat/arraymap"
	"github.com/hupe1980/astrocat/core"
)

// Registry maps identifiers to live objects.
//
// It holds weak references only: objects own their registration and must
// deregister themselves (Object.Release). An object collected while still
// registered resolves to nil and is purged by Sweep.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	index      arraymap.Map[core.ID, weak.Pointer[Object]]
	next       int64 // next auto candidate; below floor means exhausted
	floor      core.ID
	categories CategoryRegistry
	logger     *Logger
	metrics    MetricsCollector
}

// Stats is a point-in-time summary of a Registry.
type Stats struct {
	// Entries is the number of occupied identifiers, collected objects included.
	Entries int
	// Nodes is the number of allocated trie levels.
	Nodes int
	// AutoIssued is the number of identifiers the auto counter has moved past,
	// skipped occupied ones included.
	AutoIssued int64
	// AutoRemaining is the number the counter can still hand out at most.
	AutoRemaining int64
}

// New creates an empty Registry.
func New(optFns ...Option) (*Registry, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	if o.autoFloor > core.MaxAutoID {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFloor, o.autoFloor)
	}

	index, err := arraymap.NewLayered[core.ID](weak.Pointer[Object]{}, o.levels...)
	if err != nil {
		return nil, err
	}

	return &Registry{
		index:      index,
		next:       int64(core.MaxAutoID),
		floor:      o.autoFloor,
		categories: o.categories,
		logger:     o.logger,
		metrics:    o.metricsCollector,
	}, nil
}

// NewObject returns an unregistered object bound to r.
func (r *Registry) NewObject(owner any) *Object {
	o := &Object{}
	o.Init(r, owner)
	return o
}

// Categories returns the configured category registry, or nil.
func (r *Registry) Categories() CategoryRegistry {
	return r.categories
}

// Find returns the object registered under id, or nil.
func (r *Registry) Find(id core.ID) *Object {
	if !id.Valid() {
		return nil
	}
	return r.index.Value(id).Value()
}

// Assign maps id to o, overwriting any previous mapping, and reports whether
// id was free. It does not touch the state of o or of a previous owner; use
// the Object methods to keep both sides consistent.
func (r *Registry) Assign(id core.ID, o *Object) bool {
	if !id.Valid() || o == nil {
		return false
	}
	fresh := r.index.Insert(id, weak.Make(o))
	r.metrics.RecordAssign(fresh)
	return fresh
}

// Release removes the mapping for id and reports whether one existed.
func (r *Registry) Release(id core.ID) bool {
	removed := r.index.Erase(id)
	r.metrics.RecordRelease(removed)
	return removed
}

// NextAutoID issues a fresh identifier from the auto range. The counter moves
// downward from core.MaxAutoID, skips identifiers that are occupied, and never
// issues a value twice. The caller still has to register the identifier.
func (r *Registry) NextAutoID() (core.ID, error) {
	for r.next >= int64(r.floor) {
		id := core.ID(r.next)
		r.next--
		if r.index.Has(id) {
			continue
		}
		r.metrics.RecordAutoIndex(nil)
		r.logger.LogAutoIndex(context.Background(), id, nil)
		return id, nil
	}

	r.metrics.RecordAutoIndex(ErrAutoIndexExhausted)
	r.logger.LogAutoIndex(context.Background(), core.InvalidID, ErrAutoIndexExhausted)
	return core.InvalidID, ErrAutoIndexExhausted
}

// checkExplicit rejects identifiers the auto counter has yet to issue.
func (r *Registry) checkExplicit(id core.ID) error {
	if id >= r.floor && id <= core.MaxAutoID && int64(id) <= r.next {
		return &ErrReserved{ID: id, Floor: r.floor}
	}
	return nil
}

func (r *Registry) evicted(id core.ID) {
	r.metrics.RecordEviction()
	r.logger.WithID(id).LogEviction(context.Background())
}

// Len is the number of occupied identifiers.
func (r *Registry) Len() int {
	return r.index.TotalUsed()
}

// All yields live registrations in ascending identifier order.
func (r *Registry) All() iter.Seq2[core.ID, *Object] {
	return func(yield func(core.ID, *Object) bool) {
		for id, wp := range r.index.All() {
			o := wp.Value()
			if o == nil {
				continue
			}
			if !yield(id, o) {
				return
			}
		}
	}
}

// IDs returns the set of identifiers with a live object.
func (r *Registry) IDs() *roaring.Bitmap {
	bm := roaring.New()
	for id := range r.All() {
		bm.Add(uint32(id))
	}
	return bm
}

// Sweep purges identifiers whose objects were garbage collected without
// deregistering and returns how many were purged. A non-zero result means an
// owner dropped an object without calling Release.
func (r *Registry) Sweep() int {
	var dead []core.ID
	for id, wp := range r.index.All() {
		if wp.Value() == nil {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		r.Release(id)
	}
	r.logger.LogSweep(context.Background(), dead)
	return len(dead)
}

// Stats returns a summary of the registry.
func (r *Registry) Stats() Stats {
	remaining := r.next - int64(r.floor) + 1
	if remaining < 0 {
		remaining = 0
	}
	return Stats{
		Entries:       r.index.TotalUsed(),
		Nodes:         r.index.Nodes(),
		AutoIssued:    int64(core.MaxAutoID) - r.next,
		AutoRemaining: remaining,
	}
}
