// internal/engine/store.go
package engine

import (
	"fmt"

	"github.com/kamstrup/intmap"

	"github.com/excaliburHisSheath/ld34-entry/internal/types"
)

// Manager is anything holding per-entity state that must be dropped when
// the entity is destroyed.
type Manager interface {
	RemoveEntity(id types.EntityID)
}

// Store is a per-component-kind table keyed by entity. Access goes through
// Borrow (shared, read-only) or BorrowMut (exclusive) views. Execution is
// single-threaded, so overlapping exclusive access is a programming error,
// not a race; the store panics on it instead of corrupting state.
type Store[T any] struct {
	name  string
	items *intmap.Map[uint64, *T]
	ids   []types.EntityID // insertion order, for deterministic iteration

	shared    int
	exclusive bool
}

// NewStore creates an empty store. The name only shows up in borrow panics.
func NewStore[T any](name string) *Store[T] {
	return &Store[T]{
		name:  name,
		items: intmap.New[uint64, *T](64),
	}
}

// Borrow takes shared access. Any number of shared views may coexist, but
// not with an exclusive one.
func (s *Store[T]) Borrow() *View[T] {
	if s.exclusive {
		panic(fmt.Sprintf("store %s: shared borrow while exclusively borrowed", s.name))
	}
	s.shared++
	return &View[T]{store: s}
}

// BorrowMut takes exclusive access.
func (s *Store[T]) BorrowMut() *MutView[T] {
	if s.exclusive || s.shared > 0 {
		panic(fmt.Sprintf("store %s: exclusive borrow while already borrowed", s.name))
	}
	s.exclusive = true
	return &MutView[T]{store: s}
}

// Len reports the number of entities carrying this component.
func (s *Store[T]) Len() int {
	return s.items.Len()
}

// RemoveEntity drops the entity's component, if any. Called by the scene
// during entity destruction; all views must have been released by then.
func (s *Store[T]) RemoveEntity(id types.EntityID) {
	if s.exclusive || s.shared > 0 {
		panic(fmt.Sprintf("store %s: entity destroyed while store is borrowed", s.name))
	}
	s.remove(id)
}

func (s *Store[T]) remove(id types.EntityID) {
	if _, ok := s.items.Get(uint64(id)); !ok {
		return
	}
	s.items.Del(uint64(id))
	for i, eid := range s.ids {
		if eid == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
}

// View is a shared, read-only window into a store. Components come out by
// value so holders cannot mutate through it.
type View[T any] struct {
	store    *Store[T]
	released bool
}

func (v *View[T]) Get(id types.EntityID) (T, bool) {
	ptr, ok := v.store.items.Get(uint64(id))
	if !ok {
		var zero T
		return zero, false
	}
	return *ptr, true
}

func (v *View[T]) Has(id types.EntityID) bool {
	_, ok := v.store.items.Get(uint64(id))
	return ok
}

func (v *View[T]) Len() int {
	return v.store.items.Len()
}

// Each visits every (entity, component) pair in insertion order.
func (v *View[T]) Each(fn func(id types.EntityID, c T)) {
	for _, id := range v.store.ids {
		if ptr, ok := v.store.items.Get(uint64(id)); ok {
			fn(id, *ptr)
		}
	}
}

// Release gives the borrow back. Idempotent.
func (v *View[T]) Release() {
	if v.released {
		return
	}
	v.released = true
	v.store.shared--
}

// MutView is an exclusive window into a store.
type MutView[T any] struct {
	store    *Store[T]
	released bool
}

func (v *MutView[T]) Get(id types.EntityID) (*T, bool) {
	ptr, ok := v.store.items.Get(uint64(id))
	return ptr, ok
}

// MustGet returns the entity's component or panics. Use only where absence
// is an invariant violation, e.g. a grid cell pointing at an entity with no
// unit.
func (v *MutView[T]) MustGet(id types.EntityID) *T {
	ptr, ok := v.store.items.Get(uint64(id))
	if !ok {
		panic(fmt.Sprintf("store %s: entity %d has no component", v.store.name, id))
	}
	return ptr
}

// Assign sets the entity's component, replacing any previous value.
func (v *MutView[T]) Assign(id types.EntityID, c T) {
	if _, ok := v.store.items.Get(uint64(id)); !ok {
		v.store.ids = append(v.store.ids, id)
	}
	v.store.items.Put(uint64(id), &c)
}

func (v *MutView[T]) Remove(id types.EntityID) {
	v.store.remove(id)
}

func (v *MutView[T]) Has(id types.EntityID) bool {
	_, ok := v.store.items.Get(uint64(id))
	return ok
}

func (v *MutView[T]) Len() int {
	return v.store.items.Len()
}

// Each visits every (entity, component) pair in insertion order. Mutating
// the visited component through the pointer is fine; adding or removing
// entries during iteration is not.
func (v *MutView[T]) Each(fn func(id types.EntityID, c *T)) {
	for _, id := range v.store.ids {
		if ptr, ok := v.store.items.Get(uint64(id)); ok {
			fn(id, ptr)
		}
	}
}

// Release gives the borrow back. Idempotent.
func (v *MutView[T]) Release() {
	if v.released {
		return
	}
	v.released = true
	v.store.exclusive = false
}
