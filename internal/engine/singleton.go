// internal/engine/singleton.go
package engine

import (
	"fmt"

	"github.com/excaliburHisSheath/ld34-entry/internal/types"
)

// Singleton holds one component instance not tied to any entity, with the
// same borrow discipline as Store. Use it for session-wide game state.
type Singleton[T any] struct {
	name  string
	value T

	exclusive bool
}

// NewSingleton creates a singleton holding the initial value.
func NewSingleton[T any](name string, initial T) *Singleton[T] {
	return &Singleton[T]{name: name, value: initial}
}

// Get reads the value by copy. Reading while an exclusive borrow is live
// is the same programming error as in Store.
func (s *Singleton[T]) Get() T {
	if s.exclusive {
		panic(fmt.Sprintf("singleton %s: read while exclusively borrowed", s.name))
	}
	return s.value
}

// BorrowMut takes exclusive access. Release through the returned view.
func (s *Singleton[T]) BorrowMut() *SingletonMut[T] {
	if s.exclusive {
		panic(fmt.Sprintf("singleton %s: exclusive borrow while already borrowed", s.name))
	}
	s.exclusive = true
	return &SingletonMut[T]{singleton: s}
}

// RemoveEntity satisfies Manager; singletons carry no per-entity state.
func (s *Singleton[T]) RemoveEntity(id types.EntityID) {}

// SingletonMut is the exclusive view on a singleton.
type SingletonMut[T any] struct {
	singleton *Singleton[T]
	released  bool
}

// Value returns the mutable instance.
func (m *SingletonMut[T]) Value() *T {
	return &m.singleton.value
}

// Release gives the borrow back. Idempotent.
func (m *SingletonMut[T]) Release() {
	if m.released {
		return
	}
	m.released = true
	m.singleton.exclusive = false
}
