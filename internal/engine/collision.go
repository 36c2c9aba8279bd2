// internal/engine/collision.go
package engine

import (
	"log"

	"github.com/excaliburHisSheath/ld34-entry/internal/types"
)

// CollisionFunc handles a collision event for self against every entity it
// overlapped this step. Runs with no store borrows held.
type CollisionFunc func(scene *Scene, self types.EntityID, others []types.EntityID)

// Collider is a sphere hull centered on the entity's transform.
type Collider struct {
	Radius float64
}

// ColliderManager owns collision hulls and per-entity callbacks. Like
// alarms, callbacks bind by name so they can be re-registered after a hot
// reload without touching collider state.
type ColliderManager struct {
	hulls     *Store[Collider]
	bindings  map[types.EntityID]string
	callbacks map[string]CollisionFunc
}

func NewColliderManager() *ColliderManager {
	return &ColliderManager{
		hulls:     NewStore[Collider]("colliders"),
		bindings:  make(map[types.EntityID]string),
		callbacks: make(map[string]CollisionFunc),
	}
}

// Assign attaches a sphere hull to the entity.
func (m *ColliderManager) Assign(entity types.EntityID, hull Collider) {
	view := m.hulls.BorrowMut()
	view.Assign(entity, hull)
	view.Release()
}

// AssignCallback binds the named callback to the entity's collisions.
func (m *ColliderManager) AssignCallback(entity types.EntityID, callback string) {
	m.bindings[entity] = callback
}

// RegisterCallback binds a name to a function, replacing any previous
// binding.
func (m *ColliderManager) RegisterCallback(name string, fn CollisionFunc) {
	m.callbacks[name] = fn
}

// ClearCallbacks drops all function bindings across a reload boundary.
// Entity bindings and hulls are state and survive.
func (m *ColliderManager) ClearCallbacks() {
	m.callbacks = make(map[string]CollisionFunc)
}

// RemoveEntity drops the entity's hull and callback binding.
func (m *ColliderManager) RemoveEntity(id types.EntityID) {
	m.hulls.RemoveEntity(id)
	delete(m.bindings, id)
}

type colliderEntry struct {
	id     types.EntityID
	pos    [3]float64
	radius float64
}

// Step runs sphere-sphere overlap tests and delivers one collision event
// per bound entity that overlapped anything, strictly one callback at a
// time.
func (m *ColliderManager) Step(scene *Scene) {
	entries := make([]colliderEntry, 0, m.hulls.Len())
	{
		hulls := m.hulls.Borrow()
		transforms := scene.Transforms.Borrow()
		hulls.Each(func(id types.EntityID, hull Collider) {
			t, ok := transforms.Get(id)
			if !ok {
				return
			}
			entries = append(entries, colliderEntry{
				id:     id,
				pos:    [3]float64{t.Position.X, t.Position.Y, t.Position.Z},
				radius: hull.Radius,
			})
		})
		transforms.Release()
		hulls.Release()
	}

	overlaps := make(map[types.EntityID][]types.EntityID)
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			dx := a.pos[0] - b.pos[0]
			dy := a.pos[1] - b.pos[1]
			dz := a.pos[2] - b.pos[2]
			r := a.radius + b.radius
			if dx*dx+dy*dy+dz*dz <= r*r {
				overlaps[a.id] = append(overlaps[a.id], b.id)
				overlaps[b.id] = append(overlaps[b.id], a.id)
			}
		}
	}

	// Deliver in collider insertion order so event order is stable.
	for _, entry := range entries {
		others, ok := overlaps[entry.id]
		if !ok {
			continue
		}
		name, bound := m.bindings[entry.id]
		if !bound {
			continue
		}
		if !scene.Alive(entry.id) {
			// Destroyed by an earlier callback this step.
			continue
		}
		live := others[:0]
		for _, other := range others {
			if scene.Alive(other) {
				live = append(live, other)
			}
		}
		if len(live) == 0 {
			continue
		}
		fn, ok := m.callbacks[name]
		if !ok {
			log.Printf("collision callback %q is not registered", name)
			continue
		}
		fn(scene, entry.id, live)
	}
}
