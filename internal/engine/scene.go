// internal/engine/scene.go
package engine

import (
	"fmt"

	"github.com/excaliburHisSheath/ld34-entry/internal/types"
)

// Scene owns every entity and component store for one game session. It is
// host state: a hot reload rebuilds systems and callbacks around the same
// scene.
type Scene struct {
	nextID uint64
	alive  map[types.EntityID]struct{}

	Transforms *Store[Transform]
	Cameras    *Store[Camera]
	Lights     *Store[Light]
	Meshes     *Store[Mesh]

	Alarms    *AlarmTable
	Colliders *ColliderManager
	Resources *ResourceManager

	Input Input
	Debug DebugDraw

	managers map[string]Manager
}

func NewScene(input Input, debug DebugDraw) *Scene {
	if input == nil {
		input = NopInput{}
	}
	if debug == nil {
		debug = NopDebugDraw{}
	}
	return &Scene{
		nextID:     1,
		alive:      make(map[types.EntityID]struct{}),
		Transforms: NewStore[Transform]("transforms"),
		Cameras:    NewStore[Camera]("cameras"),
		Lights:     NewStore[Light]("lights"),
		Meshes:     NewStore[Mesh]("meshes"),
		Alarms:     NewAlarmTable(),
		Colliders:  NewColliderManager(),
		Resources:  NewResourceManager(),
		Input:      input,
		Debug:      debug,
		managers:   make(map[string]Manager),
	}
}

// CreateEntity allocates a fresh entity id.
func (s *Scene) CreateEntity() types.EntityID {
	id := types.EntityID(s.nextID)
	s.nextID++
	s.alive[id] = struct{}{}
	return id
}

// DestroyEntity removes the entity from every store, cancels its alarms
// and drops its colliders. Destroying a dead entity is a no-op. Must be
// called with no store borrows held.
func (s *Scene) DestroyEntity(id types.EntityID) {
	if _, ok := s.alive[id]; !ok {
		return
	}
	delete(s.alive, id)

	s.Transforms.RemoveEntity(id)
	s.Cameras.RemoveEntity(id)
	s.Lights.RemoveEntity(id)
	s.Meshes.RemoveEntity(id)
	s.Colliders.RemoveEntity(id)
	s.Alarms.CancelFor(id)

	for _, m := range s.managers {
		m.RemoveEntity(id)
	}
}

// Alive reports whether the entity exists.
func (s *Scene) Alive(id types.EntityID) bool {
	_, ok := s.alive[id]
	return ok
}

// RegisterManager attaches a gameplay component manager to the scene so
// entity destruction reaches it and reloads can find it again.
func (s *Scene) RegisterManager(name string, m Manager) {
	s.managers[name] = m
}

// GetManager returns a previously registered manager.
func (s *Scene) GetManager(name string) (Manager, bool) {
	m, ok := s.managers[name]
	return m, ok
}

// InstantiateModel creates an entity carrying a transform and a mesh that
// references the named model. The model must have been loaded.
func (s *Scene) InstantiateModel(name string) (types.EntityID, error) {
	if !s.Resources.Known(name) {
		return 0, fmt.Errorf("model %q has not been loaded", name)
	}
	id := s.CreateEntity()

	transforms := s.Transforms.BorrowMut()
	transforms.Assign(id, NewTransform())
	transforms.Release()

	meshes := s.Meshes.BorrowMut()
	meshes.Assign(id, Mesh{Model: name})
	meshes.Release()

	return id, nil
}
