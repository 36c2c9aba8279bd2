// internal/engine/engine.go
package engine

// SystemFunc is one per-frame system pass. Systems run sequentially on a
// single goroutine and must not block.
type SystemFunc func(scene *Scene, delta float64)

// Engine drives a scene: registered systems every frame, then due alarms,
// then collision events. All three phases share one goroutine, so at most
// one system or callback touches the stores at any moment.
type Engine struct {
	scene   *Scene
	systems []SystemFunc
}

func New(input Input, debug DebugDraw) *Engine {
	return &Engine{
		scene: NewScene(input, debug),
	}
}

// Reload builds a fresh engine around the old engine's scene. Entities,
// components, pending alarms and collider bindings survive; systems and
// callback functions do not and must be re-registered by the game's reload
// hook.
func Reload(old *Engine) *Engine {
	scene := old.scene
	scene.Alarms.ClearCallbacks()
	scene.Colliders.ClearCallbacks()
	return &Engine{scene: scene}
}

func (e *Engine) Scene() *Scene {
	return e.scene
}

// RegisterSystem appends a system to the per-frame pass. Order of
// registration is order of execution.
func (e *Engine) RegisterSystem(fn SystemFunc) {
	e.systems = append(e.systems, fn)
}

// Update advances the game by delta seconds.
func (e *Engine) Update(delta float64) {
	for _, system := range e.systems {
		system(e.scene, delta)
	}
	e.scene.Alarms.Advance(e.scene, delta)
	e.scene.Colliders.Step(e.scene)
}
