package system_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/excaliburHisSheath/ld34-entry/internal/component"
	"github.com/excaliburHisSheath/ld34-entry/internal/config"
	"github.com/excaliburHisSheath/ld34-entry/internal/defs"
	"github.com/excaliburHisSheath/ld34-entry/internal/engine"
	"github.com/excaliburHisSheath/ld34-entry/internal/event"
	"github.com/excaliburHisSheath/ld34-entry/internal/types"
	"github.com/excaliburHisSheath/ld34-entry/pkg/grid"
)

// scriptedInput feeds canned mouse state to systems under test.
type scriptedInput struct {
	dx, dy  float64
	pressed map[int]bool
}

func (s *scriptedInput) MouseDelta() (float64, float64) {
	return s.dx, s.dy
}

func (s *scriptedInput) MouseButtonPressed(button int) bool {
	return s.pressed[button]
}

// fixture is a minimal session: a scene with loaded models, the gameplay
// stores, and a base on the origin cell.
type fixture struct {
	scene      *engine.Scene
	input      *scriptedInput
	game       *engine.Singleton[component.GameData]
	units      *engine.Store[component.PlayerUnit]
	enemies    *engine.Store[component.Enemy]
	bullets    *engine.Store[component.Bullet]
	dispatcher *event.Dispatcher
	base       types.EntityID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	defs.UseBuiltins()

	input := &scriptedInput{pressed: make(map[int]bool)}
	scene := engine.NewScene(input, engine.NopDebugDraw{})
	require.NoError(t, scene.Resources.LoadResourceFile(config.BaseModelFile))
	require.NoError(t, scene.Resources.LoadResourceFile(config.BulletModelFile))

	f := &fixture{
		scene:      scene,
		input:      input,
		game:       engine.NewSingleton("game", component.NewGameData()),
		units:      engine.NewStore[component.PlayerUnit]("units"),
		enemies:    engine.NewStore[component.Enemy]("enemies"),
		bullets:    engine.NewStore[component.Bullet]("bullets"),
		dispatcher: event.NewDispatcher(),
	}
	scene.RegisterManager("game", f.game)
	scene.RegisterManager("units", f.units)
	scene.RegisterManager("enemies", f.enemies)
	scene.RegisterManager("bullets", f.bullets)

	base, err := scene.InstantiateModel("cube")
	require.NoError(t, err)
	f.base = base

	transforms := scene.Transforms.BorrowMut()
	transforms.MustGet(base).SetPosition(grid.Pos{}.CellCenter())
	transforms.Release()

	units := f.units.BorrowMut()
	units.Assign(base, component.NewBase(1))
	units.Release()

	gameMut := f.game.BorrowMut()
	gameMut.Value().Grid[grid.Pos{}] = base
	gameMut.Release()

	scene.Colliders.Assign(base, engine.Collider{Radius: config.BaseColliderRadius})

	return f
}

// spawnEnemyAt drops an enemy directly into the world.
func (f *fixture) spawnEnemyAt(t *testing.T, pos grid.Vec3) types.EntityID {
	t.Helper()
	entity, err := f.scene.InstantiateModel("sphere")
	require.NoError(t, err)

	transforms := f.scene.Transforms.BorrowMut()
	transforms.MustGet(entity).SetPosition(pos)
	transforms.Release()

	enemies := f.enemies.BorrowMut()
	enemies.Assign(entity, component.Enemy{})
	enemies.Release()

	f.scene.Colliders.Assign(entity, engine.Collider{Radius: config.EnemyColliderRadius})
	return entity
}

func (f *fixture) resourceCount() int {
	return f.game.Get().ResourceCount
}

func (f *fixture) gridEntry(pos grid.Pos) (types.EntityID, bool) {
	id, ok := f.game.Get().Grid[pos]
	return id, ok
}

// recorder collects dispatched events.
type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(e event.Event) {
	r.events = append(r.events, e)
}
