// internal/app/game.go
package app

import (
	"fmt"

	"github.com/excaliburHisSheath/ld34-entry/internal/component"
	"github.com/excaliburHisSheath/ld34-entry/internal/config"
	"github.com/excaliburHisSheath/ld34-entry/internal/engine"
	"github.com/excaliburHisSheath/ld34-entry/internal/event"
	"github.com/excaliburHisSheath/ld34-entry/internal/system"
	"github.com/excaliburHisSheath/ld34-entry/internal/types"
	"github.com/excaliburHisSheath/ld34-entry/internal/utils"
	"github.com/excaliburHisSheath/ld34-entry/pkg/grid"
)

// Names the gameplay managers register under. Reload looks them up by the
// same names to rebind prior session state.
const (
	gameManagerName   = "game"
	unitManagerName   = "units"
	enemyManagerName  = "enemies"
	bulletManagerName = "bullets"
	gridScrubberName  = "grid_scrubber"
)

// Managers bundles every gameplay component manager for one session.
type Managers struct {
	Game    *engine.Singleton[component.GameData]
	Units   *engine.Store[component.PlayerUnit]
	Enemies *engine.Store[component.Enemy]
	Bullets *engine.Store[component.Bullet]
}

// NewManagers builds managers holding session defaults.
func NewManagers() *Managers {
	return &Managers{
		Game:    engine.NewSingleton(gameManagerName, component.NewGameData()),
		Units:   engine.NewStore[component.PlayerUnit](unitManagerName),
		Enemies: engine.NewStore[component.Enemy](enemyManagerName),
		Bullets: engine.NewStore[component.Bullet](bulletManagerName),
	}
}

// Register attaches the managers to the scene so entity destruction
// reaches them and a later reload can find them.
func (m *Managers) Register(scene *engine.Scene) {
	scene.RegisterManager(gameManagerName, m.Game)
	scene.RegisterManager(unitManagerName, m.Units)
	scene.RegisterManager(enemyManagerName, m.Enemies)
	scene.RegisterManager(bulletManagerName, m.Bullets)
	scene.RegisterManager(gridScrubberName, &gridScrubber{game: m.Game})
}

// ManagersFrom recovers previously registered managers from a scene.
func ManagersFrom(scene *engine.Scene) (*Managers, bool) {
	game, ok := scene.GetManager(gameManagerName)
	if !ok {
		return nil, false
	}
	units, ok := scene.GetManager(unitManagerName)
	if !ok {
		return nil, false
	}
	enemies, ok := scene.GetManager(enemyManagerName)
	if !ok {
		return nil, false
	}
	bullets, ok := scene.GetManager(bulletManagerName)
	if !ok {
		return nil, false
	}

	m := &Managers{}
	if m.Game, ok = game.(*engine.Singleton[component.GameData]); !ok {
		return nil, false
	}
	if m.Units, ok = units.(*engine.Store[component.PlayerUnit]); !ok {
		return nil, false
	}
	if m.Enemies, ok = enemies.(*engine.Store[component.Enemy]); !ok {
		return nil, false
	}
	if m.Bullets, ok = bullets.(*engine.Store[component.Bullet]); !ok {
		return nil, false
	}
	return m, true
}

// gridScrubber drops grid cells pointing at a destroyed entity so the
// spatial index never holds dangling references.
type gridScrubber struct {
	game *engine.Singleton[component.GameData]
}

func (g *gridScrubber) RemoveEntity(id types.EntityID) {
	mut := g.game.BorrowMut()
	data := mut.Value()
	for cell, occupant := range data.Grid {
		if occupant == id {
			delete(data.Grid, cell)
		}
	}
	mut.Release()
}

// Init is the first-load lifecycle hook: it loads model resources,
// registers managers, systems and callbacks, and builds the opening scene.
func Init(e *engine.Engine, rng *utils.PRNGService, dispatcher *event.Dispatcher) error {
	scene := e.Scene()

	for _, file := range []string{config.BaseModelFile, config.BulletModelFile} {
		if err := scene.Resources.LoadResourceFile(file); err != nil {
			return fmt.Errorf("init: %w", err)
		}
	}

	mgrs := NewManagers()
	mgrs.Register(scene)
	registerSystems(e, mgrs, dispatcher)
	registerCallbacks(scene, mgrs, rng, dispatcher)

	return sceneSetup(scene, mgrs, rng, dispatcher)
}

// Reload is the hotload lifecycle hook. Function pointers do not survive a
// reload, so systems and named callbacks are re-registered every time,
// unconditionally; manager state is carried over from the previous session
// when present and rebuilt from defaults when not.
func Reload(old, e *engine.Engine, rng *utils.PRNGService, dispatcher *event.Dispatcher) {
	scene := e.Scene()

	mgrs, ok := ManagersFrom(old.Scene())
	if !ok {
		mgrs = NewManagers()
	}
	mgrs.Register(scene)

	registerSystems(e, mgrs, dispatcher)
	registerCallbacks(scene, mgrs, rng, dispatcher)
}

func registerSystems(e *engine.Engine, mgrs *Managers, dispatcher *event.Dispatcher) {
	managerUpdate := system.NewManagerUpdateSystem(mgrs.Game, mgrs.Units, dispatcher)
	enemyUpdate := system.NewEnemyUpdateSystem(mgrs.Enemies)
	bullets := system.NewBulletSystem(mgrs.Bullets, mgrs.Enemies, dispatcher)

	e.RegisterSystem(managerUpdate.Update)
	e.RegisterSystem(enemyUpdate.Update)
	e.RegisterSystem(bullets.Update)
}

func registerCallbacks(scene *engine.Scene, mgrs *Managers, rng *utils.PRNGService, dispatcher *event.Dispatcher) {
	spawn := system.NewSpawnSystem(mgrs.Game, mgrs.Enemies, rng, dispatcher)
	fire := system.NewFireSystem(mgrs.Units, mgrs.Enemies, mgrs.Bullets, system.NewNearestEnemy(mgrs.Enemies))

	scene.Alarms.RegisterCallback(system.SpawnEnemyCallback, spawn.SpawnEnemy)
	scene.Alarms.RegisterCallback(system.FireTurretCallback, fire.FireTurret)
	scene.Colliders.RegisterCallback(system.EnemyCollisionCallback, spawn.HandleEnemyCollision)
	scene.Colliders.RegisterCallback(system.BulletCollisionCallback, fire.HandleBulletCollision)
}

// sceneSetup builds the opening scene: a point light, the chase camera,
// the base on cell (0,0), and the first spawn alarm if the field starts
// understocked.
func sceneSetup(scene *engine.Scene, mgrs *Managers, rng *utils.PRNGService, dispatcher *event.Dispatcher) error {
	// Light.
	light := scene.CreateEntity()
	{
		transforms := scene.Transforms.BorrowMut()
		t := engine.NewTransform()
		t.SetPosition(grid.Vec3{Z: config.LightHeight})
		transforms.Assign(light, t)
		transforms.Release()

		lights := scene.Lights.BorrowMut()
		lights.Assign(light, engine.Light{})
		lights.Release()
	}

	// Camera.
	camera := scene.CreateEntity()
	{
		transforms := scene.Transforms.BorrowMut()
		t := engine.NewTransform()
		t.SetPosition(grid.Vec3{Z: config.CameraBaseOffset})
		t.LookAt(grid.Vec3{}, grid.Vec3{Y: 1})
		transforms.Assign(camera, t)
		transforms.Release()

		cameras := scene.Cameras.BorrowMut()
		cameras.Assign(camera, engine.Camera{})
		cameras.Release()
	}

	// Main base on the origin cell.
	base, err := scene.InstantiateModel("cube")
	if err != nil {
		return fmt.Errorf("scene setup: %w", err)
	}
	{
		gameMut := mgrs.Game.BorrowMut()
		gameMut.Value().Grid[grid.Pos{}] = base
		gameMut.Release()

		units := mgrs.Units.BorrowMut()
		units.Assign(base, component.NewBase(1))
		units.Release()

		transforms := scene.Transforms.BorrowMut()
		t := transforms.MustGet(base)
		t.SetPosition(grid.Pos{}.CellCenter())
		t.SetUniformScale(1 * grid.CellSize * config.BaseScalePerLevel)
		transforms.Release()

		scene.Colliders.Assign(base, engine.Collider{Radius: config.BaseColliderRadius})
	}

	// Kick the spawn chain if the session starts below the enemy floor.
	spawn := system.NewSpawnSystem(mgrs.Game, mgrs.Enemies, rng, dispatcher)
	spawn.Kickoff(scene, base)

	return nil
}
