// internal/system/manager_update.go
package system

import (
	"github.com/excaliburHisSheath/ld34-entry/internal/component"
	"github.com/excaliburHisSheath/ld34-entry/internal/config"
	"github.com/excaliburHisSheath/ld34-entry/internal/defs"
	"github.com/excaliburHisSheath/ld34-entry/internal/engine"
	"github.com/excaliburHisSheath/ld34-entry/internal/event"
	"github.com/excaliburHisSheath/ld34-entry/internal/types"
	"github.com/excaliburHisSheath/ld34-entry/pkg/grid"
)

// ManagerUpdateSystem turns raw input into cursor movement, cell selection,
// unit placement, unit upgrades and camera framing, once per frame.
type ManagerUpdateSystem struct {
	game       *engine.Singleton[component.GameData]
	units      *engine.Store[component.PlayerUnit]
	dispatcher *event.Dispatcher
}

func NewManagerUpdateSystem(
	game *engine.Singleton[component.GameData],
	units *engine.Store[component.PlayerUnit],
	dispatcher *event.Dispatcher,
) *ManagerUpdateSystem {
	return &ManagerUpdateSystem{
		game:       game,
		units:      units,
		dispatcher: dispatcher,
	}
}

func (s *ManagerUpdateSystem) Update(scene *engine.Scene, delta float64) {
	gameMut := s.game.BorrowMut()
	data := gameMut.Value()

	// Move the cursor and reselect the cell under it.
	dx, dy := scene.Input.MouseDelta()
	data.Cursor = data.Cursor.Add(grid.Vec3{
		X: dx * config.MouseSpeed,
		Y: -dy * config.MouseSpeed,
	})
	data.Selected = grid.FromWorld(data.Cursor)

	// Visualize the cursor and the selected cell.
	scene.Debug.Sphere(data.Cursor, config.CursorMarkerRadius)
	min := data.Selected.ToWorld()
	max := min.Add(grid.Vec3{X: grid.CellSize, Y: grid.CellSize, Z: grid.CellSize})
	scene.Debug.BoxMinMax(min, max)

	var pending []event.Event
	if scene.Input.MouseButtonPressed(config.MouseButtonPlace) {
		if ev, ok := s.placeTurret(scene, data); ok {
			pending = append(pending, ev)
		}
	}
	if scene.Input.MouseButtonPressed(config.MouseButtonUpgrade) {
		if ev, ok := s.upgradeUnit(scene, data); ok {
			pending = append(pending, ev)
		}
	}

	selected := data.Selected
	gameMut.Release()

	// Listeners read game state, so events go out with no borrows held.
	for _, ev := range pending {
		s.dispatcher.Dispatch(ev)
	}

	s.moveCamera(scene, selected, delta)
}

// placeTurret creates a turret on the selected cell and returns the event
// to announce once the game borrow is back. Both guards sit in front of any
// effect, so a failed placement changes nothing.
func (s *ManagerUpdateSystem) placeTurret(scene *engine.Scene, data *component.GameData) (event.Event, bool) {
	if data.ResourceCount <= 0 {
		return event.Event{}, false
	}
	if _, occupied := data.Grid[data.Selected]; occupied {
		return event.Event{}, false
	}

	def := defs.Turret(defs.DefaultTurretID)
	entity, err := scene.InstantiateModel("cube")
	if err != nil {
		// Models load at startup; a miss here is a setup bug.
		panic(err)
	}

	transforms := scene.Transforms.BorrowMut()
	t := transforms.MustGet(entity)
	t.SetPosition(data.Selected.CellCenter())
	t.SetUniformScale(grid.CellSize * config.BaseScalePerLevel)
	transforms.Release()

	alarm := scene.Alarms.AssignRepeating(entity, def.FireInterval, FireTurretCallback)

	units := s.units.BorrowMut()
	units.Assign(entity, component.NewTurret(def.ID, alarm))
	units.Release()

	data.Grid[data.Selected] = entity
	data.ResourceCount--

	return event.NewUnitPlaced(entity), true
}

// upgradeUnit raises the level of the unit on the selected cell and returns
// the event to announce once the game borrow is back.
func (s *ManagerUpdateSystem) upgradeUnit(scene *engine.Scene, data *component.GameData) (event.Event, bool) {
	if data.ResourceCount <= 0 {
		return event.Event{}, false
	}
	entity, occupied := data.Grid[data.Selected]
	if !occupied {
		return event.Event{}, false
	}

	units := s.units.BorrowMut()
	// A grid cell always points at an entity carrying a unit.
	unit := units.MustGet(entity)
	switch unit.Kind {
	case component.UnitBase:
		unit.Level++
		data.ResourceCount--

		transforms := scene.Transforms.BorrowMut()
		t := transforms.MustGet(entity)
		t.SetUniformScale(float64(unit.Level) * grid.CellSize * config.BaseScalePerLevel)
		transforms.Release()
	case component.UnitTurret:
		// Higher turret levels have no behavioral effect yet.
		unit.Level++
		data.ResourceCount--
	}
	units.Release()

	return event.NewUnitUpgraded(entity), true
}

// moveCamera eases every camera toward the selected cell, backing off in z
// as the selection wanders from the origin.
func (s *ManagerUpdateSystem) moveCamera(scene *engine.Scene, selected grid.Pos, delta float64) {
	target := selected.CellCenter()
	distance := grid.Pos{}.Sub(selected).Manhattan()
	targetZ := config.CameraBaseOffset + float64(distance)*config.CameraOffsetPerCursorOffset

	var cameraIDs []types.EntityID
	cameras := scene.Cameras.Borrow()
	cameras.Each(func(id types.EntityID, _ engine.Camera) {
		cameraIDs = append(cameraIDs, id)
	})
	cameras.Release()

	transforms := scene.Transforms.BorrowMut()
	for _, id := range cameraIDs {
		t, ok := transforms.Get(id)
		if !ok {
			continue
		}
		xy := t.Position.Lerp(grid.Vec3{X: target.X, Y: target.Y, Z: t.Position.Z}, config.CameraXYMoveSpeed*delta)
		z := t.Position.Lerp(grid.Vec3{X: xy.X, Y: xy.Y, Z: targetZ}, config.CameraZMoveSpeed*delta).Z
		t.SetPosition(grid.Vec3{X: xy.X, Y: xy.Y, Z: z})
	}
	transforms.Release()
}
