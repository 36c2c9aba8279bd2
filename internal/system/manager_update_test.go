package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excaliburHisSheath/ld34-entry/internal/component"
	"github.com/excaliburHisSheath/ld34-entry/internal/config"
	"github.com/excaliburHisSheath/ld34-entry/internal/engine"
	"github.com/excaliburHisSheath/ld34-entry/internal/event"
	"github.com/excaliburHisSheath/ld34-entry/internal/system"
	"github.com/excaliburHisSheath/ld34-entry/pkg/grid"
)

func TestCursorMovesSelection(t *testing.T) {
	f := newFixture(t)
	sys := system.NewManagerUpdateSystem(f.game, f.units, f.dispatcher)

	// One cell right: cursor x must cross CellSize, so delta is
	// CellSize / MouseSpeed. Screen y is inverted on the way in.
	f.input.dx = (grid.CellSize + 1) / config.MouseSpeed
	f.input.dy = 0
	sys.Update(f.scene, 1.0/60)

	data := f.game.Get()
	assert.Equal(t, grid.Pos{X: 1, Y: 0}, data.Selected)
	assert.InDelta(t, grid.CellSize+1, data.Cursor.X, 1e-9)

	f.input.dx = 0
	f.input.dy = grid.CellSize / config.MouseSpeed
	sys.Update(f.scene, 1.0/60)

	data = f.game.Get()
	assert.Equal(t, grid.Pos{X: 1, Y: -1}, data.Selected)
}

func TestPlaceTurret(t *testing.T) {
	f := newFixture(t)
	sys := system.NewManagerUpdateSystem(f.game, f.units, f.dispatcher)
	rec := &recorder{}
	f.dispatcher.Subscribe(event.UnitPlaced, rec)

	require.Equal(t, config.InitialResourceCount, f.resourceCount())

	// Steer the cursor over (1, 0) and click.
	f.input.dx = (grid.CellSize + 1) / config.MouseSpeed
	f.input.pressed[config.MouseButtonPlace] = true
	sys.Update(f.scene, 1.0/60)

	entity, ok := f.gridEntry(grid.Pos{X: 1, Y: 0})
	require.True(t, ok, "placement must claim the selected cell")
	assert.Equal(t, config.InitialResourceCount-1, f.resourceCount())

	units := f.units.Borrow()
	unit, ok := units.Get(entity)
	units.Release()
	require.True(t, ok)
	assert.Equal(t, component.UnitTurret, unit.Kind)
	assert.Equal(t, 1, unit.Level)
	assert.True(t, f.scene.Alarms.Valid(unit.ShootAlarm), "turret owns a live fire alarm")

	transforms := f.scene.Transforms.Borrow()
	transform, ok := transforms.Get(entity)
	transforms.Release()
	require.True(t, ok)
	assert.Equal(t, grid.Pos{X: 1, Y: 0}.CellCenter(), transform.Position)

	assert.Len(t, rec.events, 1)
}

func TestPlaceTurretOccupiedCellIsNoOp(t *testing.T) {
	f := newFixture(t)
	sys := system.NewManagerUpdateSystem(f.game, f.units, f.dispatcher)

	// Cursor starts over the origin cell, which holds the base.
	f.input.pressed[config.MouseButtonPlace] = true
	before := f.units.Len()
	sys.Update(f.scene, 1.0/60)

	assert.Equal(t, config.InitialResourceCount, f.resourceCount())
	assert.Equal(t, before, f.units.Len())
	entity, _ := f.gridEntry(grid.Pos{})
	assert.Equal(t, f.base, entity)
}

func TestPlaceTurretWithoutResourcesIsNoOp(t *testing.T) {
	f := newFixture(t)
	sys := system.NewManagerUpdateSystem(f.game, f.units, f.dispatcher)

	gameMut := f.game.BorrowMut()
	gameMut.Value().ResourceCount = 0
	gameMut.Release()

	f.input.dx = (grid.CellSize + 1) / config.MouseSpeed
	f.input.pressed[config.MouseButtonPlace] = true
	sys.Update(f.scene, 1.0/60)

	_, ok := f.gridEntry(grid.Pos{X: 1, Y: 0})
	assert.False(t, ok)
	assert.Equal(t, 0, f.resourceCount())
	assert.Equal(t, 1, f.units.Len(), "only the base remains")
}

func TestUpgradeBase(t *testing.T) {
	f := newFixture(t)
	sys := system.NewManagerUpdateSystem(f.game, f.units, f.dispatcher)
	rec := &recorder{}
	f.dispatcher.Subscribe(event.UnitUpgraded, rec)

	f.input.pressed[config.MouseButtonUpgrade] = true
	sys.Update(f.scene, 1.0/60)

	units := f.units.Borrow()
	unit, _ := units.Get(f.base)
	units.Release()
	assert.Equal(t, 2, unit.Level)
	assert.Equal(t, config.InitialResourceCount-1, f.resourceCount())

	transforms := f.scene.Transforms.Borrow()
	transform, _ := transforms.Get(f.base)
	transforms.Release()
	want := 2 * grid.CellSize * config.BaseScalePerLevel
	assert.InDelta(t, want, transform.Scale.X, 1e-9)
	assert.InDelta(t, want, transform.Scale.Y, 1e-9)
	assert.InDelta(t, want, transform.Scale.Z, 1e-9)

	// Upgrading again stacks.
	sys.Update(f.scene, 1.0/60)
	units = f.units.Borrow()
	unit, _ = units.Get(f.base)
	units.Release()
	assert.Equal(t, 3, unit.Level)
	assert.Equal(t, config.InitialResourceCount-2, f.resourceCount())
	assert.Len(t, rec.events, 2)
}

// gameReader reads the game singleton the moment an event arrives, the way
// a real scorekeeping or UI listener would.
type gameReader struct {
	game      *engine.Singleton[component.GameData]
	resources []int
}

func (r *gameReader) OnEvent(event.Event) {
	r.resources = append(r.resources, r.game.Get().ResourceCount)
}

func TestPlacementEventsArriveWithBorrowsReleased(t *testing.T) {
	f := newFixture(t)
	sys := system.NewManagerUpdateSystem(f.game, f.units, f.dispatcher)
	reader := &gameReader{game: f.game}
	f.dispatcher.Subscribe(event.UnitPlaced, reader)
	f.dispatcher.Subscribe(event.UnitUpgraded, reader)

	f.input.dx = (grid.CellSize + 1) / config.MouseSpeed
	f.input.pressed[config.MouseButtonPlace] = true
	assert.NotPanics(t, func() { sys.Update(f.scene, 1.0/60) })

	// Same cell again, now occupied, so the second click upgrades.
	f.input.dx = 0
	f.input.pressed[config.MouseButtonPlace] = false
	f.input.pressed[config.MouseButtonUpgrade] = true
	assert.NotPanics(t, func() { sys.Update(f.scene, 1.0/60) })

	// The listener observed the settled post-action state each time.
	want := []int{config.InitialResourceCount - 1, config.InitialResourceCount - 2}
	assert.Equal(t, want, reader.resources)
}

func TestUpgradeEmptyCellIsNoOp(t *testing.T) {
	f := newFixture(t)
	sys := system.NewManagerUpdateSystem(f.game, f.units, f.dispatcher)

	f.input.dx = (grid.CellSize + 1) / config.MouseSpeed
	f.input.pressed[config.MouseButtonUpgrade] = true
	sys.Update(f.scene, 1.0/60)

	assert.Equal(t, config.InitialResourceCount, f.resourceCount())
}

func TestUpgradeWithoutResourcesIsNoOp(t *testing.T) {
	f := newFixture(t)
	sys := system.NewManagerUpdateSystem(f.game, f.units, f.dispatcher)

	gameMut := f.game.BorrowMut()
	gameMut.Value().ResourceCount = 0
	gameMut.Release()

	f.input.pressed[config.MouseButtonUpgrade] = true
	sys.Update(f.scene, 1.0/60)

	units := f.units.Borrow()
	unit, _ := units.Get(f.base)
	units.Release()
	assert.Equal(t, 1, unit.Level)
}

func TestCameraFollowsSelection(t *testing.T) {
	f := newFixture(t)
	sys := system.NewManagerUpdateSystem(f.game, f.units, f.dispatcher)

	camera := f.scene.CreateEntity()
	transforms := f.scene.Transforms.BorrowMut()
	ct := engine.NewTransform()
	ct.SetPosition(grid.Vec3{Z: config.CameraBaseOffset})
	transforms.Assign(camera, ct)
	transforms.Release()
	cameras := f.scene.Cameras.BorrowMut()
	cameras.Assign(camera, engine.Camera{})
	cameras.Release()

	// Push the selection out to (2, 0) and let the camera ease after it.
	f.input.dx = (2*grid.CellSize + 1) / config.MouseSpeed
	sys.Update(f.scene, 1.0/60)
	f.input.dx = 0
	for i := 0; i < 600; i++ {
		sys.Update(f.scene, 1.0/60)
	}

	transforms = f.scene.Transforms.BorrowMut()
	got := transforms.MustGet(camera).Position
	transforms.Release()

	target := grid.Pos{X: 2, Y: 0}.CellCenter()
	assert.InDelta(t, target.X, got.X, 0.05)
	assert.InDelta(t, target.Y, got.Y, 0.05)
	wantZ := config.CameraBaseOffset + 2*config.CameraOffsetPerCursorOffset
	assert.InDelta(t, wantZ, got.Z, 0.05)
}
