// cmd/game/main.go
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/excaliburHisSheath/ld34-entry/internal/app"
	"github.com/excaliburHisSheath/ld34-entry/internal/component"
	"github.com/excaliburHisSheath/ld34-entry/internal/config"
	"github.com/excaliburHisSheath/ld34-entry/internal/defs"
	"github.com/excaliburHisSheath/ld34-entry/internal/engine"
	"github.com/excaliburHisSheath/ld34-entry/internal/event"
	"github.com/excaliburHisSheath/ld34-entry/internal/types"
	"github.com/excaliburHisSheath/ld34-entry/internal/utils"
	"github.com/excaliburHisSheath/ld34-entry/pkg/grid"
)

// worldScale converts world units to screen pixels for the top-down view.
const worldScale = 8.0

// mouseInput adapts ebiten's cursor state to the engine's Input contract.
type mouseInput struct {
	lastX, lastY int
	dx, dy       float64
}

func (m *mouseInput) poll() {
	x, y := ebiten.CursorPosition()
	m.dx = float64(x - m.lastX)
	m.dy = float64(y - m.lastY)
	m.lastX, m.lastY = x, y
}

func (m *mouseInput) MouseDelta() (float64, float64) {
	return m.dx, m.dy
}

func (m *mouseInput) MouseButtonPressed(button int) bool {
	switch button {
	case config.MouseButtonPlace:
		return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	case config.MouseButtonUpgrade:
		return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	default:
		return false
	}
}

type debugShape struct {
	isBox    bool
	center   grid.Vec3
	radius   float64
	min, max grid.Vec3
}

// debugDraw buffers one frame of debug shapes for the renderer.
type debugDraw struct {
	shapes []debugShape
}

func (d *debugDraw) Sphere(center grid.Vec3, radius float64) {
	d.shapes = append(d.shapes, debugShape{center: center, radius: radius})
}

func (d *debugDraw) BoxMinMax(min, max grid.Vec3) {
	d.shapes = append(d.shapes, debugShape{isBox: true, min: min, max: max})
}

func (d *debugDraw) reset() {
	d.shapes = d.shapes[:0]
}

// App is the ebiten shell around the game engine.
type App struct {
	engine         *engine.Engine
	input          *mouseInput
	debug          *debugDraw
	rng            *utils.PRNGService
	dispatcher     *event.Dispatcher
	face           text.Face
	lastUpdateTime time.Time
}

func (a *App) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now

	// Hotload stand-in: rebuild systems and callbacks around the live
	// scene without restarting the process.
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		old := a.engine
		a.engine = engine.Reload(old)
		app.Reload(old, a.engine, a.rng, a.dispatcher)
		log.Println("game logic reloaded")
	}

	a.debug.reset()
	a.input.poll()
	a.engine.Update(deltaTime)
	return nil
}

// project maps a world point to screen pixels. The camera's x-y position
// centers the view; z only matters to the real 3D renderer.
func (a *App) project(p grid.Vec3, camera grid.Vec3) (float32, float32) {
	x := (p.X-camera.X)*worldScale + config.ScreenWidth/2
	y := config.ScreenHeight/2 - (p.Y-camera.Y)*worldScale
	return float32(x), float32(y)
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	scene := a.engine.Scene()

	var cameraPos grid.Vec3
	{
		var cameraID types.EntityID
		cameras := scene.Cameras.Borrow()
		cameras.Each(func(id types.EntityID, _ engine.Camera) {
			if cameraID == 0 {
				cameraID = id
			}
		})
		cameras.Release()

		transforms := scene.Transforms.Borrow()
		if t, ok := transforms.Get(cameraID); ok {
			cameraPos = t.Position
		}
		transforms.Release()
	}

	a.drawGrid(screen, cameraPos)
	a.drawEntities(screen, cameraPos)
	a.drawDebug(screen, cameraPos)
	a.drawHud(screen)
}

func (a *App) drawGrid(screen *ebiten.Image, camera grid.Vec3) {
	half := 20
	for i := -half; i <= half; i++ {
		w := float64(i) * grid.CellSize
		x0, y0 := a.project(grid.Vec3{X: w, Y: -float64(half) * grid.CellSize}, camera)
		x1, y1 := a.project(grid.Vec3{X: w, Y: float64(half) * grid.CellSize}, camera)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, config.GridLineColor, false)
		x0, y0 = a.project(grid.Vec3{X: -float64(half) * grid.CellSize, Y: w}, camera)
		x1, y1 = a.project(grid.Vec3{X: float64(half) * grid.CellSize, Y: w}, camera)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, config.GridLineColor, false)
	}
}

func (a *App) drawEntities(screen *ebiten.Image, camera grid.Vec3) {
	scene := a.engine.Scene()
	mgrs, ok := app.ManagersFrom(scene)
	if !ok {
		return
	}

	transforms := scene.Transforms.Borrow()
	defer transforms.Release()

	units := mgrs.Units.Borrow()
	units.Each(func(id types.EntityID, u component.PlayerUnit) {
		t, ok := transforms.Get(id)
		if !ok {
			return
		}
		x, y := a.project(t.Position, camera)
		size := float32(t.Scale.X * worldScale * 10)
		c := config.TurretColor
		if u.Kind == component.UnitBase {
			c = config.BaseColor
		}
		vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, c, false)
	})
	units.Release()

	enemies := mgrs.Enemies.Borrow()
	enemies.Each(func(id types.EntityID, _ component.Enemy) {
		t, ok := transforms.Get(id)
		if !ok {
			return
		}
		x, y := a.project(t.Position, camera)
		radius := float32(defs.Enemy(defs.DefaultEnemyID).Radius * worldScale)
		vector.DrawFilledCircle(screen, x, y, radius, config.EnemyColor, false)
	})
	enemies.Release()

	bullets := mgrs.Bullets.Borrow()
	bullets.Each(func(id types.EntityID, _ component.Bullet) {
		t, ok := transforms.Get(id)
		if !ok {
			return
		}
		x, y := a.project(t.Position, camera)
		vector.DrawFilledCircle(screen, x, y, float32(config.BulletColliderRadius*worldScale), config.BulletColor, false)
	})
	bullets.Release()
}

func (a *App) drawDebug(screen *ebiten.Image, camera grid.Vec3) {
	for _, shape := range a.debug.shapes {
		if shape.isBox {
			x0, y0 := a.project(shape.min, camera)
			x1, y1 := a.project(shape.max, camera)
			vector.StrokeRect(screen, x0, y1, x1-x0, y0-y1, 2, config.SelectionColor, false)
		} else {
			x, y := a.project(shape.center, camera)
			vector.StrokeCircle(screen, x, y, float32(shape.radius*worldScale), 1, config.CursorColor, false)
		}
	}
}

func (a *App) drawHud(screen *ebiten.Image) {
	scene := a.engine.Scene()
	mgrs, ok := app.ManagersFrom(scene)
	if !ok {
		return
	}
	data := mgrs.Game.Get()

	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 10)
	op.ColorScale.ScaleWithColor(config.HudTextColor)
	msg := fmt.Sprintf("resources: %d  selected: (%d, %d)  enemies: %d",
		data.ResourceCount, data.Selected.X, data.Selected.Y, mgrs.Enemies.Len())
	text.Draw(screen, msg, a.face, op)
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// loadDefs loads both definition files. A failure on either side swaps in
// the built-in defaults for both, so the libraries are never half-loaded.
func loadDefs(enemyFile, turretFile string) {
	enemyErr := defs.LoadEnemyDefinitions(enemyFile)
	turretErr := defs.LoadTurretDefinitions(turretFile)
	if enemyErr == nil && turretErr == nil {
		return
	}
	if enemyErr != nil {
		log.Printf("using built-in defs: %v", enemyErr)
	}
	if turretErr != nil {
		log.Printf("using built-in defs: %v", turretErr)
	}
	defs.UseBuiltins()
}

func main() {
	loadDefs(config.EnemyDefsFile, config.TurretDefsFile)

	input := &mouseInput{}
	debug := &debugDraw{}
	rng := utils.NewPRNGService(0)
	dispatcher := event.NewDispatcher()

	e := engine.New(input, debug)
	if err := app.Init(e, rng, dispatcher); err != nil {
		log.Fatal(err)
	}

	a := &App{
		engine:         e,
		input:          input,
		debug:          debug,
		rng:            rng,
		dispatcher:     dispatcher,
		face:           text.NewGoXFace(basicfont.Face7x13),
		lastUpdateTime: time.Now(),
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Grid Defense")
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
