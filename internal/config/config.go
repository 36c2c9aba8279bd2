// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 0.06

	MouseSpeed        = 0.1
	BaseScalePerLevel = 0.1

	InitialResourceCount = 10

	// Camera framing. The camera chases the selected cell in x-y and backs
	// off in z as the cursor wanders away from the origin.
	CameraBaseOffset            = 30.0
	CameraOffsetPerCursorOffset = 2.0
	CameraXYMoveSpeed           = 5.0
	CameraZMoveSpeed            = 5.0

	LightHeight = 10.0

	TurretFireInterval = 1.0
	TurretRange        = 20.0

	MinEnemyCount   = 5
	EnemySpawnDelay = 1.0
	EnemyMoveSpeed  = 2.0

	// Spawn band, in cells. Enemies appear in a horizontal strip ahead of
	// the base: x in [SpawnBandMinX, SpawnBandMaxX), y in [SpawnBandMinY,
	// SpawnBandMaxY), both scaled by the cell size.
	SpawnBandMinX = -10
	SpawnBandMaxX = 10
	SpawnBandMinY = 10
	SpawnBandMaxY = 20

	BulletSpeed          = 40.0
	BulletHitRadius      = 0.5
	EnemyColliderRadius  = 1.0
	BaseColliderRadius   = 2.5
	BulletColliderRadius = 0.5

	CursorMarkerRadius = 0.25

	BaseModelFile   = "meshes/cube.dae"
	BulletModelFile = "meshes/sphere.dae"

	EnemyDefsFile  = "assets/enemies.json"
	TurretDefsFile = "assets/turrets.json"
)

// Mouse button indices as polled from the host input.
const (
	MouseButtonPlace = iota
	MouseButtonUpgrade
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	GridLineColor   = color.RGBA{70, 100, 120, 120}
	CursorColor     = color.RGBA{240, 240, 240, 255}
	SelectionColor  = color.RGBA{255, 255, 0, 200}
	BaseColor       = color.RGBA{50, 205, 50, 255}
	TurretColor     = color.RGBA{70, 130, 180, 255}
	EnemyColor      = color.RGBA{220, 60, 60, 255}
	BulletColor     = color.RGBA{255, 215, 0, 255}
	HudTextColor    = color.RGBA{240, 240, 240, 255}
)
