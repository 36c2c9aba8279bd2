// internal/system/spawn.go
package system

import (
	"log"

	"github.com/excaliburHisSheath/ld34-entry/internal/component"
	"github.com/excaliburHisSheath/ld34-entry/internal/config"
	"github.com/excaliburHisSheath/ld34-entry/internal/defs"
	"github.com/excaliburHisSheath/ld34-entry/internal/engine"
	"github.com/excaliburHisSheath/ld34-entry/internal/event"
	"github.com/excaliburHisSheath/ld34-entry/internal/types"
	"github.com/excaliburHisSheath/ld34-entry/internal/utils"
	"github.com/excaliburHisSheath/ld34-entry/pkg/grid"
)

// Callback names registered with the host's alarm and collision tables.
// Names, not function pointers, are what survive a hot reload.
const (
	SpawnEnemyCallback      = "spawn_enemy"
	EnemyCollisionCallback  = "enemy_collision"
	FireTurretCallback      = "fire_turret"
	BulletCollisionCallback = "bullet_collision"
)

// SpawnSystem keeps at least config.MinEnemyCount enemies alive through a
// self-limiting chain of one-shot alarms: each spawn reschedules itself
// only while the field is still understocked, so the chain dies out on its
// own once the floor is met.
type SpawnSystem struct {
	game       *engine.Singleton[component.GameData]
	enemies    *engine.Store[component.Enemy]
	rng        *utils.PRNGService
	dispatcher *event.Dispatcher
}

func NewSpawnSystem(
	game *engine.Singleton[component.GameData],
	enemies *engine.Store[component.Enemy],
	rng *utils.PRNGService,
	dispatcher *event.Dispatcher,
) *SpawnSystem {
	return &SpawnSystem{
		game:       game,
		enemies:    enemies,
		rng:        rng,
		dispatcher: dispatcher,
	}
}

// Kickoff starts the spawn chain if the field is understocked. Called from
// scene setup; anchor is the entity the chain's alarms are bound to.
func (s *SpawnSystem) Kickoff(scene *engine.Scene, anchor types.EntityID) {
	if s.enemies.Len() < config.MinEnemyCount {
		scene.Alarms.Assign(anchor, config.EnemySpawnDelay, SpawnEnemyCallback)
	}
}

// SpawnEnemy is the alarm callback behind SpawnEnemyCallback. It creates
// one enemy at a random point in the spawn band and reschedules itself on
// the same anchor while still below the floor.
func (s *SpawnSystem) SpawnEnemy(scene *engine.Scene, anchor types.EntityID) {
	def := defs.Enemy(defs.DefaultEnemyID)

	entity, err := scene.InstantiateModel("sphere")
	if err != nil {
		log.Printf("spawn: %v", err)
		return
	}

	position := grid.Vec3{
		X: s.rng.FloatRange(config.SpawnBandMinX, config.SpawnBandMaxX) * grid.CellSize,
		Y: s.rng.FloatRange(config.SpawnBandMinY, config.SpawnBandMaxY) * grid.CellSize,
	}
	transforms := scene.Transforms.BorrowMut()
	transforms.MustGet(entity).SetPosition(position)
	transforms.Release()

	enemies := s.enemies.BorrowMut()
	enemies.Assign(entity, component.Enemy{})
	enemies.Release()

	scene.Colliders.Assign(entity, engine.Collider{Radius: def.Radius})
	scene.Colliders.AssignCallback(entity, EnemyCollisionCallback)

	if s.enemies.Len() < config.MinEnemyCount {
		scene.Alarms.Assign(anchor, config.EnemySpawnDelay, SpawnEnemyCallback)
	}
}

// HandleEnemyCollision resolves a collision event for an enemy. Enemies
// ignore each other; the first non-enemy contact destroys the enemy and,
// if the field dropped below the floor, schedules exactly one restock
// alarm. Damage to whatever the enemy hit is not modeled yet.
func (s *SpawnSystem) HandleEnemyCollision(scene *engine.Scene, self types.EntityID, others []types.EntityID) {
	for _, other := range others {
		enemies := s.enemies.Borrow()
		isEnemy := enemies.Has(other)
		enemies.Release()
		if isEnemy {
			continue
		}

		scene.DestroyEntity(self)
		s.dispatcher.Dispatch(event.NewEnemyDestroyed(self))

		if s.enemies.Len() < config.MinEnemyCount {
			scene.Alarms.Assign(s.spawnAnchor(), config.EnemySpawnDelay, SpawnEnemyCallback)
		}
		return
	}
}

// spawnAnchor returns the entity restock alarms bind to. The base outlives
// everything else, so the chain cannot be cancelled out from under itself.
func (s *SpawnSystem) spawnAnchor() types.EntityID {
	data := s.game.Get()
	return data.Grid[grid.Pos{}]
}
