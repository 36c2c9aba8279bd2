// internal/system/fire.go
package system

import (
	"log"

	"github.com/excaliburHisSheath/ld34-entry/internal/component"
	"github.com/excaliburHisSheath/ld34-entry/internal/config"
	"github.com/excaliburHisSheath/ld34-entry/internal/defs"
	"github.com/excaliburHisSheath/ld34-entry/internal/engine"
	"github.com/excaliburHisSheath/ld34-entry/internal/types"
)

// TargetAcquisition picks an enemy for a turret to shoot at. It is the
// extension seam for smarter targeting; the shipped strategy is plain
// nearest-in-range. Returns 0 when nothing qualifies.
type TargetAcquisition interface {
	Acquire(scene *engine.Scene, turret types.EntityID, maxRange float64) types.EntityID
}

// NearestEnemy targets the closest live enemy within range.
type NearestEnemy struct {
	enemies *engine.Store[component.Enemy]
}

func NewNearestEnemy(enemies *engine.Store[component.Enemy]) *NearestEnemy {
	return &NearestEnemy{enemies: enemies}
}

func (n *NearestEnemy) Acquire(scene *engine.Scene, turret types.EntityID, maxRange float64) types.EntityID {
	transforms := scene.Transforms.Borrow()
	defer transforms.Release()

	origin, ok := transforms.Get(turret)
	if !ok {
		return 0
	}

	var best types.EntityID
	bestDist := maxRange

	enemies := n.enemies.Borrow()
	enemies.Each(func(id types.EntityID, _ component.Enemy) {
		t, ok := transforms.Get(id)
		if !ok {
			return
		}
		dist := t.Position.Sub(origin.Position).Length()
		if dist <= bestDist {
			best = id
			bestDist = dist
		}
	})
	enemies.Release()

	return best
}

// FireSystem reacts to each turret's repeating fire alarm: shoot the
// current target if it is still alive, otherwise acquire a new one.
type FireSystem struct {
	units   *engine.Store[component.PlayerUnit]
	enemies *engine.Store[component.Enemy]
	bullets *engine.Store[component.Bullet]
	acquire TargetAcquisition
}

func NewFireSystem(
	units *engine.Store[component.PlayerUnit],
	enemies *engine.Store[component.Enemy],
	bullets *engine.Store[component.Bullet],
	acquire TargetAcquisition,
) *FireSystem {
	return &FireSystem{
		units:   units,
		enemies: enemies,
		bullets: bullets,
		acquire: acquire,
	}
}

// FireTurret is the alarm callback behind FireTurretCallback.
func (s *FireSystem) FireTurret(scene *engine.Scene, entity types.EntityID) {
	units := s.units.BorrowMut()
	unit, ok := units.Get(entity)
	if !ok || unit.Kind != component.UnitTurret {
		units.Release()
		return
	}

	def := defs.Turret(unit.DefID)

	// Drop stale targets before shooting. Target is a non-owning handle;
	// the enemy may be long gone.
	if unit.Target != 0 && !scene.Alive(unit.Target) {
		unit.Target = 0
	}
	if unit.Target != 0 {
		enemies := s.enemies.Borrow()
		if !enemies.Has(unit.Target) {
			unit.Target = 0
		}
		enemies.Release()
	}

	target := unit.Target
	units.Release()

	if target == 0 {
		target = s.acquire.Acquire(scene, entity, def.Range)
		units := s.units.BorrowMut()
		units.MustGet(entity).Target = target
		units.Release()
		if target == 0 {
			return
		}
	}

	s.spawnBullet(scene, entity, target, def)
}

func (s *FireSystem) spawnBullet(scene *engine.Scene, turret, target types.EntityID, def defs.TurretDefinition) {
	bullet, err := scene.InstantiateModel("sphere")
	if err != nil {
		log.Printf("fire: %v", err)
		return
	}

	transforms := scene.Transforms.BorrowMut()
	origin, ok := transforms.Get(turret)
	if ok {
		transforms.MustGet(bullet).SetPosition(origin.Position)
	}
	transforms.Release()

	bullets := s.bullets.BorrowMut()
	bullets.Assign(bullet, component.Bullet{
		Speed:  def.BulletSpeed,
		Damage: def.Damage,
		Source: turret,
		Target: target,
	})
	bullets.Release()

	scene.Colliders.Assign(bullet, engine.Collider{Radius: config.BulletColliderRadius})
	scene.Colliders.AssignCallback(bullet, BulletCollisionCallback)
}

// HandleBulletCollision retires a bullet once it has hit anything solid.
// The enemy's own collision handler resolves the enemy's fate.
func (s *FireSystem) HandleBulletCollision(scene *engine.Scene, self types.EntityID, others []types.EntityID) {
	bullets := s.bullets.Borrow()
	_, isBullet := bullets.Get(self)
	bullets.Release()
	if !isBullet {
		return
	}
	for _, other := range others {
		bullets := s.bullets.Borrow()
		otherIsBullet := bullets.Has(other)
		bullets.Release()
		if otherIsBullet {
			continue
		}
		scene.DestroyEntity(self)
		return
	}
}
