// internal/system/bullet.go
package system

import (
	"github.com/excaliburHisSheath/ld34-entry/internal/component"
	"github.com/excaliburHisSheath/ld34-entry/internal/config"
	"github.com/excaliburHisSheath/ld34-entry/internal/defs"
	"github.com/excaliburHisSheath/ld34-entry/internal/engine"
	"github.com/excaliburHisSheath/ld34-entry/internal/event"
	"github.com/excaliburHisSheath/ld34-entry/internal/types"
)

// BulletSystem flies bullets at their targets. Bullets whose target died
// in transit are discarded. When a bullet closes within hit range it
// announces the hit on the Damage channel; physical contact resolution is
// left to the collision step.
type BulletSystem struct {
	bullets    *engine.Store[component.Bullet]
	enemies    *engine.Store[component.Enemy]
	dispatcher *event.Dispatcher
}

func NewBulletSystem(
	bullets *engine.Store[component.Bullet],
	enemies *engine.Store[component.Enemy],
	dispatcher *event.Dispatcher,
) *BulletSystem {
	return &BulletSystem{
		bullets:    bullets,
		enemies:    enemies,
		dispatcher: dispatcher,
	}
}

func (s *BulletSystem) Update(scene *engine.Scene, delta float64) {
	hitRange := config.BulletHitRadius + defs.Enemy(defs.DefaultEnemyID).Radius

	var stale []types.EntityID
	var hits []event.Event

	bullets := s.bullets.Borrow()
	transforms := scene.Transforms.BorrowMut()
	bullets.Each(func(id types.EntityID, b component.Bullet) {
		if !scene.Alive(b.Target) {
			stale = append(stale, id)
			return
		}
		target, ok := transforms.Get(b.Target)
		if !ok {
			stale = append(stale, id)
			return
		}
		t, ok := transforms.Get(id)
		if !ok {
			return
		}

		offset := target.Position.Sub(t.Position)
		distance := offset.Length()
		step := b.Speed * delta
		if step >= distance {
			t.SetPosition(target.Position)
		} else {
			t.Translate(offset.Normalized().Scale(step))
		}

		if target.Position.Sub(t.Position).Length() <= hitRange {
			hits = append(hits, event.NewDamage(b.Source, b.Target, b.Damage))
		}
	})
	transforms.Release()
	bullets.Release()

	// Destroys happen with all borrows released.
	for _, id := range stale {
		scene.DestroyEntity(id)
	}
	for _, hit := range hits {
		s.dispatcher.Dispatch(hit)
	}
}
