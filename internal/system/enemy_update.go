// internal/system/enemy_update.go
package system

import (
	"github.com/excaliburHisSheath/ld34-entry/internal/component"
	"github.com/excaliburHisSheath/ld34-entry/internal/defs"
	"github.com/excaliburHisSheath/ld34-entry/internal/engine"
	"github.com/excaliburHisSheath/ld34-entry/internal/types"
	"github.com/excaliburHisSheath/ld34-entry/pkg/grid"
)

// EnemyUpdateSystem walks every enemy straight at the base. No pathfinding
// and no avoidance; contact is resolved by the collision handler.
type EnemyUpdateSystem struct {
	enemies *engine.Store[component.Enemy]
}

func NewEnemyUpdateSystem(enemies *engine.Store[component.Enemy]) *EnemyUpdateSystem {
	return &EnemyUpdateSystem{enemies: enemies}
}

func (s *EnemyUpdateSystem) Update(scene *engine.Scene, delta float64) {
	target := grid.Pos{}.CellCenter()
	speed := defs.Enemy(defs.DefaultEnemyID).Speed

	var ids []types.EntityID
	enemies := s.enemies.Borrow()
	enemies.Each(func(id types.EntityID, _ component.Enemy) {
		ids = append(ids, id)
	})
	enemies.Release()

	transforms := scene.Transforms.BorrowMut()
	for _, id := range ids {
		t, ok := transforms.Get(id)
		if !ok {
			continue
		}
		// Normalized fails safe to zero when the enemy sits exactly on
		// the target.
		direction := target.Sub(t.Position).Normalized()
		t.Translate(direction.Scale(speed * delta))
	}
	transforms.Release()
}
