package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excaliburHisSheath/ld34-entry/internal/component"
	"github.com/excaliburHisSheath/ld34-entry/internal/event"
	"github.com/excaliburHisSheath/ld34-entry/internal/system"
	"github.com/excaliburHisSheath/ld34-entry/internal/types"
	"github.com/excaliburHisSheath/ld34-entry/pkg/grid"
)

// fireBullet hand-rolls a bullet in flight toward target.
func fireBullet(t *testing.T, f *fixture, pos grid.Vec3, speed float64, target types.EntityID) types.EntityID {
	t.Helper()
	bullet, err := f.scene.InstantiateModel("sphere")
	require.NoError(t, err)

	transforms := f.scene.Transforms.BorrowMut()
	transforms.MustGet(bullet).SetPosition(pos)
	transforms.Release()

	bullets := f.bullets.BorrowMut()
	bullets.Assign(bullet, component.Bullet{
		Speed:  speed,
		Damage: 1,
		Source: f.base,
		Target: target,
	})
	bullets.Release()
	return bullet
}

func TestBulletHomesOnTarget(t *testing.T) {
	f := newFixture(t)
	sys := system.NewBulletSystem(f.bullets, f.enemies, f.dispatcher)

	enemy := f.spawnEnemyAt(t, grid.Vec3{X: 0, Y: 20})
	bullet := fireBullet(t, f, grid.Vec3{X: 0, Y: 0}, 4, enemy)

	sys.Update(f.scene, 1.0)

	transforms := f.scene.Transforms.Borrow()
	got, _ := transforms.Get(bullet)
	transforms.Release()
	assert.InDelta(t, 4.0, got.Position.Y, 1e-9, "bullet covers speed*delta toward the target")
	assert.InDelta(t, 0.0, got.Position.X, 1e-9)
}

func TestBulletStepClampsAtTarget(t *testing.T) {
	f := newFixture(t)
	sys := system.NewBulletSystem(f.bullets, f.enemies, f.dispatcher)

	enemyPos := grid.Vec3{X: 0, Y: 2}
	enemy := f.spawnEnemyAt(t, enemyPos)
	bullet := fireBullet(t, f, grid.Vec3{}, 100, enemy)

	sys.Update(f.scene, 1.0)

	transforms := f.scene.Transforms.Borrow()
	got, _ := transforms.Get(bullet)
	transforms.Release()
	assert.Equal(t, enemyPos, got.Position, "bullet never overshoots")
}

func TestBulletDispatchesDamageInHitRange(t *testing.T) {
	f := newFixture(t)
	sys := system.NewBulletSystem(f.bullets, f.enemies, f.dispatcher)
	rec := &recorder{}
	f.dispatcher.Subscribe(event.Damage, rec)

	enemy := f.spawnEnemyAt(t, grid.Vec3{X: 0, Y: 2})
	bullet := fireBullet(t, f, grid.Vec3{}, 100, enemy)
	_ = bullet

	sys.Update(f.scene, 1.0)

	require.Len(t, rec.events, 1)
	data, ok := event.AsDamage(rec.events[0])
	require.True(t, ok)
	assert.Equal(t, enemy, data.Target)
	assert.Equal(t, f.base, data.Attacker)
	assert.Equal(t, 1, data.Amount)
}

func TestBulletOutOfHitRangeStaysSilent(t *testing.T) {
	f := newFixture(t)
	sys := system.NewBulletSystem(f.bullets, f.enemies, f.dispatcher)
	rec := &recorder{}
	f.dispatcher.Subscribe(event.Damage, rec)

	enemy := f.spawnEnemyAt(t, grid.Vec3{X: 0, Y: 20})
	fireBullet(t, f, grid.Vec3{}, 4, enemy)

	sys.Update(f.scene, 1.0)
	assert.Empty(t, rec.events)
}

func TestBulletWithDeadTargetIsCulled(t *testing.T) {
	f := newFixture(t)
	sys := system.NewBulletSystem(f.bullets, f.enemies, f.dispatcher)

	enemy := f.spawnEnemyAt(t, grid.Vec3{X: 0, Y: 20})
	bullet := fireBullet(t, f, grid.Vec3{}, 4, enemy)
	f.scene.DestroyEntity(enemy)

	sys.Update(f.scene, 1.0)

	assert.False(t, f.scene.Alive(bullet))
	assert.Equal(t, 0, f.bullets.Len())
}
