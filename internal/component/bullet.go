// internal/component/bullet.go
package component

import "github.com/excaliburHisSheath/ld34-entry/internal/types"

// Bullet is a turret shot in flight. Target is a non-owning handle; the
// enemy may die before the bullet arrives, in which case the bullet is
// discarded.
type Bullet struct {
	Speed  float64
	Damage int
	Source types.EntityID
	Target types.EntityID
}
