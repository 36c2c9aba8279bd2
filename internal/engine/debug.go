// internal/engine/debug.go
package engine

import "github.com/excaliburHisSheath/ld34-entry/pkg/grid"

// DebugDraw collects one frame's worth of debug shapes. Gameplay pushes
// shapes; the front-end draws and clears them. Not gameplay-relevant.
type DebugDraw interface {
	Sphere(center grid.Vec3, radius float64)
	BoxMinMax(min, max grid.Vec3)
}

// NopDebugDraw discards every shape.
type NopDebugDraw struct{}

func (NopDebugDraw) Sphere(grid.Vec3, float64)      {}
func (NopDebugDraw) BoxMinMax(grid.Vec3, grid.Vec3) {}
