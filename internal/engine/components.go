// internal/engine/components.go
package engine

import "github.com/excaliburHisSheath/ld34-entry/pkg/grid"

// Transform holds an entity's placement in world space.
type Transform struct {
	Position grid.Vec3
	Scale    grid.Vec3
	Forward  grid.Vec3
	Up       grid.Vec3
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{
		Scale:   grid.Vec3{X: 1, Y: 1, Z: 1},
		Forward: grid.Vec3{Y: 1},
		Up:      grid.Vec3{Z: 1},
	}
}

func (t *Transform) SetPosition(p grid.Vec3) {
	t.Position = p
}

func (t *Transform) SetScale(s grid.Vec3) {
	t.Scale = s
}

func (t *Transform) SetUniformScale(s float64) {
	t.Scale = grid.Vec3{X: s, Y: s, Z: s}
}

func (t *Transform) Translate(delta grid.Vec3) {
	t.Position = t.Position.Add(delta)
}

// LookAt orients the transform so its forward axis points at target.
func (t *Transform) LookAt(target, up grid.Vec3) {
	t.Forward = target.Sub(t.Position).Normalized()
	t.Up = up.Normalized()
}

// Camera marks an entity as a viewpoint. Projection parameters live in the
// renderer; gameplay only moves the transform.
type Camera struct{}

// Light marks an entity as a point light; placement comes from the
// transform.
type Light struct{}

// Mesh references a loaded model by name.
type Mesh struct {
	Model string
}
