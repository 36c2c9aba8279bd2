// pkg/grid/grid.go
package grid

import (
	"math"

	"github.com/excaliburHisSheath/ld34-entry/pkg/utils"
)

// CellSize is the edge length of one grid cell in world units.
const CellSize = 5.0

// Vec3 is a point or direction in world space.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns the unit vector pointing the same way as v.
// A zero vector stays zero rather than dividing by zero.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp moves t of the remaining distance from v toward target.
// t is clamped to [0, 1].
func (v Vec3) Lerp(target Vec3, t float64) Vec3 {
	t = utils.Clamp(t, 0, 1)
	return Vec3{
		X: utils.Lerp(v.X, target.X, t),
		Y: utils.Lerp(v.Y, target.Y, t),
		Z: utils.Lerp(v.Z, target.Z, t),
	}
}

// Pos addresses one cell of the game grid.
//
// The grid lies in the global x-y plane with positive z up. A Pos names the
// minimum corner of its cell, so (5, 3) spans world (25, 15) to (30, 20)
// with CellSize 5.
type Pos struct {
	X, Y int
}

// FromWorld returns the cell containing the world point p.
func FromWorld(p Vec3) Pos {
	return Pos{
		X: int(math.Floor(p.X / CellSize)),
		Y: int(math.Floor(p.Y / CellSize)),
	}
}

// ToWorld returns the minimum corner of the cell at z=0.
func (p Pos) ToWorld() Vec3 {
	return Vec3{
		X: float64(p.X) * CellSize,
		Y: float64(p.Y) * CellSize,
	}
}

// CellCenter returns the midpoint of the cell at z=0.
func (p Pos) CellCenter() Vec3 {
	return Vec3{
		X: float64(p.X)*CellSize + CellSize*0.5,
		Y: float64(p.Y)*CellSize + CellSize*0.5,
	}
}

// Sub is component-wise subtraction.
func (p Pos) Sub(o Pos) Pos {
	return Pos{p.X - o.X, p.Y - o.Y}
}

// Manhattan returns the taxicab magnitude of p.
func (p Pos) Manhattan() int {
	return utils.Abs(p.X) + utils.Abs(p.Y)
}
