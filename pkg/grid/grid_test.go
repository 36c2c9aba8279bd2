package grid_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/excaliburHisSheath/ld34-entry/pkg/grid"
)

func TestFromWorld(t *testing.T) {
	tests := []struct {
		point grid.Vec3
		want  grid.Pos
	}{
		{grid.Vec3{}, grid.Pos{0, 0}},
		{grid.Vec3{X: 4.9, Y: 4.9}, grid.Pos{0, 0}},
		{grid.Vec3{X: 5.0, Y: 0}, grid.Pos{1, 0}},
		{grid.Vec3{X: 7.5, Y: 12.5}, grid.Pos{1, 2}},
		{grid.Vec3{X: -0.1, Y: -0.1}, grid.Pos{-1, -1}},
		{grid.Vec3{X: -5.0, Y: -5.1}, grid.Pos{-1, -2}},
		{grid.Vec3{X: 0, Y: 0, Z: 99}, grid.Pos{0, 0}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%+v", tt.point), func(t *testing.T) {
			assert.Equal(t, tt.want, grid.FromWorld(tt.point))
		})
	}
}

// Re-flooring the minimum corner of a cell lands in the same cell.
func TestFromWorldRefloorIdempotent(t *testing.T) {
	points := []grid.Vec3{
		{X: 0.0, Y: 0.0},
		{X: 3.7, Y: 1.2},
		{X: -3.7, Y: -1.2},
		{X: 124.9, Y: -87.3},
		{X: -0.0001, Y: 0.0001},
	}

	for _, p := range points {
		pos := grid.FromWorld(p)
		assert.Equal(t, pos, grid.FromWorld(pos.ToWorld()), "point %+v", p)
	}
}

func TestCellCenter(t *testing.T) {
	for _, pos := range []grid.Pos{{0, 0}, {1, 0}, {-2, 3}, {17, -44}} {
		want := pos.ToWorld().Add(grid.Vec3{X: grid.CellSize / 2, Y: grid.CellSize / 2})
		assert.Equal(t, want, pos.CellCenter(), "pos %+v", pos)
		assert.Zero(t, pos.CellCenter().Z)
	}
}

func TestPosSubManhattan(t *testing.T) {
	a := grid.Pos{3, -2}
	b := grid.Pos{1, 4}
	assert.Equal(t, grid.Pos{2, -6}, a.Sub(b))
	assert.Equal(t, 8, a.Sub(b).Manhattan())
	assert.Equal(t, 8, b.Sub(a).Manhattan())
	assert.Equal(t, 0, grid.Pos{}.Manhattan())
}

func TestNormalizedZeroVector(t *testing.T) {
	assert.Equal(t, grid.Vec3{}, grid.Vec3{}.Normalized())

	n := grid.Vec3{X: 3, Y: 4}.Normalized()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
}

func TestLerpClamps(t *testing.T) {
	from := grid.Vec3{}
	to := grid.Vec3{X: 10}

	assert.Equal(t, grid.Vec3{X: 5}, from.Lerp(to, 0.5))
	assert.Equal(t, to, from.Lerp(to, 1.5), "t above 1 clamps to the target")
	assert.Equal(t, from, from.Lerp(to, -0.5), "t below 0 clamps to the start")
}
