// internal/component/game_data.go
package component

import (
	"github.com/excaliburHisSheath/ld34-entry/internal/config"
	"github.com/excaliburHisSheath/ld34-entry/internal/types"
	"github.com/excaliburHisSheath/ld34-entry/pkg/grid"
)

// GameData is the session-wide singleton state. One instance lives in the
// scene for the whole session and is carried across hot reloads.
type GameData struct {
	// Grid maps a cell to its single occupying entity (base or turret).
	// It is the authoritative spatial index; an entity referenced here is
	// guaranteed to carry a PlayerUnit.
	Grid map[grid.Pos]types.EntityID

	// Selected is the grid cell currently under the cursor.
	Selected grid.Pos

	// Cursor is the continuous world position accumulated from mouse
	// deltas. Selection moves in discrete cell increments as it crosses
	// cell boundaries.
	Cursor grid.Vec3

	// ResourceCount is spendable currency. Every decrement is guarded;
	// it never goes negative.
	ResourceCount int
}

// NewGameData returns the defaults for a fresh session.
func NewGameData() GameData {
	return GameData{
		Grid:          make(map[grid.Pos]types.EntityID),
		ResourceCount: config.InitialResourceCount,
	}
}
