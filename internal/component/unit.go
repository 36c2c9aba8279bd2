// internal/component/unit.go
package component

import "github.com/excaliburHisSheath/ld34-entry/internal/types"

// UnitKind tags the PlayerUnit variant.
type UnitKind int

const (
	UnitBase UnitKind = iota
	UnitTurret
)

func (k UnitKind) String() string {
	switch k {
	case UnitBase:
		return "Base"
	case UnitTurret:
		return "Turret"
	default:
		return "Unknown"
	}
}

// PlayerUnit is attached to every player-owned grid entity. It is a tagged
// variant: every unit has a Level, and only turrets carry the firing state.
//
// ShootAlarm and Target are non-owning handles. The alarm belongs to the
// scene's alarm table and the target belongs to the enemy store; either can
// be destroyed independently, so holders must check validity before use.
type PlayerUnit struct {
	Kind  UnitKind
	Level int

	// Turret-only fields. Zero values for bases.
	DefID      string
	ShootAlarm types.AlarmID
	Target     types.EntityID // 0 = no target
}

// NewBase returns a Base unit at the given level.
func NewBase(level int) PlayerUnit {
	return PlayerUnit{Kind: UnitBase, Level: level}
}

// NewTurret returns a level-1 Turret bound to its repeating fire alarm.
func NewTurret(defID string, shootAlarm types.AlarmID) PlayerUnit {
	return PlayerUnit{
		Kind:       UnitTurret,
		Level:      1,
		DefID:      defID,
		ShootAlarm: shootAlarm,
	}
}
