// internal/event/types.go
package event

import "github.com/excaliburHisSheath/ld34-entry/internal/types"

const (
	UnitPlaced     EventType = "UnitPlaced"     // turret registered on the grid
	UnitUpgraded   EventType = "UnitUpgraded"   // base or turret level raised
	EnemyDestroyed EventType = "EnemyDestroyed" // enemy entity removed
	Damage         EventType = "Damage"         // a shot connected; no default consumer
)

// DamageData is the payload for Damage events. Applying the damage is left
// to whoever subscribes; nothing in the core loop consumes it yet.
type DamageData struct {
	Attacker types.EntityID
	Target   types.EntityID
	Amount   int
}

// EnemyDestroyedData is the payload for EnemyDestroyed events.
type EnemyDestroyedData struct {
	Entity types.EntityID
}

// NewUnitPlaced announces a turret claiming a grid cell.
func NewUnitPlaced(entity types.EntityID) Event {
	return Event{Type: UnitPlaced, Data: entity}
}

// NewUnitUpgraded announces a unit's level going up.
func NewUnitUpgraded(entity types.EntityID) Event {
	return Event{Type: UnitUpgraded, Data: entity}
}

// NewEnemyDestroyed announces an enemy entity's removal.
func NewEnemyDestroyed(entity types.EntityID) Event {
	return Event{Type: EnemyDestroyed, Data: EnemyDestroyedData{Entity: entity}}
}

// NewDamage announces a shot connecting.
func NewDamage(attacker, target types.EntityID, amount int) Event {
	return Event{Type: Damage, Data: DamageData{Attacker: attacker, Target: target, Amount: amount}}
}

// AsDamage unpacks a Damage payload.
func AsDamage(e Event) (DamageData, bool) {
	data, ok := e.Data.(DamageData)
	return data, ok
}
