// internal/defs/types.go
package defs

// EnemyDefinition is the data-driven description of one enemy kind.
type EnemyDefinition struct {
	ID     string  `json:"id"`
	Speed  float64 `json:"speed"`
	Radius float64 `json:"radius"`
}

// TurretDefinition is the data-driven description of one turret kind.
type TurretDefinition struct {
	ID           string  `json:"id"`
	FireInterval float64 `json:"fire_interval"`
	Range        float64 `json:"range"`
	BulletSpeed  float64 `json:"bullet_speed"`
	Damage       int     `json:"damage"`
}
