// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/excaliburHisSheath/ld34-entry/internal/config"
)

// DefaultEnemyID and DefaultTurretID name the definitions the spawner and
// placement logic fall back to.
const (
	DefaultEnemyID  = "ENEMY_WALKER"
	DefaultTurretID = "TURRET_BASIC"
)

// EnemyLibrary holds all enemy definitions, keyed by their ID.
var EnemyLibrary map[string]EnemyDefinition

// TurretLibrary holds all turret definitions, keyed by their ID.
var TurretLibrary map[string]TurretDefinition

// LoadEnemyDefinitions reads the enemy configuration file and populates the
// EnemyLibrary.
func LoadEnemyDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read enemy definitions file: %w", err)
	}

	var enemyDefs []EnemyDefinition
	if err := json.Unmarshal(file, &enemyDefs); err != nil {
		return fmt.Errorf("failed to unmarshal enemy definitions: %w", err)
	}

	EnemyLibrary = make(map[string]EnemyDefinition)
	for _, def := range enemyDefs {
		EnemyLibrary[def.ID] = def
	}
	return nil
}

// LoadTurretDefinitions reads the turret configuration file and populates
// the TurretLibrary.
func LoadTurretDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read turret definitions file: %w", err)
	}

	var turretDefs []TurretDefinition
	if err := json.Unmarshal(file, &turretDefs); err != nil {
		return fmt.Errorf("failed to unmarshal turret definitions: %w", err)
	}

	TurretLibrary = make(map[string]TurretDefinition)
	for _, def := range turretDefs {
		TurretLibrary[def.ID] = def
	}
	return nil
}

// UseBuiltins populates both libraries with the compiled-in defaults.
// Tests and headless runs use this instead of the JSON files.
func UseBuiltins() {
	EnemyLibrary = map[string]EnemyDefinition{
		DefaultEnemyID: {
			ID:     DefaultEnemyID,
			Speed:  config.EnemyMoveSpeed,
			Radius: config.EnemyColliderRadius,
		},
	}
	TurretLibrary = map[string]TurretDefinition{
		DefaultTurretID: {
			ID:           DefaultTurretID,
			FireInterval: config.TurretFireInterval,
			Range:        config.TurretRange,
			BulletSpeed:  config.BulletSpeed,
			Damage:       1,
		},
	}
}

// Enemy looks up an enemy definition, falling back to the built-in default
// when the library has no entry.
func Enemy(id string) EnemyDefinition {
	if def, ok := EnemyLibrary[id]; ok {
		return def
	}
	return EnemyDefinition{ID: id, Speed: config.EnemyMoveSpeed, Radius: config.EnemyColliderRadius}
}

// Turret looks up a turret definition, falling back to the built-in default
// when the library has no entry.
func Turret(id string) TurretDefinition {
	if def, ok := TurretLibrary[id]; ok {
		return def
	}
	return TurretDefinition{
		ID:           id,
		FireInterval: config.TurretFireInterval,
		Range:        config.TurretRange,
		BulletSpeed:  config.BulletSpeed,
		Damage:       1,
	}
}
