// internal/component/enemy.go
package component

// Enemy marks an entity as hostile. Presence is the whole payload; stats
// come from the enemy definition library.
type Enemy struct{}
