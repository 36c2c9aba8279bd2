// internal/engine/input.go
package engine

// Input is polled once per frame by gameplay systems. The front-end feeds
// it from the real window; tests script it.
type Input interface {
	// MouseDelta returns cursor movement since the previous frame.
	MouseDelta() (dx, dy float64)
	// MouseButtonPressed reports whether the button went down this frame.
	MouseButtonPressed(button int) bool
}

// NopInput reports no activity.
type NopInput struct{}

func (NopInput) MouseDelta() (float64, float64) { return 0, 0 }
func (NopInput) MouseButtonPressed(int) bool    { return false }
