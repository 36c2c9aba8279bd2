// pkg/utils/math.go
package utils

// Abs returns the absolute value of x.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits x to the range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp performs standard linear interpolation from a to b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
