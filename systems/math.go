package systems

import "math"

// wrap folds v into [0, worldSize).
func wrap(v float32) float32 {
	v = float32(math.Mod(float64(v), worldSize))
	if v < 0 {
		v += worldSize
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return float32(math.Hypot(dx, dy))
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
