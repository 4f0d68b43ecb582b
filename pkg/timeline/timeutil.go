package timeline

import "math"

// MaxTime is the latest instant a bound or the playhead can hold: 24h.
const MaxTime = 24 * 60 * 60

// ClampTime maps negative and NaN values to zero and caps v at MaxTime.
func ClampTime(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, MaxTime)
}

// RoundTime clamps v to [0, MaxTime] and rounds it to 0.1s.
func RoundTime(v float64) float64 {
	return math.Round(ClampTime(v)*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// NormalizeAngle folds a rotation into [-180, 180] degrees.
func NormalizeAngle(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	if deg >= -180 && deg <= 180 {
		return deg
	}
	deg = math.Mod(deg+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg - 180
}

// ClampPercent keeps a stage coordinate within [0, 100].
func ClampPercent(v float64) float64 {
	return clamp(v, 0, 100)
}
