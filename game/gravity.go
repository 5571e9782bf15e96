package game

import (
	"math"
	"math/rand"
)

// WellPull computes the pull a single well exerts on a body at its current
// position and accumulates it into the body's tick acceleration. Returns
// false when the body lies outside the well's field radius. Contributions
// from overlapping wells sum; callers simply invoke this per well.
func WellPull(well, b *Body, cfg *Config) bool {
	dx := well.X - b.X
	dy := well.Y - b.Y
	dist := math.Hypot(dx, dy)
	if dist > well.FieldRadius {
		return false
	}
	if dist < 1e-9 {
		// Body sitting exactly on the well center has no defined direction.
		return false
	}

	var magnitude float64
	switch well.Regime {
	case RegimeConstant:
		magnitude = well.Strength
	default:
		d := dist
		if d < cfg.GravityMinDistance {
			d = cfg.GravityMinDistance
		}
		magnitude = well.Strength / math.Pow(d, cfg.GravityFalloffPower)
	}

	b.AX += dx / dist * magnitude
	b.AY += dy / dist * magnitude
	return true
}

// UpdateWellDrift advances a drifting well one tick: a bounded random-walk
// nudge to velocity, position integration, and reflection at the arena
// wall. Drift is independent of the gravity model; wells do not pull on
// each other.
func UpdateWellDrift(well *Body, rng *rand.Rand, cfg *Config) {
	if !well.Drifts {
		return
	}

	well.VX += (rng.Float64()*2 - 1) * cfg.WellDriftAccel
	well.VY += (rng.Float64()*2 - 1) * cfg.WellDriftAccel

	speed := math.Hypot(well.VX, well.VY)
	if speed > cfg.WellDriftMaxSpeed {
		scale := cfg.WellDriftMaxSpeed / speed
		well.VX *= scale
		well.VY *= scale
	}

	newX := well.X + well.VX
	newY := well.Y + well.VY
	outside, cx, cy, nx, ny := CircularBoundary(newX, newY, well.Radius, cfg.ArenaRadius)
	if outside {
		well.X = cx
		well.Y = cy
		// Full reflection; the drift walk keeps the well inside the arena
		// without bleeding energy the walk would just add back.
		well.VX, well.VY = ReflectVelocity(well.VX, well.VY, nx, ny, 1.0)
	} else {
		well.X = newX
		well.Y = newY
	}
}

// AdvanceWellPulse steps the cosmetic pulse-phase timer. The phase cycles on
// a fixed period and feeds rendering only; it is never a physics input.
func AdvanceWellPulse(well *Body, cfg *Config) {
	well.PulsePhase++
	if well.PulsePhase >= cfg.WellPulsePeriodTicks {
		well.PulsePhase = 0
	}
}

// PulseIntensity maps a pulse phase to a smooth periodic intensity in [0,1].
func PulseIntensity(phase, period int) float64 {
	if period <= 0 {
		return 0
	}
	t := float64(phase) / float64(period)
	return (1 - math.Cos(2*math.Pi*t)) / 2
}
