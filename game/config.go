package game

import (
	"fmt"
	"math"
)

// GravityRegime selects the force law a gravity well uses inside its field.
type GravityRegime int

const (
	// RegimeFalloff pulls harder near the well center:
	// F = strength / max(dist, minDist)^power
	RegimeFalloff GravityRegime = iota

	// RegimeConstant applies the same pull magnitude everywhere inside the
	// field radius. Used for the enhanced well variant.
	RegimeConstant
)

// Config holds every tunable parameter of the simulation. It is built once
// in main, validated before the first tick, and passed down explicitly; there
// is no ambient global state. The performance controller owns the live
// adjustable subset (cell size, search reach, pool ceiling) at runtime.
type Config struct {
	ScreenWidth  int
	ScreenHeight int

	// ArenaRadius is the circular wall every movable body is contained in.
	ArenaRadius float64
	GridSpacing float64 // background dot spacing, rendering only

	// Player physics
	PlayerRadius float64
	PlayerMass   float64
	Acceleration float64 // intent-driven acceleration per tick
	Deceleration float64 // friction factor applied to velocity each tick
	MaxSpeed     float64

	// Player combat
	InitialHitPoints    int
	ContactDamage       int
	DamageCooldownTicks int // minimum ticks between HP deductions per player
	FireCooldownTicks   int // minimum ticks between shots per player
	RespawnInvulnTicks  int
	PulseTicks          int // duration of the cosmetic damage pulse

	// Free object (the cube)
	ObjectSize     float64 // side length
	ObjectMass     float64
	ObjectFriction float64

	// Rotation
	AngularFriction       float64
	MaxAngularVelocity    float64
	AngularStopEpsilon    float64 // below this, spin snaps to exactly zero
	MomentOfInertiaFactor float64

	// Collision response
	Restitution  float64 // body-body impulse scaling
	BounceFactor float64 // boundary reflection energy retention

	// Projectiles
	ProjectileRadius     float64
	ProjectileMass       float64
	ProjectileMinSpeed   float64
	ProjectilePoolSize   int
	ProjectileMaxBounces int
	ProjectileLifeTicks  int

	// Gravity wells
	GravityStrength       float64
	GravityFalloffPower   float64
	GravityMinDistance    float64 // falloff divisor floor, keeps force finite
	FieldRadiusMultiplier float64 // field radius = visible radius * this
	DefaultRegime         GravityRegime
	WellRadius            float64 // visible core radius of the black hole
	GoalWellStrength      float64 // constant pull inside a goal's field
	GoalFieldMultiplier   float64 // goal field radius = goal radius * this
	CenterPullStrength    float64 // invisible static well at the arena center
	CenterFieldRadius     float64
	WellDriftAccel        float64 // per-tick random nudge on the drifting well
	WellDriftMaxSpeed     float64
	WellPulsePeriodTicks  int

	// Scoring zones
	GoalRadius        float64
	GoalDistance      float64 // from arena center, along the x axis
	ScoreOverlapTicks int     // consecutive full-containment ticks to score
	ScorePoints       int

	// Spatial index
	BaseCellSize      float64
	DegradedCellScale float64 // cell size multiplier in degraded mode

	// Performance controller
	LowFPSThreshold     float64 // enter degraded below this
	HighFPSThreshold    float64 // return to normal above this
	PerfWindowTicks     int     // rolling average window
	PerfCooldownTicks   int     // suppress re-transition after a switch
	DegradedPoolCeiling int
}

// DefaultConfig returns the tuning the game ships with.
func DefaultConfig() Config {
	return Config{
		ScreenWidth:  1600,
		ScreenHeight: 800,

		ArenaRadius: 1000.0,
		GridSpacing: 30.0,

		PlayerRadius: 5.0,
		PlayerMass:   5.0,
		Acceleration: 0.1,
		Deceleration: 0.99,
		MaxSpeed:     60.0,

		InitialHitPoints:    10,
		ContactDamage:       1,
		DamageCooldownTicks: 30,
		FireCooldownTicks:   15,
		RespawnInvulnTicks:  60,
		PulseTicks:          20,

		ObjectSize:     50.0,
		ObjectMass:     5.0,
		ObjectFriction: 0.995,

		AngularFriction:       0.98,
		MaxAngularVelocity:    5.0,
		AngularStopEpsilon:    0.01,
		MomentOfInertiaFactor: 0.5,

		Restitution:  0.8,
		BounceFactor: 0.6,

		ProjectileRadius:     2.0,
		ProjectileMass:       5.0,
		ProjectileMinSpeed:   5.0,
		ProjectilePoolSize:   20,
		ProjectileMaxBounces: 3,
		ProjectileLifeTicks:  300,

		GravityStrength:       25.0,
		GravityFalloffPower:   1.5,
		GravityMinDistance:    10.0,
		FieldRadiusMultiplier: 9.0,
		DefaultRegime:         RegimeFalloff,
		WellRadius:            20.0,
		GoalWellStrength:      0.02,
		GoalFieldMultiplier:   3.0,
		CenterPullStrength:    12.5,
		CenterFieldRadius:     376.0,
		WellDriftAccel:        0.05,
		WellDriftMaxSpeed:     1.5,
		WellPulsePeriodTicks:  120,

		GoalRadius:        94.0,
		GoalDistance:      800.0,
		ScoreOverlapTicks: 30,
		ScorePoints:       2,

		BaseCellSize:      100.0,
		DegradedCellScale: 1.5,

		LowFPSThreshold:     40.0,
		HighFPSThreshold:    50.0,
		PerfWindowTicks:     30,
		PerfCooldownTicks:   60,
		DegradedPoolCeiling: 10,
	}
}

// Validate rejects configurations the simulation cannot run with. It is
// called before the first tick; the engine must never start with an
// undefined max speed, zero-sized bodies, or inverted thresholds.
func (c Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.ArenaRadius > 0, "arena radius must be positive"},
		{c.PlayerRadius > 0, "player radius must be positive"},
		{c.PlayerMass > 0, "player mass must be positive"},
		{c.MaxSpeed > 0, "max speed must be positive"},
		{c.Deceleration > 0 && c.Deceleration <= 1, "deceleration must be in (0, 1]"},
		{c.ObjectSize > 0, "object size must be positive"},
		{c.ObjectMass > 0, "object mass must be positive"},
		{c.ObjectFriction > 0 && c.ObjectFriction <= 1, "object friction must be in (0, 1]"},
		{c.AngularFriction > 0 && c.AngularFriction <= 1, "angular friction must be in (0, 1]"},
		{c.MaxAngularVelocity > 0, "max angular velocity must be positive"},
		{c.AngularStopEpsilon > 0, "angular stop epsilon must be positive"},
		{c.MomentOfInertiaFactor > 0, "moment of inertia factor must be positive"},
		{c.Restitution >= 0 && c.Restitution <= 1, "restitution must be in [0, 1]"},
		{c.BounceFactor >= 0 && c.BounceFactor <= 1, "bounce factor must be in [0, 1]"},
		{c.ProjectileRadius > 0, "projectile radius must be positive"},
		{c.ProjectileMass > 0, "projectile mass must be positive"},
		{c.ProjectilePoolSize > 0, "projectile pool size must be positive"},
		{c.ProjectileLifeTicks > 0, "projectile life must be positive"},
		{c.GravityFalloffPower > 0, "gravity falloff power must be positive"},
		{c.GravityMinDistance > 0, "gravity min distance must be positive"},
		{c.FieldRadiusMultiplier >= 1, "field radius multiplier must be >= 1"},
		{c.WellRadius >= 0, "well radius must not be negative"},
		{c.GoalFieldMultiplier >= 1, "goal field multiplier must be >= 1"},
		{c.CenterPullStrength >= 0, "center pull strength must not be negative"},
		{c.CenterFieldRadius > 0, "center field radius must be positive"},
		{c.GoalRadius > 0, "goal radius must be positive"},
		{c.GoalDistance < c.ArenaRadius, "goal distance must be inside the arena"},
		{c.ScoreOverlapTicks > 0, "score overlap ticks must be positive"},
		{c.BaseCellSize > 0, "base cell size must be positive"},
		{c.DegradedCellScale >= 1, "degraded cell scale must be >= 1"},
		{c.LowFPSThreshold > 0, "low FPS threshold must be positive"},
		{c.HighFPSThreshold > c.LowFPSThreshold, "high FPS threshold must exceed low threshold"},
		{c.PerfWindowTicks > 0, "perf window must be positive"},
		{c.DegradedPoolCeiling > 0 && c.DegradedPoolCeiling <= c.ProjectilePoolSize,
			"degraded pool ceiling must be in (0, pool size]"},
		{c.InitialHitPoints > 0, "initial hit points must be positive"},
		{!math.IsNaN(c.GravityStrength), "gravity strength must be a number"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("invalid config: %s", chk.msg)
		}
	}
	return nil
}

// ObjectCornerRadius is the distance from the cube's center to a corner,
// used for boundary containment and full-containment checks.
func (c Config) ObjectCornerRadius() float64 {
	half := c.ObjectSize / 2
	return math.Sqrt(half*half + half*half)
}
