package game

import "math"

// BodyKind discriminates the tagged-variant body type. Collision dispatch
// and rendering both switch on kind pairs instead of probing for fields.
type BodyKind int

const (
	KindPlayer BodyKind = iota
	KindFreeObject
	KindProjectile
	KindWell
	KindScoringZone
)

func (k BodyKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindFreeObject:
		return "object"
	case KindProjectile:
		return "projectile"
	case KindWell:
		return "well"
	case KindScoringZone:
		return "zone"
	default:
		return "unknown"
	}
}

// BodyRef identifies a body within the engine's fixed collections:
// players by seat index, the free object at index 0, projectiles by pool
// slot, wells and zones by their list index.
type BodyRef struct {
	Kind BodyKind
	Idx  int
}

// Body is the shared entity representation. All kinds carry the kinematic
// block; kind-specific fields are meaningful only for their kind and stay
// zero otherwise. The engine is the single owner of all Body state.
type Body struct {
	Kind BodyKind

	// Kinematic state
	X, Y       float64
	VX, VY     float64
	Angle      float64
	AngularVel float64
	AX, AY     float64 // acceleration accumulated for the current tick
	Mass       float64
	Inertia    float64

	// Collision extents. Radius is the bounding circle for every kind;
	// HalfW/HalfH are set only for the rectangular free object.
	Radius float64
	HalfW  float64
	HalfH  float64

	Active bool

	// Cosmetic pulse (collision flash, damage flash). Not a physics input.
	PulseTimer int

	// Player fields
	Seat           int // 0 or 1; -1 for non-players
	HitPoints      int
	Score          int
	InvulnTicks    int
	DamageCooldown int
	FireCooldown   int

	// Projectile fields
	Owner   int // seat of the firing player; -1 otherwise
	Bounces int // boundary/object bounces remaining
	TTL     int // ticks remaining before expiry

	// Well fields
	FieldRadius float64
	Strength    float64
	Regime      GravityRegime
	Drifts      bool
	PulsePhase  int // tick counter into the pulse period

	// Zone fields
	ZoneSeat int // seat that scores when the object parks here; -1 otherwise
}

// NewPlayerBody creates one player's body at its spawn position.
func NewPlayerBody(cfg *Config, seat int) Body {
	x := cfg.GoalDistance
	if seat == 1 {
		x = -cfg.GoalDistance
	}
	return Body{
		Kind:      KindPlayer,
		X:         x,
		Y:         0,
		Mass:      cfg.PlayerMass,
		Radius:    cfg.PlayerRadius,
		Active:    true,
		Seat:      seat,
		HitPoints: cfg.InitialHitPoints,
		Owner:     -1,
		ZoneSeat:  -1,
	}
}

// RespawnPlayer resets a player's kinematic and combat state in place.
// Score survives; everything else returns to spawn values.
func RespawnPlayer(b *Body, cfg *Config) {
	score := b.Score
	*b = NewPlayerBody(cfg, b.Seat)
	b.Score = score
	b.InvulnTicks = cfg.RespawnInvulnTicks
}

// NewFreeObject creates the cube at the arena center.
func NewFreeObject(cfg *Config) Body {
	half := cfg.ObjectSize / 2
	return Body{
		Kind:     KindFreeObject,
		Mass:     cfg.ObjectMass,
		Radius:   cfg.ObjectCornerRadius(),
		HalfW:    half,
		HalfH:    half,
		Inertia:  MomentOfInertia(cfg.MomentOfInertiaFactor, cfg.ObjectMass, cfg.ObjectSize),
		Active:   true,
		Seat:     -1,
		Owner:    -1,
		ZoneSeat: -1,
	}
}

// ResetFreeObject returns the cube to the center after a score, dropping all
// momentum and spin.
func ResetFreeObject(b *Body, cfg *Config) {
	*b = NewFreeObject(cfg)
}

// NewProjectileBody builds the initial state for a pool slot. The caller
// supplies position and velocity; everything else comes from config.
func NewProjectileBody(cfg *Config, x, y, vx, vy float64, owner int) Body {
	return Body{
		Kind:     KindProjectile,
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		Mass:     cfg.ProjectileMass,
		Radius:   cfg.ProjectileRadius,
		Active:   true,
		Seat:     -1,
		Owner:    owner,
		Bounces:  cfg.ProjectileMaxBounces,
		TTL:      cfg.ProjectileLifeTicks,
		ZoneSeat: -1,
	}
}

// NewWell creates a gravity well. visibleRadius may be zero for a well with
// no solid core; the field then falls back to the minimum-distance extent
// instead of visibleRadius times the multiplier.
func NewWell(cfg *Config, x, y, visibleRadius, strength float64, regime GravityRegime, drifts bool) Body {
	field := visibleRadius * cfg.FieldRadiusMultiplier
	if field <= 0 {
		field = cfg.GravityMinDistance * cfg.FieldRadiusMultiplier
	}
	return Body{
		Kind:        KindWell,
		X:           x,
		Y:           y,
		Mass:        math.Inf(1),
		Radius:      visibleRadius,
		Active:      true,
		Seat:        -1,
		Owner:       -1,
		FieldRadius: field,
		Strength:    strength,
		Regime:      regime,
		Drifts:      drifts,
		ZoneSeat:    -1,
	}
}

// NewScoringZone creates one player's goal circle.
func NewScoringZone(cfg *Config, seat int) Body {
	x := -cfg.GoalDistance
	if seat == 1 {
		x = cfg.GoalDistance
	}
	return Body{
		Kind:     KindScoringZone,
		X:        x,
		Y:        0,
		Radius:   cfg.GoalRadius,
		Active:   true,
		Seat:     -1,
		Owner:    -1,
		ZoneSeat: seat,
	}
}

// Speed returns the magnitude of the body's velocity.
func (b *Body) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// DistanceTo returns the center distance to another body.
func (b *Body) DistanceTo(o *Body) float64 {
	dx := o.X - b.X
	dy := o.Y - b.Y
	return math.Hypot(dx, dy)
}

// Overlaps reports whether two bounding circles overlap.
func (b *Body) Overlaps(o *Body) bool {
	dx := o.X - b.X
	dy := o.Y - b.Y
	sum := b.Radius + o.Radius
	return dx*dx+dy*dy <= sum*sum
}

// Movable reports whether the integrator advances this kind.
func (b *Body) Movable() bool {
	switch b.Kind {
	case KindPlayer, KindFreeObject, KindProjectile:
		return true
	default:
		return false
	}
}

// sanitize clamps a freshly created body to sane ranges. Positions outside
// the arena or non-finite values from an upstream bug are pulled back so a
// bad body cannot poison the rest of the simulation.
func sanitize(b *Body, cfg *Config) {
	if math.IsNaN(b.X) || math.IsInf(b.X, 0) {
		b.X = 0
	}
	if math.IsNaN(b.Y) || math.IsInf(b.Y, 0) {
		b.Y = 0
	}
	if math.IsNaN(b.VX) || math.IsInf(b.VX, 0) {
		b.VX = 0
	}
	if math.IsNaN(b.VY) || math.IsInf(b.VY, 0) {
		b.VY = 0
	}
	if b.Radius <= 0 && b.Kind != KindWell {
		b.Radius = 1
	}
	if d := math.Hypot(b.X, b.Y); d > cfg.ArenaRadius {
		scale := cfg.ArenaRadius / d
		b.X *= scale
		b.Y *= scale
	}
}
