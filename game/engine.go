package game

import (
	"fmt"
	"math"
	"math/rand"
)

// PlayerIntent is one seat's input for a tick, already abstracted away from
// any device: a movement direction (each axis in [-1, 1], magnitude clamped
// to 1 by the input layer) and a fire edge.
type PlayerIntent struct {
	MoveX float64
	MoveY float64
	Fire  bool
}

// Engine owns all simulation state and advances it one logical tick at a
// time. It knows nothing about windows, input devices, or rendering; the
// only ways in are Step's intents and the only way out is Snapshot.
type Engine struct {
	cfg *Config

	players [2]Body
	object  Body
	wells   []Body
	zones   []Body

	pool     *ProjectilePool
	grid     *SpatialGrid
	perf     *PerfController
	resolver *Resolver
	tracker  *ScoreTracker

	rng  *rand.Rand
	tick uint64

	movables []BodyRef // reused across ticks
	events   []GameEvent
}

// NewEngine validates the config and builds the full starting state: both
// players at their spawns, the cube at the center, the drifting black hole,
// the invisible center well, one constant-pull well under each goal, and
// both scoring zones.
func NewEngine(cfg Config, seed int64) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:  &cfg,
		pool: NewProjectilePool(cfg.ProjectilePoolSize),
		grid: NewSpatialGrid(cfg.ArenaRadius, cfg.BaseCellSize),
		perf: NewPerfController(&cfg),
		rng:  rand.New(rand.NewSource(seed)),
	}
	e.tracker = NewScoreTracker(&cfg)
	e.resolver = NewResolver(e)

	e.players[0] = NewPlayerBody(&cfg, 0)
	e.players[1] = NewPlayerBody(&cfg, 1)
	e.object = NewFreeObject(&cfg)

	e.zones = []Body{
		NewScoringZone(&cfg, 0),
		NewScoringZone(&cfg, 1),
	}

	e.wells = append(e.wells,
		NewWell(&cfg, 0, 0, cfg.WellRadius, cfg.GravityStrength, cfg.DefaultRegime, true))
	// The black hole drifts away; an invisible static well keeps a weaker
	// pull anchored at the arena center.
	center := NewWell(&cfg, 0, 0, 0, cfg.CenterPullStrength, cfg.DefaultRegime, false)
	center.FieldRadius = cfg.CenterFieldRadius
	e.wells = append(e.wells, center)
	for i := range e.zones {
		z := &e.zones[i]
		w := NewWell(&cfg, z.X, z.Y, 0, cfg.GoalWellStrength, RegimeConstant, false)
		w.FieldRadius = cfg.GoalRadius * cfg.GoalFieldMultiplier
		e.wells = append(e.wells, w)
	}

	for i := range e.players {
		sanitize(&e.players[i], &cfg)
	}
	sanitize(&e.object, &cfg)
	return e, nil
}

// Config returns the engine's validated configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// Tick returns the number of completed ticks.
func (e *Engine) Tick() uint64 {
	return e.tick
}

// bodyAt resolves a reference into the engine's collections. Projectile
// refs to inactive slots resolve to nil.
func (e *Engine) bodyAt(ref BodyRef) *Body {
	switch ref.Kind {
	case KindPlayer:
		if ref.Idx < 0 || ref.Idx >= len(e.players) {
			return nil
		}
		return &e.players[ref.Idx]
	case KindFreeObject:
		return &e.object
	case KindProjectile:
		return e.pool.At(ref.Idx)
	case KindWell:
		if ref.Idx < 0 || ref.Idx >= len(e.wells) {
			return nil
		}
		return &e.wells[ref.Idx]
	case KindScoringZone:
		if ref.Idx < 0 || ref.Idx >= len(e.zones) {
			return nil
		}
		return &e.zones[ref.Idx]
	}
	return nil
}

// movableRefs rebuilds and returns the list of bodies the integrator and
// resolver operate on this tick.
func (e *Engine) movableRefs() []BodyRef {
	e.movables = e.movables[:0]
	for i := range e.players {
		e.movables = append(e.movables, BodyRef{Kind: KindPlayer, Idx: i})
	}
	e.movables = append(e.movables, BodyRef{Kind: KindFreeObject})
	e.pool.ForEachActive(func(idx int, _ *Body) {
		e.movables = append(e.movables, BodyRef{Kind: KindProjectile, Idx: idx})
	})
	return e.movables
}

// Step advances the simulation one tick: performance update, input and
// firing, gravity, integration, broad+narrow phase collision, boundary
// containment, scoring, and pool reclaim, in that order. frameSeconds is
// the achieved wall time of the previous frame and feeds only the
// performance controller, never the physics.
func (e *Engine) Step(intents [2]PlayerIntent, frameSeconds float64) {
	e.tick++

	e.perf.RecordFrame(frameSeconds)
	if e.perf.Update() {
		s := e.perf.Settings()
		e.grid.Resize(e.cfg.ArenaRadius, e.cfg.BaseCellSize*s.CellScale)
		e.pool.SetCeiling(s.PoolCeiling)
	}
	settings := e.perf.Settings()
	policy := PolicyFor(e.tick, e.perf.Mode())

	e.stepTimers()
	e.applyIntents(intents)
	e.stepWells(policy)
	e.applyGravity(policy)
	e.integrate()

	e.grid.Clear()
	refs := e.movableRefs()
	for _, ref := range refs {
		b := e.bodyAt(ref)
		if b != nil && b.Active {
			e.grid.InsertCircle(b.X, b.Y, b.Radius, ref)
		}
	}

	contacts := e.resolver.Resolve(settings.SearchReach)
	e.processContacts(contacts)
	e.containMovables()

	e.tracker.UpdateZones(e.zones, &e.object, &e.players, e.tick)

	e.pool.ReleaseExpired(func(b *Body) bool {
		return b.TTL <= 0
	})

	e.events = append(e.events[:0], e.tracker.DrainEvents()...)
}

// stepTimers decrements all per-body tick counters.
func (e *Engine) stepTimers() {
	for i := range e.players {
		p := &e.players[i]
		if p.InvulnTicks > 0 {
			p.InvulnTicks--
		}
		if p.DamageCooldown > 0 {
			p.DamageCooldown--
		}
		if p.FireCooldown > 0 {
			p.FireCooldown--
		}
		if p.PulseTimer > 0 {
			p.PulseTimer--
		}
	}
	if e.object.PulseTimer > 0 {
		e.object.PulseTimer--
	}
	e.pool.ForEachActive(func(_ int, b *Body) {
		if b.TTL > 0 {
			b.TTL--
		}
	})
}

// applyIntents turns seat intents into per-tick acceleration and handles
// firing.
func (e *Engine) applyIntents(intents [2]PlayerIntent) {
	for seat := range e.players {
		p := &e.players[seat]
		in := intents[seat]

		mag := math.Hypot(in.MoveX, in.MoveY)
		if mag > 1 {
			in.MoveX /= mag
			in.MoveY /= mag
		}
		p.AX += in.MoveX * e.cfg.Acceleration
		p.AY += in.MoveY * e.cfg.Acceleration
		if mag > 0 {
			p.Angle = math.Atan2(in.MoveY, in.MoveX)
		}

		if in.Fire && p.FireCooldown == 0 {
			if e.fireProjectile(p) {
				p.FireCooldown = e.cfg.FireCooldownTicks
			}
		}
	}
}

// fireProjectile spawns a shot from the pool, aimed along the player's
// velocity when moving and along the facing angle when at rest. Pool
// exhaustion drops the shot without consuming the cooldown.
func (e *Engine) fireProjectile(p *Body) bool {
	dirX := math.Cos(p.Angle)
	dirY := math.Sin(p.Angle)
	if sp := p.Speed(); sp > 0.01 {
		dirX = p.VX / sp
		dirY = p.VY / sp
	}

	speed := e.cfg.ProjectileMinSpeed + p.Speed()
	offset := p.Radius + e.cfg.ProjectileRadius + 1
	init := NewProjectileBody(e.cfg,
		p.X+dirX*offset, p.Y+dirY*offset,
		dirX*speed, dirY*speed,
		p.Seat)

	_, ok := e.pool.Acquire(init)
	return ok
}

// stepWells advances well drift and the cosmetic pulse.
func (e *Engine) stepWells(policy TickPolicy) {
	for i := range e.wells {
		w := &e.wells[i]
		AdvanceWellPulse(w, e.cfg)
		if policy.WellDrift {
			UpdateWellDrift(w, e.rng, e.cfg)
		}
	}
}

// applyGravity accumulates every well's pull into each movable's tick
// acceleration. Overlapping fields superpose.
func (e *Engine) applyGravity(policy TickPolicy) {
	pull := func(b *Body) {
		for i := range e.wells {
			WellPull(&e.wells[i], b, e.cfg)
		}
	}
	for i := range e.players {
		pull(&e.players[i])
	}
	pull(&e.object)
	if policy.ProjectileGravity {
		e.pool.ForEachActive(func(_ int, b *Body) {
			pull(b)
		})
	}
}

// integrate advances every movable body one tick and resets its
// acceleration accumulator.
func (e *Engine) integrate() {
	for i := range e.players {
		p := &e.players[i]
		p.VX, p.VY = IntegrateLinear(p.VX, p.VY, p.AX, p.AY, e.cfg.Deceleration, e.cfg.MaxSpeed)
		p.X += p.VX
		p.Y += p.VY
		p.AX, p.AY = 0, 0
	}

	o := &e.object
	o.VX, o.VY = IntegrateLinear(o.VX, o.VY, o.AX, o.AY, e.cfg.ObjectFriction, e.cfg.MaxSpeed)
	o.X += o.VX
	o.Y += o.VY
	o.AX, o.AY = 0, 0
	o.AngularVel = IntegrateAngular(o.AngularVel,
		e.cfg.AngularFriction, e.cfg.MaxAngularVelocity, e.cfg.AngularStopEpsilon)
	o.Angle += o.AngularVel

	e.pool.ForEachActive(func(_ int, b *Body) {
		// Projectiles carry no friction; they die by TTL or bounces.
		b.VX, b.VY = IntegrateLinear(b.VX, b.VY, b.AX, b.AY, 1.0, e.cfg.MaxSpeed+e.cfg.ProjectileMinSpeed)
		b.X += b.VX
		b.Y += b.VY
		b.AX, b.AY = 0, 0
	})
}

// processContacts applies gameplay consequences to the resolver's physical
// contacts: projectile damage and bounce budgets, and ram damage for
// player-player hits.
func (e *Engine) processContacts(contacts []Contact) {
	for _, c := range contacts {
		if c.A.Kind == KindPlayer && c.B.Kind == KindPlayer {
			e.tracker.PlayerContact(e.bodyAt(c.A), e.bodyAt(c.B), e.tick)
			continue
		}
		e.consumeProjectileContact(c.A, c.B)
		e.consumeProjectileContact(c.B, c.A)
	}
}

func (e *Engine) consumeProjectileContact(ref, otherRef BodyRef) {
	if ref.Kind != KindProjectile {
		return
	}
	proj := e.pool.At(ref.Idx)
	if proj == nil {
		return
	}
	other := e.bodyAt(otherRef)
	if other == nil {
		return
	}

	switch other.Kind {
	case KindPlayer:
		if other.Seat == proj.Owner {
			// Own shots pass through physically resolved but never despawn
			// on their firer.
			return
		}
		e.tracker.ProjectileHit(proj, other, e.tick)
		e.pool.ReleaseIndex(ref.Idx)
	default:
		// Bouncing off the object, a well core, or another projectile
		// spends one bounce.
		proj.Bounces--
		if proj.Bounces < 0 {
			e.pool.ReleaseIndex(ref.Idx)
		}
	}
}

// containMovables keeps every movable inside the arena wall. Players take
// wall-impact damage; projectile wall bounces spend from the bounce budget.
func (e *Engine) containMovables() {
	for i := range e.players {
		if resolveBoundary(&e.players[i], e.cfg) {
			e.tracker.BoundaryHit(&e.players[i], e.tick)
		}
	}
	resolveBoundary(&e.object, e.cfg)
	e.pool.ForEachActive(func(idx int, b *Body) {
		if resolveBoundary(b, e.cfg) {
			b.Bounces--
			if b.Bounces < 0 {
				e.pool.ReleaseIndex(idx)
			}
		}
	})
}
