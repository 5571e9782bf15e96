package game

// EventKind discriminates the gameplay events a tick can emit.
type EventKind int

const (
	EventDamage EventKind = iota
	EventDefeat
	EventScore
)

func (k EventKind) String() string {
	switch k {
	case EventDamage:
		return "damage"
	case EventDefeat:
		return "defeat"
	case EventScore:
		return "score"
	}
	return "unknown"
}

// GameEvent records something that happened during a tick: a player taking
// damage, a defeat and respawn, or a goal being scored.
type GameEvent struct {
	Kind   EventKind
	Seat   int // player the event happened to (damage/defeat) or who scored
	Points int // awarded points, EventScore only
	Tick   uint64
}

// ScoreTracker owns the scoring and damage rules: consecutive-overlap goal
// detection, hit point accounting with cooldowns, and the per-tick event
// list the engine surfaces in its snapshot.
type ScoreTracker struct {
	cfg     *Config
	overlap [2]int // consecutive ticks the object has sat fully inside each zone
	events  []GameEvent
}

// NewScoreTracker creates a tracker with empty overlap counters.
func NewScoreTracker(cfg *Config) *ScoreTracker {
	return &ScoreTracker{cfg: cfg}
}

// DrainEvents returns the events accumulated since the last drain and
// clears the list. The returned slice is only valid until the next tick.
func (t *ScoreTracker) DrainEvents() []GameEvent {
	ev := t.events
	t.events = t.events[:0]
	return ev
}

// applyDamage deducts hit points from a player if neither the respawn
// invulnerability nor the damage cooldown gates the hit. Depletion emits a
// defeat event and resets the player to spawn in place. Returns true when
// the player was defeated.
func (t *ScoreTracker) applyDamage(target *Body, tick uint64) bool {
	if target.Kind != KindPlayer {
		return false
	}
	if target.InvulnTicks > 0 || target.DamageCooldown > 0 {
		return false
	}

	target.HitPoints -= t.cfg.ContactDamage
	target.DamageCooldown = t.cfg.DamageCooldownTicks
	target.PulseTimer = t.cfg.PulseTicks
	t.events = append(t.events, GameEvent{Kind: EventDamage, Seat: target.Seat, Tick: tick})

	if target.HitPoints > 0 {
		return false
	}
	t.events = append(t.events, GameEvent{Kind: EventDefeat, Seat: target.Seat, Tick: tick})
	RespawnPlayer(target, t.cfg)
	return true
}

// ProjectileHit applies one projectile strike to a player. Self hits never
// damage the firer, regardless of the geometric result; hits during
// respawn invulnerability or the damage cooldown land physically but deal
// nothing. Returns true when the player was defeated and respawned.
func (t *ScoreTracker) ProjectileHit(proj, target *Body, tick uint64) bool {
	if target.Kind != KindPlayer || proj.Kind != KindProjectile {
		return false
	}
	if proj.Owner == target.Seat {
		return false
	}
	return t.applyDamage(target, tick)
}

// PlayerContact applies ram damage to both players of a player-player
// collision, each gated by their own cooldowns.
func (t *ScoreTracker) PlayerContact(a, b *Body, tick uint64) {
	if a.Kind != KindPlayer || b.Kind != KindPlayer {
		return
	}
	t.applyDamage(a, tick)
	t.applyDamage(b, tick)
}

// BoundaryHit applies wall-impact damage to a player.
func (t *ScoreTracker) BoundaryHit(target *Body, tick uint64) bool {
	return t.applyDamage(target, tick)
}

// UpdateZones advances the goal-overlap counters. The free object scores
// for a zone's owner once it has been fully contained in that zone's circle
// for ScoreOverlapTicks consecutive ticks; any tick outside resets the
// counter to zero. A score resets the object to the arena center and
// clears both counters.
func (t *ScoreTracker) UpdateZones(zones []Body, object *Body, players *[2]Body, tick uint64) {
	for i := range zones {
		z := &zones[i]
		seat := z.ZoneSeat
		if seat < 0 || seat >= len(players) {
			continue
		}
		if fullyInside(object, z) {
			t.overlap[seat]++
		} else {
			t.overlap[seat] = 0
			continue
		}
		if t.overlap[seat] < t.cfg.ScoreOverlapTicks {
			continue
		}
		players[seat].Score += t.cfg.ScorePoints
		t.events = append(t.events, GameEvent{
			Kind:   EventScore,
			Seat:   seat,
			Points: t.cfg.ScorePoints,
			Tick:   tick,
		})
		ResetFreeObject(object, t.cfg)
		t.overlap[0] = 0
		t.overlap[1] = 0
		return
	}
}

// OverlapTicks reports the current consecutive-overlap count for a seat's
// zone. Diagnostic accessor used by the snapshot.
func (t *ScoreTracker) OverlapTicks(seat int) int {
	if seat < 0 || seat >= len(t.overlap) {
		return 0
	}
	return t.overlap[seat]
}

// fullyInside reports whether the object's bounding circle sits entirely
// within the zone circle. Containment, not mere intersection.
func fullyInside(object, zone *Body) bool {
	return object.DistanceTo(zone)+object.Radius <= zone.Radius
}
