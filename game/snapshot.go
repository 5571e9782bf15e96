package game

// The snapshot types are the engine's read-only output surface. Renderers,
// overlays, and tests consume these; nothing outside the engine touches a
// Body directly.

// PlayerView is one player's renderable state.
type PlayerView struct {
	X, Y         float64
	Angle        float64
	Radius       float64
	HitPoints    int
	Score        int
	Invulnerable bool
	Pulse        float64 // damage/collision flash intensity in [0, 1]
}

// ObjectView is the free object's renderable state.
type ObjectView struct {
	X, Y  float64
	Angle float64
	Half  float64 // half the side length
	Pulse float64
}

// ProjectileView is one live projectile.
type ProjectileView struct {
	X, Y   float64
	Radius float64
	Owner  int
}

// WellView is one gravity well.
type WellView struct {
	X, Y        float64
	Radius      float64 // visible core, 0 for the goal wells
	FieldRadius float64
	Pulse       float64 // periodic pulse intensity in [0, 1]
}

// ZoneView is one scoring zone, with the capture progress toward a score.
type ZoneView struct {
	X, Y     float64
	Radius   float64
	Seat     int
	Progress float64 // consecutive-overlap fraction in [0, 1]
}

// Snapshot is the full tick-boundary view of the simulation.
type Snapshot struct {
	Tick        uint64
	Players     [2]PlayerView
	Object      ObjectView
	Projectiles []ProjectileView
	Wells       []WellView
	Zones       []ZoneView
	Perf        PerfSnapshot
	Events      []GameEvent
}

// Snapshot builds the current view. Call between Step calls; the engine is
// single-threaded by contract and the returned value shares no memory with
// live state except the Events slice, which is valid until the next Step.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{Tick: e.tick}

	for i := range e.players {
		p := &e.players[i]
		s.Players[i] = PlayerView{
			X:            p.X,
			Y:            p.Y,
			Angle:        p.Angle,
			Radius:       p.Radius,
			HitPoints:    p.HitPoints,
			Score:        p.Score,
			Invulnerable: p.InvulnTicks > 0,
			Pulse:        pulseFraction(p.PulseTimer, e.cfg.PulseTicks),
		}
	}

	s.Object = ObjectView{
		X:     e.object.X,
		Y:     e.object.Y,
		Angle: e.object.Angle,
		Half:  e.object.HalfW,
		Pulse: pulseFraction(e.object.PulseTimer, e.cfg.PulseTicks),
	}

	s.Projectiles = make([]ProjectileView, 0, e.pool.ActiveCount())
	e.pool.ForEachActive(func(_ int, b *Body) {
		s.Projectiles = append(s.Projectiles, ProjectileView{
			X: b.X, Y: b.Y, Radius: b.Radius, Owner: b.Owner,
		})
	})

	s.Wells = make([]WellView, len(e.wells))
	for i := range e.wells {
		w := &e.wells[i]
		s.Wells[i] = WellView{
			X:           w.X,
			Y:           w.Y,
			Radius:      w.Radius,
			FieldRadius: w.FieldRadius,
			Pulse:       PulseIntensity(w.PulsePhase, e.cfg.WellPulsePeriodTicks),
		}
	}

	s.Zones = make([]ZoneView, len(e.zones))
	for i := range e.zones {
		z := &e.zones[i]
		s.Zones[i] = ZoneView{
			X:        z.X,
			Y:        z.Y,
			Radius:   z.Radius,
			Seat:     z.ZoneSeat,
			Progress: float64(e.tracker.OverlapTicks(z.ZoneSeat)) / float64(e.cfg.ScoreOverlapTicks),
		}
	}

	bodies := 3 + e.pool.ActiveCount() + len(e.wells) + len(e.zones)
	s.Perf = e.perf.Snapshot(e.pool.ActiveCount(), bodies)
	s.Events = e.events
	return s
}

func pulseFraction(timer, total int) float64 {
	if total <= 0 || timer <= 0 {
		return 0
	}
	f := float64(timer) / float64(total)
	if f > 1 {
		return 1
	}
	return f
}
