package game

// PerfMode is the performance controller's state.
type PerfMode int

const (
	ModeNormal PerfMode = iota
	ModeDegraded
)

func (m PerfMode) String() string {
	if m == ModeDegraded {
		return "degraded"
	}
	return "normal"
}

// PerfSettings is what the controller hands the rest of the engine for the
// current tick: grid cell scale, collision search reach, pool ceiling, and a
// flag downstream renderers use to thin visual density.
type PerfSettings struct {
	CellScale    float64
	SearchReach  int // 1 = 3x3 neighborhood, 0 = own cells only
	PoolCeiling  int
	ReduceDetail bool
}

// PerfSnapshot is the read-only view exposed for overlays and logs. The
// core never reports; it only hands this out.
type PerfSnapshot struct {
	Mode              PerfMode
	FPS               float64
	ActiveProjectiles int
	BodyCount         int
	Transitions       int
}

// PerfController watches achieved frame times over a rolling window and
// flips between normal and degraded mode. The enter threshold sits below
// the exit threshold (hysteresis) and a cooldown follows every transition,
// so a rate hovering near one threshold cannot make the mode flap.
type PerfController struct {
	cfg *Config

	mode        PerfMode
	samples     []float64 // seconds per frame, ring buffer
	next        int
	filled      int
	cooldown    int
	transitions int
}

// NewPerfController creates a controller in normal mode.
func NewPerfController(cfg *Config) *PerfController {
	return &PerfController{
		cfg:     cfg,
		samples: make([]float64, cfg.PerfWindowTicks),
	}
}

// RecordFrame feeds one achieved frame time (seconds) into the window.
// Non-positive samples are ignored; a paused or hitching host clock is not
// evidence about simulation throughput.
func (pc *PerfController) RecordFrame(frameSeconds float64) {
	if frameSeconds <= 0 {
		return
	}
	pc.samples[pc.next] = frameSeconds
	pc.next = (pc.next + 1) % len(pc.samples)
	if pc.filled < len(pc.samples) {
		pc.filled++
	}
}

// AverageFPS returns the rolling-average frame rate, or 0 until the window
// has at least one sample.
func (pc *PerfController) AverageFPS() float64 {
	if pc.filled == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < pc.filled; i++ {
		sum += pc.samples[i]
	}
	avg := sum / float64(pc.filled)
	if avg <= 0 {
		return 0
	}
	return 1 / avg
}

// Update evaluates a mode transition. Transitions require a full window of
// samples and respect the post-transition cooldown. Returns true when the
// mode changed this tick.
func (pc *PerfController) Update() bool {
	if pc.cooldown > 0 {
		pc.cooldown--
		return false
	}
	if pc.filled < len(pc.samples) {
		return false
	}

	fps := pc.AverageFPS()
	switch pc.mode {
	case ModeNormal:
		if fps < pc.cfg.LowFPSThreshold {
			pc.mode = ModeDegraded
			pc.cooldown = pc.cfg.PerfCooldownTicks
			pc.transitions++
			return true
		}
	case ModeDegraded:
		if fps > pc.cfg.HighFPSThreshold {
			pc.mode = ModeNormal
			pc.cooldown = pc.cfg.PerfCooldownTicks
			pc.transitions++
			return true
		}
	}
	return false
}

// Mode returns the current mode.
func (pc *PerfController) Mode() PerfMode {
	return pc.mode
}

// Settings returns the knob values for the current mode.
func (pc *PerfController) Settings() PerfSettings {
	if pc.mode == ModeDegraded {
		return PerfSettings{
			CellScale:    pc.cfg.DegradedCellScale,
			SearchReach:  0,
			PoolCeiling:  pc.cfg.DegradedPoolCeiling,
			ReduceDetail: true,
		}
	}
	return PerfSettings{
		CellScale:   1.0,
		SearchReach: 1,
		PoolCeiling: pc.cfg.ProjectilePoolSize,
	}
}

// Snapshot builds the diagnostics view with the given body counts.
func (pc *PerfController) Snapshot(activeProjectiles, bodyCount int) PerfSnapshot {
	return PerfSnapshot{
		Mode:              pc.mode,
		FPS:               pc.AverageFPS(),
		ActiveProjectiles: activeProjectiles,
		BodyCount:         bodyCount,
		Transitions:       pc.transitions,
	}
}

// TickPolicy names the optional sub-computations included in a tick. It
// replaces scattered "skip every Nth frame" branching with one pure,
// testable decision point.
type TickPolicy struct {
	// ProjectileGravity false means projectiles skip well pull this tick.
	ProjectileGravity bool
	// WellDrift false freezes the drifting wells this tick.
	WellDrift bool
}

// PolicyFor returns the policy for a tick counter and performance mode.
// Pure function of its inputs; rendering state never feeds in.
func PolicyFor(tick uint64, mode PerfMode) TickPolicy {
	if mode == ModeNormal {
		return TickPolicy{ProjectileGravity: true, WellDrift: true}
	}
	// Degraded: projectiles feel gravity every other tick, drift every
	// third. Players and the free object always get the full model.
	return TickPolicy{
		ProjectileGravity: tick%2 == 0,
		WellDrift:         tick%3 == 0,
	}
}
