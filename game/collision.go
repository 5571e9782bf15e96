package game

import "math"

// allPairsThreshold is the movable-body count below which the resolver scans
// all pairs directly; with a handful of bodies the grid rebuild and query
// bookkeeping costs more than the comparisons it saves.
const allPairsThreshold = 8

// Contact describes one resolved collision, consumed by the scoring/damage
// tracker after the resolve pass.
type Contact struct {
	A, B   BodyRef
	Impact float64 // impulse magnitude, used as severity
}

// Resolver detects and resolves contacts between movable bodies, sourcing
// candidate pairs from the spatial grid. It owns no body state; it mutates
// bodies only through the engine's collections during Resolve.
type Resolver struct {
	eng      *Engine
	queryBuf []BodyRef
	seen     map[uint64]struct{}
	contacts []Contact
}

// NewResolver creates a resolver bound to an engine.
func NewResolver(eng *Engine) *Resolver {
	return &Resolver{
		eng:      eng,
		queryBuf: make([]BodyRef, 0, 64),
		seen:     make(map[uint64]struct{}, 64),
	}
}

func refKey(r BodyRef) uint64 {
	return uint64(r.Kind)<<24 | uint64(uint32(r.Idx))&0xffffff
}

func pairKey(a, b BodyRef) uint64 {
	ka, kb := refKey(a), refKey(b)
	if ka > kb {
		ka, kb = kb, ka
	}
	return ka<<32 | kb
}

// Resolve runs the narrow phase for one tick. reach selects the query
// neighborhood (1 = 3x3, 0 = own cells only) per the performance mode.
// Contacts are accumulated for the tracker; the returned slice is valid
// until the next Resolve call.
func (r *Resolver) Resolve(reach int) []Contact {
	r.contacts = r.contacts[:0]
	for k := range r.seen {
		delete(r.seen, k)
	}

	movables := r.eng.movableRefs()
	if len(movables) < allPairsThreshold {
		for i := 0; i < len(movables); i++ {
			for j := i + 1; j < len(movables); j++ {
				r.resolvePair(movables[i], movables[j])
			}
		}
	} else {
		for _, ref := range movables {
			a := r.eng.bodyAt(ref)
			if a == nil || !a.Active {
				continue
			}
			r.queryBuf = r.eng.grid.QueryBuf(a.X, a.Y, a.Radius, reach, r.queryBuf[:0])
			for _, other := range r.queryBuf {
				if other == ref {
					continue
				}
				key := pairKey(ref, other)
				if _, done := r.seen[key]; done {
					continue
				}
				r.seen[key] = struct{}{}
				r.resolvePair(ref, other)
			}
		}
	}

	// Wells are few and static-ish; scan them directly against movables
	// rather than paying grid insertion for bodies that barely move.
	for wi := range r.eng.wells {
		well := &r.eng.wells[wi]
		for _, ref := range movables {
			b := r.eng.bodyAt(ref)
			if b == nil || !b.Active {
				continue
			}
			r.resolveAgainstWell(ref, b, BodyRef{Kind: KindWell, Idx: wi}, well)
		}
	}
	return r.contacts
}

// resolvePair dispatches on the kind pair. Zones never collide; wells are
// handled in their own pass.
func (r *Resolver) resolvePair(aRef, bRef BodyRef) {
	a := r.eng.bodyAt(aRef)
	b := r.eng.bodyAt(bRef)
	if a == nil || b == nil || !a.Active || !b.Active {
		return
	}

	// Put the rectangle second so circle-rect has one orientation.
	if a.Kind == KindFreeObject && b.Kind != KindFreeObject {
		a, b = b, a
		aRef, bRef = bRef, aRef
	}

	var (
		hit    bool
		impact float64
	)
	switch {
	case b.Kind == KindFreeObject:
		hit, impact = resolveCircleRect(a, b, r.eng.cfg)
	default:
		hit, impact = resolveCircleCircle(a, b, r.eng.cfg.Restitution)
	}
	if hit {
		a.PulseTimer = r.eng.cfg.PulseTicks
		b.PulseTimer = r.eng.cfg.PulseTicks
		r.contacts = append(r.contacts, Contact{A: aRef, B: bRef, Impact: impact})
	}
}

func (r *Resolver) resolveAgainstWell(ref BodyRef, b *Body, wellRef BodyRef, well *Body) {
	if well.Radius <= 0 || !b.Overlaps(well) {
		return
	}
	dx := well.X - b.X
	dy := well.Y - b.Y
	dist := math.Hypot(dx, dy)
	nx, ny := 1.0, 0.0
	if dist > 0 {
		nx, ny = dx/dist, dy/dist
	}
	// Velocity-only response: the well is immovable (infinite mass), so the
	// whole impulse lands on the body. No positional correction here.
	jx, jy, applied := ApplyImpulse(b, well, nx, ny, r.eng.cfg.Restitution)
	if applied {
		b.PulseTimer = r.eng.cfg.PulseTicks
		r.contacts = append(r.contacts, Contact{A: ref, B: wellRef, Impact: math.Hypot(jx, jy)})
	}
}

// resolveCircleCircle handles overlap between two circular movable bodies:
// an impulse split by inverse mass along the center-to-center normal. The
// response is velocity-only; penetrating pairs drift apart on their
// reversed velocities rather than being hard-separated. Boundary
// containment is the one place positions get corrected.
func resolveCircleCircle(a, b *Body, restitution float64) (bool, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	sum := a.Radius + b.Radius
	if dist > sum {
		return false, 0
	}

	nx, ny := 1.0, 0.0
	if dist > 0 {
		nx, ny = dx/dist, dy/dist
	}

	jx, jy, applied := ApplyImpulse(a, b, nx, ny, restitution)
	if !applied {
		return false, 0
	}
	return true, math.Hypot(jx, jy)
}

// resolveCircleRect handles a circular body against the axis-aligned extent
// of the free object. The collision normal comes from the nearest rectangle
// edge, tie-broken by minimum penetration depth among the four candidates;
// near a corner the wrong edge produces a visibly wrong bounce. An off-center
// impact also spins the rectangle through its moment of inertia.
func resolveCircleRect(circle, rect *Body, cfg *Config) (bool, float64) {
	hit, enx, eny, _ := circleRectNormal(
		rect.X, rect.Y, rect.HalfW, rect.HalfH,
		circle.X, circle.Y, circle.Radius,
	)
	if !hit {
		return false, 0
	}

	impactX := circle.X - enx*circle.Radius
	impactY := circle.Y - eny*circle.Radius

	// ApplyImpulse wants the normal pointing circle->rect; the edge normal
	// points outward from the rectangle.
	jx, jy, applied := ApplyImpulse(circle, rect, -enx, -eny, cfg.Restitution)
	if !applied {
		return false, 0
	}

	// The rectangle received -j; torque it about its center.
	rect.AngularVel += CollisionTorque(impactX, impactY, rect.X, rect.Y, -jx, -jy, rect.Inertia)
	return true, math.Hypot(jx, jy)
}

// circleRectNormal tests a circle against a rectangle by clamping the
// circle center to the rectangle's extent and comparing the distance to the
// nearest point against the radius. On a hit it returns the outward normal
// of the nearest edge, tie-broken by minimum penetration depth among the
// four candidates; near a corner the deeper edge gives a visibly wrong
// bounce direction.
func circleRectNormal(rx, ry, halfW, halfH, cx, cy, radius float64) (hit bool, nx, ny, depth float64) {
	nearestX := math.Max(rx-halfW, math.Min(cx, rx+halfW))
	nearestY := math.Max(ry-halfH, math.Min(cy, ry+halfH))
	ddx := cx - nearestX
	ddy := cy - nearestY
	if ddx*ddx+ddy*ddy >= radius*radius {
		return false, 0, 0, 0
	}

	left := rx - halfW - radius
	right := rx + halfW + radius
	top := ry - halfH - radius
	bottom := ry + halfH + radius

	distLeft := cx - left
	distRight := right - cx
	distTop := cy - top
	distBottom := bottom - cy

	minDist := distLeft
	nx, ny = -1, 0
	if distRight < minDist {
		minDist, nx, ny = distRight, 1, 0
	}
	if distTop < minDist {
		minDist, nx, ny = distTop, 0, -1
	}
	if distBottom < minDist {
		minDist, nx, ny = distBottom, 0, 1
	}
	return true, nx, ny, minDist
}

// resolveBoundary contains a body inside the circular arena wall. This is
// the one resolver path that corrects position: an unconstrained body must
// never end a tick outside the playable boundary.
func resolveBoundary(b *Body, cfg *Config) bool {
	outside, cx, cy, nx, ny := CircularBoundary(b.X, b.Y, b.Radius, cfg.ArenaRadius)
	if !outside {
		return false
	}
	b.X = cx
	b.Y = cy
	b.VX, b.VY = ReflectVelocity(b.VX, b.VY, nx, ny, cfg.BounceFactor)
	return true
}
