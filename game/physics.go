package game

import "math"

// The integrator advances one logical tick. Time is the tick itself, not
// wall clock: callers never pass a dt. Rendering cadence is decoupled from
// this entirely.

// IntegrateLinear applies accumulated acceleration, friction, and the
// uniform speed clamp to a velocity. The clamp scales both components by the
// same factor so the direction of travel is preserved; a per-axis clamp
// would bend diagonal movement toward the axes.
func IntegrateLinear(vx, vy, ax, ay, friction, maxSpeed float64) (float64, float64) {
	vx = (vx + ax) * friction
	vy = (vy + ay) * friction

	speed := math.Hypot(vx, vy)
	if speed > maxSpeed {
		scale := maxSpeed / speed
		vx *= scale
		vy *= scale
	}
	return vx, vy
}

// IntegrateAngular applies rotational friction and the angular speed clamp.
// Below epsilon the spin snaps to exactly zero; without the snap,
// floating-point residue keeps bodies micro-rotating forever.
func IntegrateAngular(w, friction, maxW, epsilon float64) float64 {
	w *= friction
	if w > maxW {
		w = maxW
	} else if w < -maxW {
		w = -maxW
	}
	if math.Abs(w) < epsilon {
		w = 0
	}
	return w
}

// MomentOfInertia computes I for a square body of the given side length.
func MomentOfInertia(factor, mass, size float64) float64 {
	return factor * mass * size * size
}

// CollisionTorque returns the angular velocity change produced by a linear
// impulse applied at an impact point off the center of mass: Δω = (r × j)/I.
func CollisionTorque(impactX, impactY, centerX, centerY, jx, jy, inertia float64) float64 {
	rx := impactX - centerX
	ry := impactY - centerY
	torque := rx*jy - ry*jx
	return torque / inertia
}

// ApplyImpulse resolves a contact between two bodies along the given unit
// normal (pointing from a to b) using conservation of momentum. The impulse
// is split by inverse mass, so an immovable body (infinite mass) absorbs
// none of it. Separating pairs are left untouched. Returns the impulse
// components and whether a response was applied.
func ApplyImpulse(a, b *Body, nx, ny, restitution float64) (jx, jy float64, applied bool) {
	relVX := a.VX - b.VX
	relVY := a.VY - b.VY
	relNormal := relVX*nx + relVY*ny

	// Moving apart along the normal already, or at rest relative to each
	// other; nothing to resolve.
	if relNormal <= 0 {
		return 0, 0, false
	}

	invMassA := 1 / a.Mass
	invMassB := 1 / b.Mass
	if invMassA+invMassB == 0 {
		return 0, 0, false
	}

	j := -(1 + restitution) * relNormal / (invMassA + invMassB)
	jx = j * nx
	jy = j * ny

	a.VX += jx * invMassA
	a.VY += jy * invMassA
	b.VX -= jx * invMassB
	b.VY -= jy * invMassB
	return jx, jy, true
}

// CircularBoundary tests a circle of the given radius against the arena
// wall. When the body pokes outside it returns the corrected position on
// the wall and the inward-pointing unit normal.
func CircularBoundary(x, y, radius, boundaryRadius float64) (outside bool, cx, cy, nx, ny float64) {
	dist := math.Hypot(x, y)
	maxDist := boundaryRadius - radius
	if dist <= maxDist {
		return false, x, y, 0, 0
	}

	angle := math.Atan2(y, x)
	cx = math.Cos(angle) * maxDist
	cy = math.Sin(angle) * maxDist
	nx = -math.Cos(angle)
	ny = -math.Sin(angle)
	return true, cx, cy, nx, ny
}

// ReflectVelocity reflects the velocity component along the (unit) normal,
// scaled by the bounce factor. Used for boundary hits where only one body
// changes velocity.
func ReflectVelocity(vx, vy, nx, ny, bounce float64) (float64, float64) {
	dot := vx*nx + vy*ny
	vx -= 2 * dot * nx * bounce
	vy -= 2 * dot * ny * bounce
	return vx, vy
}
