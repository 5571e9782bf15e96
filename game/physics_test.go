package game

import (
	"math"
	"testing"
)

func TestIntegrateLinearClampPreservesDirection(t *testing.T) {
	// Diagonal velocity far over the cap must scale, not clip per axis.
	vx, vy := IntegrateLinear(300, 400, 0, 0, 1.0, 50)

	speed := math.Hypot(vx, vy)
	if math.Abs(speed-50) > 1e-9 {
		t.Errorf("expected speed 50, got %f", speed)
	}
	// Original direction was 3:4.
	if math.Abs(vx/vy-0.75) > 1e-9 {
		t.Errorf("direction changed: vx=%f vy=%f", vx, vy)
	}
}

func TestIntegrateLinearFrictionDecays(t *testing.T) {
	vx, vy := 40.0, 0.0
	prev := math.Hypot(vx, vy)
	for i := 0; i < 1000; i++ {
		vx, vy = IntegrateLinear(vx, vy, 0, 0, 0.99, 60)
		speed := math.Hypot(vx, vy)
		if speed > prev {
			t.Fatalf("speed increased at step %d: %f > %f", i, speed, prev)
		}
		prev = speed
	}
	if prev > 0.01 {
		t.Errorf("expected near-zero speed after 1000 steps, got %f", prev)
	}
}

func TestIntegrateAngularSnapsToZero(t *testing.T) {
	w := IntegrateAngular(0.005, 0.98, 5, 0.01)
	if w != 0 {
		t.Errorf("expected exact zero below epsilon, got %g", w)
	}

	w = IntegrateAngular(2.0, 0.98, 5, 0.01)
	if w == 0 || math.Abs(w-1.96) > 1e-9 {
		t.Errorf("expected 1.96, got %g", w)
	}

	w = IntegrateAngular(100, 1.0, 5, 0.01)
	if w != 5 {
		t.Errorf("expected clamp to 5, got %g", w)
	}
}

func TestApplyImpulseHeadOnExchange(t *testing.T) {
	// Equal masses, perfectly elastic, head on: velocities swap.
	a := &Body{VX: 10, Mass: 5}
	b := &Body{VX: -10, Mass: 5}

	_, _, applied := ApplyImpulse(a, b, 1, 0, 1.0)
	if !applied {
		t.Fatal("expected impulse to apply")
	}
	if math.Abs(a.VX+10) > 1e-9 || math.Abs(b.VX-10) > 1e-9 {
		t.Errorf("expected velocity exchange, got a.VX=%f b.VX=%f", a.VX, b.VX)
	}
}

func TestApplyImpulseSkipsSeparatingPair(t *testing.T) {
	a := &Body{VX: -5, Mass: 5}
	b := &Body{VX: 5, Mass: 5}

	_, _, applied := ApplyImpulse(a, b, 1, 0, 0.8)
	if applied {
		t.Error("separating pair must not receive an impulse")
	}
	if a.VX != -5 || b.VX != 5 {
		t.Error("separating pair velocities must be untouched")
	}
}

func TestApplyImpulseConservesMomentum(t *testing.T) {
	a := &Body{VX: 8, VY: 2, Mass: 5}
	b := &Body{VX: -3, VY: 1, Mass: 12}

	beforeX := a.Mass*a.VX + b.Mass*b.VX
	beforeY := a.Mass*a.VY + b.Mass*b.VY

	nx, ny := 1.0, 0.0
	_, _, applied := ApplyImpulse(a, b, nx, ny, 0.8)
	if !applied {
		t.Fatal("expected impulse to apply")
	}

	afterX := a.Mass*a.VX + b.Mass*b.VX
	afterY := a.Mass*a.VY + b.Mass*b.VY
	if math.Abs(beforeX-afterX) > 1e-9 || math.Abs(beforeY-afterY) > 1e-9 {
		t.Errorf("momentum changed: (%f,%f) -> (%f,%f)", beforeX, beforeY, afterX, afterY)
	}
}

func TestApplyImpulseInfiniteMassAbsorbsNothing(t *testing.T) {
	a := &Body{VX: 10, Mass: 5}
	wall := &Body{Mass: math.Inf(1)}

	_, _, applied := ApplyImpulse(a, wall, 1, 0, 1.0)
	if !applied {
		t.Fatal("expected impulse to apply")
	}
	if wall.VX != 0 || wall.VY != 0 {
		t.Errorf("immovable body moved: VX=%f VY=%f", wall.VX, wall.VY)
	}
	if math.Abs(a.VX+10) > 1e-9 {
		t.Errorf("expected full reflection to -10, got %f", a.VX)
	}
}

func TestCollisionTorqueSign(t *testing.T) {
	// Impulse in +y applied right of center spins counterclockwise
	// (positive z torque in this coordinate convention).
	dw := CollisionTorque(10, 0, 0, 0, 0, 5, 100)
	if dw <= 0 {
		t.Errorf("expected positive spin, got %g", dw)
	}

	// Same impulse through the center produces no spin.
	dw = CollisionTorque(0, 0, 0, 0, 0, 5, 100)
	if dw != 0 {
		t.Errorf("expected zero spin for central impact, got %g", dw)
	}
}

func TestCircularBoundaryContains(t *testing.T) {
	outside, cx, cy, nx, ny := CircularBoundary(995, 0, 10, 1000)
	if !outside {
		t.Fatal("body poking through the wall must report outside")
	}
	if math.Abs(cx-990) > 1e-9 || cy != 0 {
		t.Errorf("expected correction to (990,0), got (%f,%f)", cx, cy)
	}
	if math.Abs(nx+1) > 1e-9 || math.Abs(ny) > 1e-9 {
		t.Errorf("expected inward normal (-1,0), got (%f,%f)", nx, ny)
	}

	outside, _, _, _, _ = CircularBoundary(500, 0, 10, 1000)
	if outside {
		t.Error("interior body must not report outside")
	}
}

func TestReflectVelocityLosesEnergy(t *testing.T) {
	// Hitting the right wall moving right with bounce 0.6.
	vx, vy := ReflectVelocity(10, 3, -1, 0, 0.6)
	if vx >= 0 {
		t.Errorf("expected reversed x velocity, got %f", vx)
	}
	if math.Abs(vx+2) > 1e-9 {
		t.Errorf("expected -2 (10 - 2*10*0.6), got %f", vx)
	}
	if vy != 3 {
		t.Errorf("tangential component must be untouched, got %f", vy)
	}
}

func TestMomentOfInertia(t *testing.T) {
	i := MomentOfInertia(0.5, 5, 50)
	if i != 6250 {
		t.Errorf("expected 6250, got %f", i)
	}
}
