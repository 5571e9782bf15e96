package game

import (
	"math"
	"testing"
)

func TestCircleRectNormalPicksNearestEdge(t *testing.T) {
	// Circle approaching from the left: left edge, depth from the
	// expanded boundary.
	hit, nx, ny, _ := circleRectNormal(0, 0, 25, 25, -28, 0, 5)
	if !hit {
		t.Fatal("expected a hit")
	}
	if nx != -1 || ny != 0 {
		t.Errorf("expected left edge normal (-1,0), got (%f,%f)", nx, ny)
	}

	// From below.
	hit, nx, ny, _ = circleRectNormal(0, 0, 25, 25, 0, 28, 5)
	if !hit {
		t.Fatal("expected a hit")
	}
	if nx != 0 || ny != 1 {
		t.Errorf("expected bottom edge normal (0,1), got (%f,%f)", nx, ny)
	}

	// Clear miss.
	hit, _, _, _ = circleRectNormal(0, 0, 25, 25, 100, 100, 5)
	if hit {
		t.Error("distant circle must miss")
	}
}

func TestCircleRectNormalCornerUsesMinPenetration(t *testing.T) {
	// Near the top-right corner, penetrating 3 past the right edge but
	// only 1 past the top: the shallower top edge wins.
	hit, nx, ny, _ := circleRectNormal(0, 0, 25, 25, 27, -29, 5)
	if !hit {
		t.Fatal("expected a hit")
	}
	if nx != 0 || ny != -1 {
		t.Errorf("expected top edge normal (0,-1), got (%f,%f)", nx, ny)
	}

	// Past the corner the nearest point is the corner itself; a center
	// further than the radius from it is a miss even though both axis
	// extents overlap.
	hit, _, _, _ = circleRectNormal(0, 0, 25, 25, 29, -29, 5)
	if hit {
		t.Error("circle beyond the corner arc must miss")
	}
}

func TestResolveCircleCircleReflectsVelocityOnly(t *testing.T) {
	a := &Body{Kind: KindPlayer, X: 0, VX: 5, Mass: 5, Radius: 5, Active: true}
	b := &Body{Kind: KindPlayer, X: 6, VX: -5, Mass: 5, Radius: 5, Active: true}

	hit, impact := resolveCircleCircle(a, b, 0.8)
	if !hit {
		t.Fatal("overlapping circles must collide")
	}
	if impact <= 0 {
		t.Errorf("expected positive impact, got %f", impact)
	}
	if a.VX >= 0 || b.VX <= 0 {
		t.Errorf("velocities must reverse: a=%f b=%f", a.VX, b.VX)
	}
	// Response is velocity-only; positions are left to drift apart.
	if a.X != 0 || b.X != 6 {
		t.Errorf("positions must not be corrected: a=%f b=%f", a.X, b.X)
	}

	// Next tick the pair is separating and must be left alone.
	hit, _ = resolveCircleCircle(a, b, 0.8)
	if hit {
		t.Error("separating overlap must not re-resolve")
	}
}

func TestResolveCircleCircleMissIsNoop(t *testing.T) {
	a := &Body{Kind: KindPlayer, X: 0, VX: 5, Mass: 5, Radius: 5, Active: true}
	b := &Body{Kind: KindPlayer, X: 50, Mass: 5, Radius: 5, Active: true}

	hit, _ := resolveCircleCircle(a, b, 0.8)
	if hit {
		t.Error("separated circles must not collide")
	}
	if a.X != 0 || b.X != 50 || a.VX != 5 {
		t.Error("miss must leave both bodies untouched")
	}
}

func TestResolveCircleRectBouncesAndSpins(t *testing.T) {
	cfg := DefaultConfig()
	rect := NewFreeObject(&cfg) // 50x50 at origin

	// Circle overlapping the right edge, off center vertically, moving in.
	circle := &Body{Kind: KindPlayer, X: 28, Y: 10, VX: -10, Mass: 5, Radius: 5, Active: true}

	hit, impact := resolveCircleRect(circle, &rect, &cfg)
	if !hit {
		t.Fatal("expected a hit")
	}
	if impact <= 0 {
		t.Errorf("expected positive impact, got %f", impact)
	}

	if circle.X != 28 || circle.Y != 10 {
		t.Errorf("response must be velocity-only, circle moved to (%f,%f)", circle.X, circle.Y)
	}
	if circle.VX <= 0 {
		t.Errorf("circle must bounce back, got VX=%f", circle.VX)
	}
	if rect.AngularVel == 0 {
		t.Error("off-center impact must spin the rectangle")
	}
	if rect.VX >= 0 {
		t.Errorf("rectangle must be pushed away, got VX=%f", rect.VX)
	}
}

func TestResolveCircleRectCentralHitNoSpin(t *testing.T) {
	cfg := DefaultConfig()
	rect := NewFreeObject(&cfg)

	circle := &Body{Kind: KindPlayer, X: 28, Y: 0, VX: -10, Mass: 5, Radius: 5, Active: true}

	hit, _ := resolveCircleRect(circle, &rect, &cfg)
	if !hit {
		t.Fatal("expected a hit")
	}
	if math.Abs(rect.AngularVel) > 1e-9 {
		t.Errorf("dead-center impact must not spin, got %g", rect.AngularVel)
	}
}

func TestResolveBoundaryReflectsAndContains(t *testing.T) {
	cfg := DefaultConfig()
	b := &Body{Kind: KindPlayer, X: 998, Y: 0, VX: 10, Mass: 5, Radius: 5, Active: true}

	if !resolveBoundary(b, &cfg) {
		t.Fatal("body through the wall must be contained")
	}
	if math.Hypot(b.X, b.Y) > cfg.ArenaRadius-b.Radius+1e-9 {
		t.Errorf("body still outside after containment: (%f,%f)", b.X, b.Y)
	}
	if b.VX >= 0 {
		t.Errorf("velocity must reflect inward, got %f", b.VX)
	}

	inside := &Body{Kind: KindPlayer, X: 100, Y: 0, VX: 10, Mass: 5, Radius: 5, Active: true}
	if resolveBoundary(inside, &cfg) {
		t.Error("interior body must be untouched")
	}
}

func TestResolverFindsPairsThroughGrid(t *testing.T) {
	cfg := DefaultConfig()
	eng, err := NewEngine(cfg, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Force the grid path by filling the pool past the all-pairs cutoff.
	for i := 0; i < 10; i++ {
		eng.pool.Acquire(NewProjectileBody(eng.cfg, 400+float64(i)*50, 400, 0, 0, 0))
	}

	// Two projectiles overlapping, moving toward each other.
	a, _ := eng.pool.Acquire(NewProjectileBody(eng.cfg, -300, -300, 3, 0, 0))
	b, _ := eng.pool.Acquire(NewProjectileBody(eng.cfg, -297, -300, -3, 0, 1))

	eng.grid.Clear()
	for _, ref := range eng.movableRefs() {
		body := eng.bodyAt(ref)
		eng.grid.InsertCircle(body.X, body.Y, body.Radius, ref)
	}

	contacts := eng.resolver.Resolve(1)
	found := false
	for _, c := range contacts {
		if (c.A.Kind == KindProjectile && c.B.Kind == KindProjectile) &&
			((c.A.Idx == a.idx && c.B.Idx == b.idx) || (c.A.Idx == b.idx && c.B.Idx == a.idx)) {
			found = true
		}
	}
	if !found {
		t.Error("resolver must find the overlapping pair through the grid")
	}
}
