package game

import "testing"

func testProjectile(x float64) Body {
	return Body{
		Kind: KindProjectile, X: x, VX: 5,
		Mass: 5, Radius: 2,
		Seat: -1, Owner: 0, Bounces: 3, TTL: 300, ZoneSeat: -1,
	}
}

func TestPoolExhaustionDropsAcquire(t *testing.T) {
	pool := NewProjectilePool(3)

	for i := 0; i < 3; i++ {
		if _, ok := pool.Acquire(testProjectile(float64(i))); !ok {
			t.Fatalf("acquire %d should succeed", i)
		}
	}

	if _, ok := pool.Acquire(testProjectile(99)); ok {
		t.Error("acquire beyond capacity must fail")
	}
	if pool.ActiveCount() != 3 {
		t.Errorf("failed acquire must not change count, got %d", pool.ActiveCount())
	}
}

func TestPoolReuseScrubsStaleState(t *testing.T) {
	pool := NewProjectilePool(2)

	first := testProjectile(10)
	first.Bounces = 0
	first.TTL = 1
	id, _ := pool.Acquire(first)
	pool.Release(id)

	fresh := testProjectile(20)
	id2, ok := pool.Acquire(fresh)
	if !ok {
		t.Fatal("acquire after release should succeed")
	}
	b := pool.Get(id2)
	if b == nil {
		t.Fatal("handle should resolve")
	}
	if b.Bounces != 3 || b.TTL != 300 || b.X != 20 {
		t.Errorf("slot kept stale state: bounces=%d ttl=%d x=%f", b.Bounces, b.TTL, b.X)
	}
}

func TestPoolStaleHandleInvalid(t *testing.T) {
	pool := NewProjectilePool(2)

	id, _ := pool.Acquire(testProjectile(1))
	pool.Release(id)

	if pool.Get(id) != nil {
		t.Error("released handle must not resolve")
	}
	if pool.Release(id) {
		t.Error("double release must be a no-op")
	}

	// Slot reused: the old handle still must not resolve to the new
	// occupant.
	id2, _ := pool.Acquire(testProjectile(2))
	if pool.Get(id) != nil {
		t.Error("stale handle must not alias the slot's new occupant")
	}
	if pool.Get(id2) == nil {
		t.Error("fresh handle must resolve")
	}
}

func TestPoolLowestFreeSlotFirst(t *testing.T) {
	pool := NewProjectilePool(4)

	ids := make([]SlotID, 3)
	for i := range ids {
		ids[i], _ = pool.Acquire(testProjectile(float64(i)))
	}
	pool.Release(ids[0])
	pool.Release(ids[1])

	id, _ := pool.Acquire(testProjectile(50))
	if id.idx != 0 {
		t.Errorf("expected lowest free slot 0, got %d", id.idx)
	}
}

func TestPoolCeilingBlocksWithoutEvicting(t *testing.T) {
	pool := NewProjectilePool(10)

	for i := 0; i < 8; i++ {
		pool.Acquire(testProjectile(float64(i)))
	}
	pool.SetCeiling(4)

	if pool.ActiveCount() != 8 {
		t.Errorf("lowering ceiling must not evict, got %d active", pool.ActiveCount())
	}
	if _, ok := pool.Acquire(testProjectile(99)); ok {
		t.Error("acquire above ceiling must fail")
	}

	// Attrition below the ceiling reopens acquisition.
	released := pool.ReleaseExpired(func(b *Body) bool { return b.X < 5 })
	if released != 5 {
		t.Fatalf("expected 5 released, got %d", released)
	}
	if _, ok := pool.Acquire(testProjectile(100)); !ok {
		t.Error("acquire below ceiling should succeed after attrition")
	}
}

func TestPoolReleaseIndexReclaimsMidTick(t *testing.T) {
	pool := NewProjectilePool(3)

	id, _ := pool.Acquire(testProjectile(1))
	pool.Acquire(testProjectile(2))

	// A hit removes a projectile by its grid-ref index.
	if !pool.ReleaseIndex(id.idx) {
		t.Fatal("release by index should succeed")
	}
	if pool.ActiveCount() != 1 {
		t.Errorf("expected 1 active, got %d", pool.ActiveCount())
	}
	if pool.Get(id) != nil {
		t.Error("reclaimed handle must be stale")
	}
	if pool.ReleaseIndex(id.idx) {
		t.Error("double release by index must be a no-op")
	}

	// Nothing is left for the end-of-tick sweep to find.
	if released := pool.ReleaseExpired(func(b *Body) bool { return false }); released != 0 {
		t.Errorf("sweep found %d slots in an already-consistent pool", released)
	}
}

func TestPoolForEachActiveOrder(t *testing.T) {
	pool := NewProjectilePool(4)
	pool.Acquire(testProjectile(0))
	id, _ := pool.Acquire(testProjectile(1))
	pool.Acquire(testProjectile(2))
	pool.Release(id)

	var seen []int
	pool.ForEachActive(func(idx int, b *Body) {
		seen = append(seen, idx)
	})
	if len(seen) != 2 || seen[0] != 0 || seen[1] != 2 {
		t.Errorf("expected active slots [0 2], got %v", seen)
	}
}
