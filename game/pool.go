package game

// ProjectilePool owns the lifecycle of projectile slots: fixed capacity,
// no per-tick allocation, lowest-free-slot reuse. The engine owns the Body
// state stored in each slot; the pool only decides which slots are live.
//
// Handles carry a generation counter so a released handle goes stale instead
// of silently aliasing the slot's next occupant.
type ProjectilePool struct {
	slots   []Body
	gens    []uint32
	ceiling int // slots the pool currently hands out; adaptive, <= capacity
	active  int
}

// SlotID is a handle to one acquired slot. The zero SlotID is never valid.
type SlotID struct {
	idx int
	gen uint32
}

// NewProjectilePool creates a pool with the given fixed capacity.
func NewProjectilePool(capacity int) *ProjectilePool {
	return &ProjectilePool{
		slots:   make([]Body, capacity),
		gens:    make([]uint32, capacity),
		ceiling: capacity,
	}
}

// Capacity returns the pool's fixed slot count.
func (p *ProjectilePool) Capacity() int {
	return len(p.slots)
}

// ActiveCount returns the number of live projectiles.
func (p *ProjectilePool) ActiveCount() int {
	return p.active
}

// SetCeiling adjusts how many slots the pool considers enabled. Lowering it
// never evicts live projectiles; it only stops new acquisitions above the
// ceiling until attrition brings the count down.
func (p *ProjectilePool) SetCeiling(n int) {
	if n < 1 {
		n = 1
	}
	if n > len(p.slots) {
		n = len(p.slots)
	}
	p.ceiling = n
}

// Ceiling returns the current enabled-slot ceiling.
func (p *ProjectilePool) Ceiling() int {
	return p.ceiling
}

// Acquire hands out the lowest-index free slot, fully reinitialized to the
// supplied state. Nothing from the slot's previous occupant survives: the
// whole Body is overwritten by assignment. Returns ok=false when the pool is
// exhausted or the active count is at the ceiling; callers drop the spawn
// silently, exhaustion is not an error.
func (p *ProjectilePool) Acquire(init Body) (SlotID, bool) {
	if p.active >= p.ceiling {
		return SlotID{}, false
	}
	for i := 0; i < p.ceiling; i++ {
		if p.slots[i].Active {
			continue
		}
		p.gens[i]++
		p.slots[i] = init
		p.slots[i].Active = true
		p.active++
		return SlotID{idx: i, gen: p.gens[i]}, true
	}
	return SlotID{}, false
}

// Release returns a slot to the pool and invalidates the handle. The slot's
// state is zeroed so an inactive slot is indistinguishable from a fresh one.
// Releasing a stale or already-released handle is a no-op.
func (p *ProjectilePool) Release(id SlotID) bool {
	if id.idx < 0 || id.idx >= len(p.slots) {
		return false
	}
	if p.gens[id.idx] != id.gen || !p.slots[id.idx].Active {
		return false
	}
	return p.ReleaseIndex(id.idx)
}

// ReleaseIndex reclaims the slot at a raw index. The engine removes a
// projectile this way the moment a hit or a spent bounce budget kills it.
func (p *ProjectilePool) ReleaseIndex(idx int) bool {
	if idx < 0 || idx >= len(p.slots) || !p.slots[idx].Active {
		return false
	}
	p.gens[idx]++
	p.slots[idx] = Body{Kind: KindProjectile, Seat: -1, Owner: -1, ZoneSeat: -1}
	p.active--
	return true
}

// Get resolves a handle to its slot, or nil if the handle is stale.
func (p *ProjectilePool) Get(id SlotID) *Body {
	if id.idx < 0 || id.idx >= len(p.slots) {
		return nil
	}
	if p.gens[id.idx] != id.gen || !p.slots[id.idx].Active {
		return nil
	}
	return &p.slots[id.idx]
}

// At returns the slot at a raw index for intra-tick iteration (spatial grid
// refs address slots by index). Returns nil for inactive slots.
func (p *ProjectilePool) At(idx int) *Body {
	if idx < 0 || idx >= len(p.slots) || !p.slots[idx].Active {
		return nil
	}
	return &p.slots[idx]
}

// ForEachActive calls fn for every live slot in index order. Order is stable
// within a tick; it is not guaranteed across ticks.
func (p *ProjectilePool) ForEachActive(fn func(idx int, b *Body)) {
	for i := range p.slots {
		if p.slots[i].Active {
			fn(i, &p.slots[i])
		}
	}
}

// ReleaseExpired reclaims every live slot for which done reports true
// (expired TTL and the like). Mid-tick removals go through ReleaseIndex at
// the point the projectile dies; by the time this runs, every inactive slot
// is already scrubbed. Returns the number of slots reclaimed.
func (p *ProjectilePool) ReleaseExpired(done func(b *Body) bool) int {
	released := 0
	for i := range p.slots {
		if p.slots[i].Active && done(&p.slots[i]) {
			p.ReleaseIndex(i)
			released++
		}
	}
	return released
}
