package game

import "testing"

func containsRef(refs []BodyRef, want BodyRef) bool {
	for _, r := range refs {
		if r == want {
			return true
		}
	}
	return false
}

func TestSpatialGridInsertAndQuery(t *testing.T) {
	grid := NewSpatialGrid(1000, 100)

	ref := BodyRef{Kind: KindPlayer, Idx: 0}
	grid.InsertCircle(100, 100, 5, ref)

	results := grid.QueryBuf(100, 100, 5, 1, nil)
	if !containsRef(results, ref) {
		t.Error("expected to find body at (100,100)")
	}

	results = grid.QueryBuf(-800, -800, 5, 1, nil)
	if containsRef(results, ref) {
		t.Error("should not find body far away")
	}
}

func TestSpatialGridInsertCircleSpansCells(t *testing.T) {
	grid := NewSpatialGrid(1000, 100)

	// Radius 120 spans several 100-unit cells; a query touching only the
	// edge cells must still see it.
	ref := BodyRef{Kind: KindFreeObject, Idx: 0}
	grid.InsertCircle(0, 0, 120, ref)

	results := grid.QueryBuf(110, 0, 5, 0, nil)
	if !containsRef(results, ref) {
		t.Error("expected to find wide body from its edge cell")
	}
}

func TestSpatialGridNeighborsAcrossCellBoundary(t *testing.T) {
	grid := NewSpatialGrid(1000, 100)

	// Two small bodies in adjacent cells, close to the shared boundary.
	a := BodyRef{Kind: KindPlayer, Idx: 0}
	b := BodyRef{Kind: KindPlayer, Idx: 1}
	grid.InsertCircle(98, 50, 3, a)
	grid.InsertCircle(102, 50, 3, b)

	// Reach 1 must see across the boundary.
	results := grid.QueryBuf(98, 50, 3, 1, nil)
	if !containsRef(results, b) {
		t.Error("3x3 query must find neighbor across cell boundary")
	}
}

func TestSpatialGridOverlapFoundWithZeroReach(t *testing.T) {
	grid := NewSpatialGrid(1000, 100)

	// Overlapping pair straddling a cell boundary. Insertion covers every
	// cell a circle touches, so the degraded-mode query (own cells only)
	// still shares a cell with any body it actually overlaps.
	a := BodyRef{Kind: KindProjectile, Idx: 0}
	b := BodyRef{Kind: KindProjectile, Idx: 1}
	grid.InsertCircle(98, 50, 3, a)
	grid.InsertCircle(102, 50, 3, b)

	if !containsRef(grid.QueryBuf(98, 50, 3, 0, nil), b) {
		t.Error("overlapping neighbor must be found with reach 0")
	}
	if !containsRef(grid.QueryBuf(102, 50, 3, 0, nil), a) {
		t.Error("reach-0 overlap query must work from either side")
	}
}

func TestSpatialGridClearKeepsNothing(t *testing.T) {
	grid := NewSpatialGrid(1000, 100)

	grid.InsertCircle(500, 500, 10, BodyRef{Kind: KindProjectile, Idx: 3})
	grid.Clear()

	results := grid.QueryBuf(500, 500, 50, 1, nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results after clear, got %d", len(results))
	}
}

func TestSpatialGridResize(t *testing.T) {
	grid := NewSpatialGrid(1000, 100)
	cols := grid.cols

	grid.Resize(1000, 150)
	if grid.CellSize() != 150 {
		t.Errorf("expected cell size 150, got %f", grid.CellSize())
	}
	if grid.cols >= cols {
		t.Errorf("coarser cells should mean fewer columns: %d -> %d", cols, grid.cols)
	}

	// Grid still works after resize.
	ref := BodyRef{Kind: KindPlayer, Idx: 1}
	grid.InsertCircle(-200, 300, 5, ref)
	if !containsRef(grid.QueryBuf(-200, 300, 5, 1, nil), ref) {
		t.Error("expected to find body after resize")
	}
}

func TestSpatialGridClampsOutOfBounds(t *testing.T) {
	grid := NewSpatialGrid(1000, 100)

	// Position beyond the arena bound must clamp to an edge cell rather
	// than index out of range.
	ref := BodyRef{Kind: KindProjectile, Idx: 0}
	grid.InsertCircle(-1500, -1500, 5, ref)

	results := grid.QueryBuf(-1000, -1000, 50, 1, nil)
	if !containsRef(results, ref) {
		t.Error("expected clamped body in the corner cell")
	}
}
