package game

// SpatialGrid is the uniform broad-phase index over movable bodies. It is
// rebuilt from scratch every tick: positions change every tick anyway, so
// incremental maintenance would buy nothing. Cell size is dynamic; the
// performance controller coarsens it under load.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	origin   float64 // world coordinate of cell (0,0)'s corner, -arenaRadius
	cells    [][]BodyRef
}

// NewSpatialGrid creates a grid covering the square that bounds the circular
// arena.
func NewSpatialGrid(arenaRadius, cellSize float64) *SpatialGrid {
	g := &SpatialGrid{origin: -arenaRadius}
	g.Resize(arenaRadius, cellSize)
	return g
}

// Resize re-derives grid dimensions for a new cell size, reusing cell
// storage where dimensions allow. Called by the engine when the performance
// controller changes the cell scale.
func (g *SpatialGrid) Resize(arenaRadius, cellSize float64) {
	cols := int(2*arenaRadius/cellSize) + 1
	if cols < 1 {
		cols = 1
	}
	g.cellSize = cellSize
	g.origin = -arenaRadius
	if cols != g.cols {
		g.cols = cols
		g.rows = cols
		g.cells = make([][]BodyRef, cols*cols)
	}
}

// CellSize returns the current cell edge length.
func (g *SpatialGrid) CellSize() float64 {
	return g.cellSize
}

// Clear empties every cell, keeping allocated capacity for the next tick.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

func (g *SpatialGrid) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if r >= g.rows {
		return g.rows - 1
	}
	return r
}

// InsertCircle inserts a body into every cell its bounding circle overlaps.
// A body wider than one cell lands in all the cells it touches; inserting
// only the center cell would drop collisions at cell boundaries.
func (g *SpatialGrid) InsertCircle(x, y, radius float64, ref BodyRef) {
	minCol := g.clampCol(int((x - radius - g.origin) / g.cellSize))
	maxCol := g.clampCol(int((x + radius - g.origin) / g.cellSize))
	minRow := g.clampRow(int((y - radius - g.origin) / g.cellSize))
	maxRow := g.clampRow(int((y + radius - g.origin) / g.cellSize))

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			idx := r*g.cols + c
			g.cells[idx] = append(g.cells[idx], ref)
		}
	}
}

// QueryBuf appends to buf every body in the cells the query circle touches,
// widened by reach cells on every side (reach 0 = own cells only, reach 1 =
// the 3x3 neighborhood). Results may contain duplicates when a body spans
// multiple cells; callers dedupe pairs. Appending into a caller-owned buffer
// avoids a per-query allocation.
func (g *SpatialGrid) QueryBuf(x, y, radius float64, reach int, buf []BodyRef) []BodyRef {
	minCol := g.clampCol(int((x-radius-g.origin)/g.cellSize) - reach)
	maxCol := g.clampCol(int((x+radius-g.origin)/g.cellSize) + reach)
	minRow := g.clampRow(int((y-radius-g.origin)/g.cellSize) - reach)
	maxRow := g.clampRow(int((y+radius-g.origin)/g.cellSize) + reach)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			buf = append(buf, g.cells[r*g.cols+c]...)
		}
	}
	return buf
}
