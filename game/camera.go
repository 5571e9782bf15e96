package game

// Camera is one viewport's window into the world. Each seat owns a camera
// centered on its player; both share the same world.
type Camera struct {
	X, Y   float64 // camera position in world coordinates
	Zoom   float64
	Width  float64 // viewport size in pixels
	Height float64
}

// NewCamera creates a camera for a viewport of the given size.
func NewCamera(width, height float64) *Camera {
	return &Camera{Zoom: 1.0, Width: width, Height: height}
}

// Follow eases the camera toward a target position. The smoothing factor
// keeps fast movement from snapping the view.
func (c *Camera) Follow(tx, ty float64) {
	const smoothing = 0.1
	c.X += (tx - c.X) * smoothing
	c.Y += (ty - c.Y) * smoothing
}

// WorldToScreen converts world coordinates to viewport coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx - c.X) * c.Zoom
	sy := (wy - c.Y) * c.Zoom
	return sx + c.Width/2, sy + c.Height/2
}

// ScreenToWorld converts viewport coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx - c.Width/2) / c.Zoom
	wy := (sy - c.Height/2) / c.Zoom
	return wx + c.X, wy + c.Y
}

// Visible reports whether a world-space circle intersects the viewport,
// with a margin so bodies straddling the edge still draw.
func (c *Camera) Visible(wx, wy, radius float64) bool {
	sx, sy := c.WorldToScreen(wx, wy)
	r := radius * c.Zoom
	return sx+r >= 0 && sx-r <= c.Width && sy+r >= 0 && sy-r <= c.Height
}
