package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	colorBackground = color.RGBA{12, 12, 24, 255}
	colorGridDot    = color.RGBA{40, 40, 60, 255}
	colorArenaWall  = color.RGBA{90, 90, 130, 255}
	colorObject     = color.RGBA{220, 220, 220, 255}
	colorProjectile = color.RGBA{255, 240, 120, 255}
	colorWellCore   = color.RGBA{150, 60, 200, 255}
	colorWellField  = color.RGBA{90, 40, 120, 120}
	colorPulse      = color.RGBA{255, 80, 80, 255}

	seatColors = [2]color.RGBA{
		{80, 200, 255, 255},
		{255, 150, 60, 255},
	}
)

// Renderer draws one snapshot into one seat's viewport. It holds no
// simulation state; everything it needs arrives in the Snapshot.
type Renderer struct {
	face text.Face
}

// NewRenderer creates a renderer with the HUD font loaded.
func NewRenderer() *Renderer {
	return &Renderer{face: text.NewGoXFace(basicfont.Face7x13)}
}

// DrawViewport renders the world from one camera into the given sub-image.
// seat selects whose HUD is drawn; reduceDetail skips the background dots
// when the performance controller asks for less work.
func (r *Renderer) DrawViewport(screen *ebiten.Image, cam *Camera, snap *Snapshot, cfg *Config, seat int, reduceDetail bool) {
	screen.Fill(colorBackground)

	if !reduceDetail {
		r.drawBackgroundDots(screen, cam, cfg)
	}
	r.drawArenaWall(screen, cam, cfg)

	for i := range snap.Zones {
		r.drawZone(screen, cam, &snap.Zones[i])
	}
	for i := range snap.Wells {
		r.drawWell(screen, cam, &snap.Wells[i])
	}

	r.drawObject(screen, cam, &snap.Object)

	for i := range snap.Projectiles {
		p := &snap.Projectiles[i]
		if !cam.Visible(p.X, p.Y, p.Radius) {
			continue
		}
		sx, sy := cam.WorldToScreen(p.X, p.Y)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(p.Radius*cam.Zoom)+1, colorProjectile, true)
	}

	for i := range snap.Players {
		r.drawPlayer(screen, cam, &snap.Players[i], i, snap.Tick)
	}

	r.drawObjectIndicator(screen, cam, &snap.Object)
	r.drawHUD(screen, snap, seat)
}

// drawBackgroundDots draws the static dot lattice that makes motion
// readable against an otherwise featureless arena.
func (r *Renderer) drawBackgroundDots(screen *ebiten.Image, cam *Camera, cfg *Config) {
	minX, minY := cam.ScreenToWorld(0, 0)
	maxX, maxY := cam.ScreenToWorld(cam.Width, cam.Height)

	spacing := cfg.GridSpacing
	startX := math.Floor(minX/spacing) * spacing
	startY := math.Floor(minY/spacing) * spacing

	for wx := startX; wx <= maxX; wx += spacing {
		for wy := startY; wy <= maxY; wy += spacing {
			if math.Hypot(wx, wy) > cfg.ArenaRadius {
				continue
			}
			sx, sy := cam.WorldToScreen(wx, wy)
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), 1, colorGridDot, false)
		}
	}
}

func (r *Renderer) drawArenaWall(screen *ebiten.Image, cam *Camera, cfg *Config) {
	sx, sy := cam.WorldToScreen(0, 0)
	vector.StrokeCircle(screen, float32(sx), float32(sy), float32(cfg.ArenaRadius*cam.Zoom), 2, colorArenaWall, true)
}

func (r *Renderer) drawZone(screen *ebiten.Image, cam *Camera, z *ZoneView) {
	if !cam.Visible(z.X, z.Y, z.Radius) {
		return
	}
	sx, sy := cam.WorldToScreen(z.X, z.Y)
	radius := float32(z.Radius * cam.Zoom)

	clr := seatColors[z.Seat%2]
	vector.StrokeCircle(screen, float32(sx), float32(sy), radius, 2, clr, true)

	// Capture progress fills the zone from the center out.
	if z.Progress > 0 {
		fill := clr
		fill.A = 70
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius*float32(z.Progress), fill, true)
	}
}

func (r *Renderer) drawWell(screen *ebiten.Image, cam *Camera, w *WellView) {
	// Wells without a visible core (the center pull, the goal pulls) stay
	// invisible; only their effects on other bodies show.
	if w.Radius <= 0 {
		return
	}
	if !cam.Visible(w.X, w.Y, w.FieldRadius) {
		return
	}
	sx, sy := cam.WorldToScreen(w.X, w.Y)

	// Field boundary breathes with the pulse.
	field := colorWellField
	field.A = uint8(40 + 80*w.Pulse)
	vector.StrokeCircle(screen, float32(sx), float32(sy), float32(w.FieldRadius*cam.Zoom), 1, field, true)

	core := float32(w.Radius * cam.Zoom * (0.9 + 0.2*w.Pulse))
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), core, colorWellCore, true)
}

// drawObject draws the free object as a rotated square outline. Rotation is
// applied here only; the physics treats the extent as axis-aligned.
func (r *Renderer) drawObject(screen *ebiten.Image, cam *Camera, o *ObjectView) {
	if !cam.Visible(o.X, o.Y, o.Half*math.Sqrt2) {
		return
	}

	clr := colorObject
	if o.Pulse > 0 {
		clr = blend(colorObject, colorPulse, o.Pulse)
	}

	cos := math.Cos(o.Angle)
	sin := math.Sin(o.Angle)
	corners := [4][2]float64{
		{-o.Half, -o.Half},
		{o.Half, -o.Half},
		{o.Half, o.Half},
		{-o.Half, o.Half},
	}
	var pts [4][2]float32
	for i, c := range corners {
		wx := o.X + c[0]*cos - c[1]*sin
		wy := o.Y + c[0]*sin + c[1]*cos
		sx, sy := cam.WorldToScreen(wx, wy)
		pts[i] = [2]float32{float32(sx), float32(sy)}
	}
	for i := range pts {
		j := (i + 1) % 4
		vector.StrokeLine(screen, pts[i][0], pts[i][1], pts[j][0], pts[j][1], 2, clr, true)
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, cam *Camera, p *PlayerView, seat int, tick uint64) {
	if !cam.Visible(p.X, p.Y, p.Radius) {
		return
	}
	// Invulnerable players blink.
	if p.Invulnerable && tick/4%2 == 0 {
		return
	}

	clr := seatColors[seat%2]
	if p.Pulse > 0 {
		clr = blend(clr, colorPulse, p.Pulse)
	}

	sx, sy := cam.WorldToScreen(p.X, p.Y)
	radius := p.Radius * cam.Zoom
	if radius < 2 {
		radius = 2
	}
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), clr, true)

	// Facing line.
	tipX := sx + math.Cos(p.Angle)*radius*2
	tipY := sy + math.Sin(p.Angle)*radius*2
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(tipX), float32(tipY), 1, clr, true)
}

// drawObjectIndicator points an edge arrow at the free object when it is
// outside this viewport, so a player always knows where the cube went.
func (r *Renderer) drawObjectIndicator(screen *ebiten.Image, cam *Camera, o *ObjectView) {
	if cam.Visible(o.X, o.Y, o.Half) {
		return
	}

	dx := o.X - cam.X
	dy := o.Y - cam.Y
	angle := math.Atan2(dy, dx)

	const inset = 24.0
	cx := cam.Width / 2
	cy := cam.Height / 2
	// Clamp the arrow to the viewport edge along the direction to the cube.
	tx := cx + math.Cos(angle)*(cx-inset)
	ty := cy + math.Sin(angle)*(cy-inset)
	if tx < inset {
		tx = inset
	} else if tx > cam.Width-inset {
		tx = cam.Width - inset
	}
	if ty < inset {
		ty = inset
	} else if ty > cam.Height-inset {
		ty = cam.Height - inset
	}

	const size = 10.0
	tipX := tx + math.Cos(angle)*size
	tipY := ty + math.Sin(angle)*size
	leftX := tx + math.Cos(angle+2.5)*size
	leftY := ty + math.Sin(angle+2.5)*size
	rightX := tx + math.Cos(angle-2.5)*size
	rightY := ty + math.Sin(angle-2.5)*size
	vector.StrokeLine(screen, float32(tipX), float32(tipY), float32(leftX), float32(leftY), 2, colorObject, true)
	vector.StrokeLine(screen, float32(tipX), float32(tipY), float32(rightX), float32(rightY), 2, colorObject, true)
}

func (r *Renderer) drawHUD(screen *ebiten.Image, snap *Snapshot, seat int) {
	p := &snap.Players[seat]
	other := &snap.Players[1-seat]

	line := fmt.Sprintf("Score %d - %d    HP %d", p.Score, other.Score, p.HitPoints)
	op := &text.DrawOptions{}
	op.GeoM.Translate(10, 10)
	op.ColorScale.ScaleWithColor(seatColors[seat%2])
	text.Draw(screen, line, r.face, op)

	perf := fmt.Sprintf("fps %.0f  mode %s  shots %d",
		snap.Perf.FPS, snap.Perf.Mode, snap.Perf.ActiveProjectiles)
	ebitenutil.DebugPrintAt(screen, perf, 10, 28)
}

func blend(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 255}
}
