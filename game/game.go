package game

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// fullscreenKey must stay off both seats' bindings; a shared key would
// fire a shot on every toggle.
const fullscreenKey = ebiten.KeyF11

// Game glues the engine to the window: it polls input, drives one engine
// tick per frame, and draws the two split-screen viewports. It implements
// ebiten.Game.
type Game struct {
	engine   *Engine
	inputs   [2]*SeatInput
	cameras  [2]*Camera
	renderer *Renderer
	profiler *Profiler

	viewport   *ebiten.Image
	lastUpdate time.Time
	gamepadIDs []ebiten.GamepadID
}

// NewGame builds the full game from a validated config.
func NewGame(cfg Config) (*Game, error) {
	eng, err := NewEngine(cfg, time.Now().UnixNano())
	if err != nil {
		return nil, err
	}

	halfW := float64(cfg.ScreenWidth) / 2
	h := float64(cfg.ScreenHeight)

	g := &Game{
		engine:     eng,
		renderer:   NewRenderer(),
		profiler:   NewProfiler("profiles"),
		lastUpdate: time.Now(),
	}
	g.inputs[0] = NewSeatInput(SeatOneKeys())
	g.inputs[1] = NewSeatInput(SeatTwoKeys())
	g.cameras[0] = NewCamera(halfW, h)
	g.cameras[1] = NewCamera(halfW, h)

	snap := eng.Snapshot()
	for i := range g.cameras {
		g.cameras[i].X = snap.Players[i].X
		g.cameras[i].Y = snap.Players[i].Y
	}
	return g, nil
}

// Update advances the simulation one tick.
func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.lastUpdate).Seconds()
	g.lastUpdate = now
	if dt > 0.1 {
		dt = 0.1
	}

	if inpututil.IsKeyJustPressed(fullscreenKey) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	g.assignGamepads()

	intents := [2]PlayerIntent{
		g.inputs[0].Poll(),
		g.inputs[1].Poll(),
	}

	prevMode := g.engine.perf.Mode()
	g.engine.Step(intents, dt)

	if g.engine.perf.Mode() == ModeDegraded && prevMode == ModeNormal {
		snap := g.engine.Snapshot()
		reason := fmt.Sprintf("fps%.0f-shots%d", snap.Perf.FPS, snap.Perf.ActiveProjectiles)
		// Cooldown errors just mean "not now".
		g.profiler.Capture(reason)
	}
	return nil
}

// assignGamepads hands newly connected gamepads to seats without one and
// detaches gamepads that went away.
func (g *Game) assignGamepads() {
	g.gamepadIDs = inpututil.AppendJustConnectedGamepadIDs(g.gamepadIDs[:0])
	for _, id := range g.gamepadIDs {
		for i := range g.inputs {
			if !g.inputs[i].HasGamepad() {
				g.inputs[i].AttachGamepad(id)
				break
			}
		}
	}
	for i := range g.inputs {
		if g.inputs[i].HasGamepad() && inpututil.IsGamepadJustDisconnected(g.inputs[i].GamepadID()) {
			g.inputs[i].DetachGamepad()
		}
	}
}

// Draw renders both viewports side by side with a divider.
func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.engine.Snapshot()
	cfg := g.engine.Config()
	reduce := snap.Perf.Mode == ModeDegraded

	halfW := cfg.ScreenWidth / 2
	for seat := 0; seat < 2; seat++ {
		g.cameras[seat].Follow(snap.Players[seat].X, snap.Players[seat].Y)

		rect := image.Rect(seat*halfW, 0, (seat+1)*halfW, cfg.ScreenHeight)
		view := screen.SubImage(rect).(*ebiten.Image)
		g.renderViewport(view, seat, &snap, cfg, reduce)
	}

	vector.StrokeLine(screen,
		float32(halfW), 0, float32(halfW), float32(cfg.ScreenHeight),
		2, color.RGBA{60, 60, 80, 255}, false)
}

// renderViewport draws one seat's view into its sub-image. The sub-image
// shares pixels with the screen but keeps the screen's coordinate space, so
// drawing goes through an offscreen-free translation: render into the
// sub-image using its own origin.
func (g *Game) renderViewport(view *ebiten.Image, seat int, snap *Snapshot, cfg *Config, reduce bool) {
	if g.viewport == nil ||
		g.viewport.Bounds().Dx() != view.Bounds().Dx() ||
		g.viewport.Bounds().Dy() != view.Bounds().Dy() {
		g.viewport = ebiten.NewImage(view.Bounds().Dx(), view.Bounds().Dy())
	}

	g.renderer.DrawViewport(g.viewport, g.cameras[seat], snap, cfg, seat, reduce)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(view.Bounds().Min.X), float64(view.Bounds().Min.Y))
	view.DrawImage(g.viewport, op)
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.engine.Config()
	return cfg.ScreenWidth, cfg.ScreenHeight
}
