package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IntentProvider translates one seat's devices into a PlayerIntent each
// tick. The engine never sees devices; it sees intents.
type IntentProvider interface {
	Poll() PlayerIntent
}

// KeyBindings maps one seat's keyboard controls.
type KeyBindings struct {
	Up, Down, Left, Right ebiten.Key
	Fire                  ebiten.Key
}

// SeatOneKeys returns the arrow-keys-plus-Enter layout.
func SeatOneKeys() KeyBindings {
	return KeyBindings{
		Up:    ebiten.KeyArrowUp,
		Down:  ebiten.KeyArrowDown,
		Left:  ebiten.KeyArrowLeft,
		Right: ebiten.KeyArrowRight,
		Fire:  ebiten.KeyEnter,
	}
}

// SeatTwoKeys returns the WASD-plus-Control layout.
func SeatTwoKeys() KeyBindings {
	return KeyBindings{
		Up:    ebiten.KeyW,
		Down:  ebiten.KeyS,
		Left:  ebiten.KeyA,
		Right: ebiten.KeyD,
		Fire:  ebiten.KeyControlLeft,
	}
}

const gamepadDeadzone = 0.2

// SeatInput polls one seat's keyboard bindings, plus an attached gamepad's
// left stick and bottom face button when one is connected. Keyboard and
// stick contributions combine; the magnitude clamp happens in the engine.
type SeatInput struct {
	binds      KeyBindings
	gamepad    ebiten.GamepadID
	hasGamepad bool
}

// NewSeatInput creates a provider for one set of key bindings.
func NewSeatInput(binds KeyBindings) *SeatInput {
	return &SeatInput{binds: binds}
}

// AttachGamepad binds a connected gamepad to this seat.
func (s *SeatInput) AttachGamepad(id ebiten.GamepadID) {
	s.gamepad = id
	s.hasGamepad = true
}

// DetachGamepad removes the seat's gamepad binding.
func (s *SeatInput) DetachGamepad() {
	s.hasGamepad = false
}

// HasGamepad reports whether a gamepad is bound to this seat.
func (s *SeatInput) HasGamepad() bool {
	return s.hasGamepad
}

// GamepadID returns the bound gamepad, valid only when HasGamepad.
func (s *SeatInput) GamepadID() ebiten.GamepadID {
	return s.gamepad
}

// Poll reads the devices and produces this tick's intent. Fire is
// edge-triggered: holding the button down yields one shot per press, the
// engine's cooldown handles repeat rate on top of that.
func (s *SeatInput) Poll() PlayerIntent {
	var in PlayerIntent

	if ebiten.IsKeyPressed(s.binds.Left) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(s.binds.Right) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(s.binds.Up) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(s.binds.Down) {
		in.MoveY += 1
	}
	in.Fire = inpututil.IsKeyJustPressed(s.binds.Fire)

	if s.hasGamepad && ebiten.IsStandardGamepadLayoutAvailable(s.gamepad) {
		ax := ebiten.StandardGamepadAxisValue(s.gamepad, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ay := ebiten.StandardGamepadAxisValue(s.gamepad, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(ax, ay) > gamepadDeadzone {
			in.MoveX += ax
			in.MoveY += ay
		}
		if inpututil.IsStandardGamepadButtonJustPressed(s.gamepad, ebiten.StandardGamepadButtonRightBottom) {
			in.Fire = true
		}
	}

	if mag := math.Hypot(in.MoveX, in.MoveY); mag > 1 {
		in.MoveX /= mag
		in.MoveY /= mag
	}
	return in
}
