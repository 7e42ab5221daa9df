package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
)

// InputSource samples the logical actions for one frame.
type InputSource interface {
	Sample() component.ActionState
}

// KeyBindings maps each action to the keys that trigger it.
type KeyBindings map[component.Action][]ebiten.Key

// ParseKeyBindings resolves ebiten key names such as "ArrowLeft" or "Slash".
func ParseKeyBindings(names map[component.Action][]string) (KeyBindings, error) {
	b := make(KeyBindings, len(names))
	for action, keys := range names {
		for _, name := range keys {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("bind %s: %w", action, err)
			}
			b[action] = append(b[action], k)
		}
	}
	return b, nil
}

// EbitenInput reads the keyboard and cursor through ebiten.
type EbitenInput struct {
	bindings         KeyBindings
	screenW, screenH int
}

func NewEbitenInput(bindings KeyBindings, screenW, screenH int) *EbitenInput {
	return &EbitenInput{bindings: bindings, screenW: screenW, screenH: screenH}
}

func (in *EbitenInput) Sample() component.ActionState {
	var s component.ActionState
	for action, keys := range in.bindings {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				s.Pressed = s.Pressed.With(action)
			}
			if inpututil.IsKeyJustPressed(k) {
				s.JustPressed = s.JustPressed.With(action)
			}
			if inpututil.IsKeyJustReleased(k) {
				s.JustReleased = s.JustReleased.With(action)
			}
		}
	}
	cx, cy := ebiten.CursorPosition()
	s.CursorX, s.CursorY = float64(cx), float64(cy)
	s.CursorInWindow = ebiten.IsFocused() &&
		cx >= 0 && cy >= 0 && cx < in.screenW && cy < in.screenH
	return s
}

// InputSystem copies the frame's input sample onto every ActionState.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.source == nil {
		return
	}
	sample := i.source.Sample()
	ecs.ForEach(w, component.ActionStateComponent.Kind(), func(_ ecs.Entity, as *component.ActionState) {
		*as = sample
	})
}
