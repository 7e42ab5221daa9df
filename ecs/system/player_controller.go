package system

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/gavinmorrow/Pollywog/common"
	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
)

// StopJumpSystem ends a jump once the player is grounded. It runs before
// movement so a landing tick terminates the jump.
type StopJumpSystem struct {
	logger *zap.Logger
}

func NewStopJumpSystem(logger *zap.Logger) *StopJumpSystem {
	return &StopJumpSystem{logger: orNop(logger)}
}

func (s *StopJumpSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.JumpComponent.Kind(), component.CharacterControllerComponent.Kind(),
		func(e ecs.Entity, _ *component.Jump, ctrl *component.CharacterController) {
			if !ctrl.Grounded {
				return
			}
			ecs.Remove(w, e, component.JumpComponent.Kind())
			s.logger.Debug("jump ended", zap.Stringer("entity", e))
		})
}

// PlayerMoveSystem turns held actions into the player's intended translation
// and starts jumps.
type PlayerMoveSystem struct {
	logger *zap.Logger
}

func NewPlayerMoveSystem(logger *zap.Logger) *PlayerMoveSystem {
	return &PlayerMoveSystem{logger: orNop(logger)}
}

func (s *PlayerMoveSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := firstPlayer(w)
	if !ok {
		s.logger.Debug("no player")
		return
	}
	p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	ctrl, ok := ecs.Get(w, player, component.CharacterControllerComponent.Kind())
	if !ok {
		return
	}
	var actions component.ActionState
	if as, ok := ecs.Get(w, player, component.ActionStateComponent.Kind()); ok {
		actions = *as
	}

	translation := cp.Vector{X: 0, Y: common.Gravity}

	if actions.Pressed.Has(component.ActionLeft) {
		translation.X = -p.MoveSpeed
		p.Facing = component.Left
		p.Animating = true
	}
	// Right overrides Left when both are held.
	if actions.Pressed.Has(component.ActionRight) {
		translation.X = p.MoveSpeed
		p.Facing = component.Right
		p.Animating = true
	}

	if actions.Pressed.Has(component.ActionJump) && ctrl.Grounded &&
		!ecs.Has(w, player, component.JumpComponent.Kind()) {
		if err := ecs.Add(w, player, component.JumpComponent.Kind(), component.NewJump(p.JumpHeight, p.JumpTimeToPeak)); err != nil {
			panic("player move system: start jump: " + err.Error())
		}
		s.logger.Debug("jump started", zap.Stringer("entity", player))
	}

	if !actions.Pressed.Any() {
		p.Animating = false
	}

	ctrl.Translation = translation
}

// JumpSystem replaces the vertical translation with the jump arc while a
// jump is active.
type JumpSystem struct {
	dt float64
}

func NewJumpSystem(dt float64) *JumpSystem {
	if dt <= 0 {
		dt = 1.0 / ecs.DefaultTPS
	}
	return &JumpSystem{dt: dt}
}

func (s *JumpSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.JumpComponent.Kind(), component.CharacterControllerComponent.Kind(),
		func(_ ecs.Entity, j *component.Jump, ctrl *component.CharacterController) {
			ctrl.Translation.Y = j.Velocity()
			j.Advance(s.dt)
		})
}
