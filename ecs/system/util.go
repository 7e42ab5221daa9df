package system

import (
	"go.uber.org/zap"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
)

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func firstPlayer(w *ecs.World) (ecs.Entity, bool) {
	return ecs.First(w, component.PlayerComponent.Kind())
}

// gameFlow returns the session's GameFlow singleton.
func gameFlow(w *ecs.World) (*component.GameFlow, bool) {
	e, ok := ecs.First(w, component.GameFlowComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.GameFlowComponent.Kind())
}

// RequestState asks the game loop for a state change. It reports false when
// there is no GameFlow singleton.
func RequestState(w *ecs.World, next component.GameState) bool {
	flow, ok := gameFlow(w)
	if !ok {
		return false
	}
	flow.Request(next)
	return true
}
