package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/ecs/entity"
)

const (
	testScreenW = 1280
	testScreenH = 720
)

// scriptedInput replays one sample per call, then repeats an empty one.
type scriptedInput struct {
	samples []component.ActionState
}

func (s *scriptedInput) Sample() component.ActionState {
	if len(s.samples) == 0 {
		return component.ActionState{}
	}
	next := s.samples[0]
	s.samples = s.samples[1:]
	return next
}

func (s *scriptedInput) push(samples ...component.ActionState) {
	s.samples = append(s.samples, samples...)
}

func newSession(t *testing.T, w *ecs.World, state component.GameState) *component.GameFlow {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.GameFlowComponent.Kind(), &component.GameFlow{Current: state}))
	flow, ok := ecs.Get(w, e, component.GameFlowComponent.Kind())
	require.True(t, ok)
	return flow
}

func spawnPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	p, err := entity.NewPlayerAt(w, x, y)
	require.NoError(t, err)
	return p
}

func spawnCamera(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	c, err := entity.NewCameraAt(w, x, y)
	require.NoError(t, err)
	return c
}

func controller(t *testing.T, w *ecs.World, e ecs.Entity) *component.CharacterController {
	t.Helper()
	ctrl, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
	require.True(t, ok)
	return ctrl
}

func transform(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr
}

func held(actions ...component.Action) component.ActionState {
	var s component.ActionState
	for _, a := range actions {
		s.Pressed = s.Pressed.With(a)
	}
	return s
}
