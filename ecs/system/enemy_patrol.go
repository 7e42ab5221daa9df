package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
)

// EnemyPatrolSystem sets each NPC's intended translation from its movement
// variant.
type EnemyPatrolSystem struct{}

func NewEnemyPatrolSystem() *EnemyPatrolSystem {
	return &EnemyPatrolSystem{}
}

func (s *EnemyPatrolSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach3(w, component.MovementComponent.Kind(), component.TransformComponent.Kind(), component.CharacterControllerComponent.Kind(),
		func(e ecs.Entity, m *component.Movement, t *component.Transform, ctrl *component.CharacterController) {
			switch m.Kind {
			case component.MovementPatrol:
				m.Speed = PatrolSpeed(m, t.X)
				// Keep the next position inside the bounds.
				dx := m.Speed
				if next := t.X + dx; dx > 0 && next > m.Right {
					dx = math.Max(m.Right-t.X, 0)
				} else if dx < 0 && next < m.Left {
					dx = math.Min(m.Left-t.X, 0)
				}
				ctrl.Translation = cp.Vector{X: dx}
			default:
				m.Speed = 0
				ctrl.Translation = cp.Vector{}
			}
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				sprite.FlipX = m.Direction == component.Left
			}
		})
}

// PatrolSpeed updates m's direction for position x and returns the signed
// horizontal speed: slow near either bound, fastest at the midpoint, never
// below MinSpeed.
func PatrolSpeed(m *component.Movement, x float64) float64 {
	if x <= m.Left {
		m.Direction = component.Right
	} else if x >= m.Right {
		m.Direction = component.Left
	}

	total := m.Right - m.Left
	relative := 0.0
	if total > 0 {
		relative = (x - m.Left) / total
	}
	if m.Direction == component.Left {
		relative = 1 - relative
	}

	t := relative
	if relative >= 0.5 {
		t = 0.5 - (relative - 0.5)
	}
	magnitude := math.Sqrt(math.Max(t, 0)) + m.MinSpeed
	return magnitude * m.Direction.Sign() * 2
}
