package system

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
	"github.com/gavinmorrow/Pollywog/ecs/entity"
)

// GrappleSystem drives the player's grapple between Idle, Aiming and
// Grappling once per frame. While aiming it raycasts toward the cursor and
// keeps the target marker and guideline up to date.
type GrappleSystem struct {
	logger  *zap.Logger
	physics *PhysicsSystem
	screenW float64
	screenH float64
}

func NewGrappleSystem(logger *zap.Logger, physics *PhysicsSystem, screenW, screenH float64) *GrappleSystem {
	return &GrappleSystem{
		logger:  orNop(logger),
		physics: physics,
		screenW: screenW,
		screenH: screenH,
	}
}

func (s *GrappleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := firstPlayer(w)
	if !ok {
		s.logger.Debug("no player")
		return
	}
	g, ok := ecs.Get(w, player, component.GrappleComponent.Kind())
	if !ok {
		return
	}
	var actions component.ActionState
	if as, ok := ecs.Get(w, player, component.ActionStateComponent.Kind()); ok {
		actions = *as
	}
	justPressed := actions.JustPressed.Has(component.ActionGrapple)
	justReleased := actions.JustReleased.Has(component.ActionGrapple)

	switch g.State {
	case component.GrappleIdle:
		if justPressed && !justReleased {
			s.transition(w, g, component.GrappleAiming)
			s.aim(w, player, g, actions)
		}

	case component.GrappleAiming:
		if justReleased {
			if g.Target == nil {
				s.transition(w, g, component.GrappleIdle)
			} else {
				s.transition(w, g, component.GrappleGrappling)
			}
			return
		}
		s.aim(w, player, g, actions)

	case component.GrappleGrappling:
		if justPressed {
			s.transition(w, g, component.GrappleAiming)
			s.aim(w, player, g, actions)
			return
		}
		if g.Target == nil || !ecs.IsAlive(w, ecs.Entity(g.Target.Attached)) {
			s.transition(w, g, component.GrappleIdle)
			return
		}
		if ctrl, ok := ecs.Get(w, player, component.CharacterControllerComponent.Kind()); ok &&
			ctrl.Touched(g.Target.Attached) {
			s.transition(w, g, component.GrappleIdle)
			return
		}
		if actions.Pressed.Any(component.ActionGrapple) {
			s.transition(w, g, component.GrappleIdle)
		}
	}
}

// transition runs the exit hook of the current state and switches to next.
func (s *GrappleSystem) transition(w *ecs.World, g *component.Grapple, next component.GrappleState) {
	switch g.State {
	case component.GrappleAiming:
		clearGuideline(w, g)
		if next == component.GrappleIdle {
			clearTarget(w, g)
		}
	case component.GrappleGrappling:
		clearTarget(w, g)
	}
	s.logger.Debug("grapple transition", zap.Stringer("from", g.State), zap.Stringer("to", next))
	g.State = next
}

func (s *GrappleSystem) aim(w *ecs.World, player ecs.Entity, g *component.Grapple, actions component.ActionState) {
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	view, ok := CurrentView(w, s.screenW, s.screenH)
	if !ok {
		s.logger.Debug("no camera")
		return
	}
	if !actions.CursorInWindow {
		clearTarget(w, g)
		clearGuideline(w, g)
		return
	}

	origin := cp.Vector{X: t.X, Y: t.Y}
	cx, cy := view.ScreenToWorld(actions.CursorX, actions.CursorY)
	dir := cp.Vector{X: cx, Y: cy}.Sub(origin)
	maxDist := view.EdgeDistance(origin, dir)

	hit, ok := s.physics.Raycast(origin, dir, maxDist, player)
	if !ok {
		clearTarget(w, g)
		clearGuideline(w, g)
		return
	}

	clearTarget(w, g)
	marker, err := entity.NewGrappleMarker(w, hit.Point.X, hit.Point.Y)
	if err != nil {
		s.logger.Error("spawn grapple marker", zap.Error(err))
	}
	g.Target = &component.GrappleTarget{
		X:        hit.Point.X,
		Y:        hit.Point.Y,
		Attached: uint64(hit.Entity),
		Marker:   uint64(marker),
	}

	s.rebuildGuideline(w, g, origin, hit.Point)
}

func (s *GrappleSystem) rebuildGuideline(w *ecs.World, g *component.Grapple, from, to cp.Vector) {
	clearGuideline(w, g)
	spacing := g.GuidelineDistance
	if spacing <= 0 {
		return
	}
	delta := to.Sub(from)
	length := delta.Length()
	if length == 0 {
		return
	}
	step := delta.Mult(1 / length)
	for d := spacing; d < length; d += spacing {
		p := from.Add(step.Mult(d))
		dot, err := entity.NewGuidelineDot(w, p.X, p.Y)
		if err != nil {
			s.logger.Error("spawn guideline dot", zap.Error(err))
			return
		}
		g.Guideline = append(g.Guideline, uint64(dot))
	}
}

func clearTarget(w *ecs.World, g *component.Grapple) {
	if g.Target == nil {
		return
	}
	if g.Target.Marker != 0 {
		ecs.DestroyEntity(w, ecs.Entity(g.Target.Marker))
	}
	g.Target = nil
}

func clearGuideline(w *ecs.World, g *component.Grapple) {
	for _, dot := range g.Guideline {
		ecs.DestroyEntity(w, ecs.Entity(dot))
	}
	g.Guideline = g.Guideline[:0]
}

// ResetGrapple returns g to Idle and destroys its marker and guideline.
func ResetGrapple(w *ecs.World, g *component.Grapple) {
	clearTarget(w, g)
	clearGuideline(w, g)
	g.State = component.GrappleIdle
}

// GrapplePullSystem pulls a grappling player toward the target each tick,
// replacing gravity and walking.
type GrapplePullSystem struct{}

func NewGrapplePullSystem() *GrapplePullSystem {
	return &GrapplePullSystem{}
}

func (s *GrapplePullSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach4(w, component.GrappleComponent.Kind(), component.PlayerComponent.Kind(),
		component.TransformComponent.Kind(), component.CharacterControllerComponent.Kind(),
		func(_ ecs.Entity, g *component.Grapple, p *component.Player, t *component.Transform, ctrl *component.CharacterController) {
			if !g.Grappling() {
				return
			}
			delta := cp.Vector{X: g.Target.X - t.X, Y: g.Target.Y - t.Y}
			if delta.LengthSq() == 0 {
				ctrl.Translation = cp.Vector{}
				return
			}
			d := delta.Normalize()
			if d.X < 0 {
				p.Facing = component.Left
			} else if d.X > 0 {
				p.Facing = component.Right
			}
			ctrl.Translation = d.Mult(g.PullStrength)
		})
}
