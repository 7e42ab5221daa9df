package system

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/gavinmorrow/Pollywog/ecs"
	"github.com/gavinmorrow/Pollywog/ecs/component"
)

const (
	categorySolid uint = 1 << iota
	categoryCharacter
	categorySensor
)

// maxResolveIterations bounds the push-out loop for one axis of one move.
const maxResolveIterations = 4

// penetrationSlop is the overlap below which contacts only count as touching.
// Touching shapes are neither pushed out nor recorded as collisions.
const penetrationSlop = 1e-3

// PhysicsSystem adapts a chipmunk space into a kinematic character
// controller: it moves every CharacterController by its intended
// translation, slides along what it hits, and records grounded and the
// entities it touched. It also answers raycasts and sensor queries.
type PhysicsSystem struct {
	space    *cp.Space
	dt       float64
	entities map[ecs.Entity]*bodyInfo
	logger   *zap.Logger
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
	kind  component.BodyKind
}

// RayHit is the first collider hit by a raycast.
type RayHit struct {
	Entity ecs.Entity
	Point  cp.Vector
	// Alpha is the hit fraction along the ray, in [0, 1].
	Alpha float64
}

func NewPhysicsSystem(logger *zap.Logger, dt float64) *PhysicsSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dt <= 0 {
		dt = 1.0 / ecs.DefaultTPS
	}
	return &PhysicsSystem{
		space:    cp.NewSpace(),
		dt:       dt,
		entities: make(map[ecs.Entity]*bodyInfo),
		logger:   logger,
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.Sync(w)

	ecs.ForEach3(w, component.CharacterControllerComponent.Kind(), component.ColliderComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, ctrl *component.CharacterController, _ *component.Collider, t *component.Transform) {
			info := ps.entities[e]
			if info == nil || info.kind != component.BodyKinematic {
				return
			}
			ps.move(e, info, ctrl)
			pos := info.body.Position()
			t.X, t.Y = pos.X, pos.Y
		})

	// Kinematic-vs-static pairs generate no solver work; stepping refreshes
	// the broadphase for the moved shapes.
	ps.space.Step(ps.dt)
}

// Sync creates bodies for new colliders and drops bodies whose entity or
// collider is gone.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.ColliderComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, col *component.Collider, t *component.Transform) {
		if info, ok := ps.entities[e]; ok {
			col.Body, col.CPShape = info.body, info.shape
			return
		}
		info := ps.createBodyInfo(e, col, t)
		if info == nil {
			ps.logger.Warn("collider has no usable shape", zap.Stringer("entity", e))
			return
		}
		ps.entities[e] = info
		col.Body, col.CPShape = info.body, info.shape
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, col *component.Collider, t *component.Transform) *bodyInfo {
	var body *cp.Body
	if col.Kind == component.BodyKinematic {
		body = cp.NewKinematicBody()
	} else {
		body = cp.NewStaticBody()
	}
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.UserData = e
	ps.space.AddBody(body)

	var shape *cp.Shape
	switch col.Shape {
	case component.ShapeCircle:
		if col.Radius <= 0 {
			ps.space.RemoveBody(body)
			return nil
		}
		shape = cp.NewCircle(body, col.Radius, cp.Vector{})
	default:
		if col.Width <= 0 || col.Height <= 0 {
			ps.space.RemoveBody(body)
			return nil
		}
		shape = cp.NewBox(body, col.Width, col.Height, 0)
	}
	shape.UserData = e

	switch col.Kind {
	case component.BodyKinematic:
		shape.SetFilter(cp.NewShapeFilter(uint(e), categoryCharacter, cp.ALL_CATEGORIES))
	case component.BodySensor:
		shape.SetSensor(true)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySensor, categoryCharacter))
	default:
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
	}
	ps.space.AddShape(shape)

	return &bodyInfo{body: body, shape: shape, kind: col.Kind}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.ColliderComponent.Kind()) {
			continue
		}
		ps.removeBody(info)
		delete(ps.entities, e)
	}
}

func (ps *PhysicsSystem) removeBody(info *bodyInfo) {
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
	}
	if info.body != nil {
		ps.space.RemoveBody(info.body)
	}
}

// Reset removes every body from the space.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	for e, info := range ps.entities {
		ps.removeBody(info)
		delete(ps.entities, e)
	}
}

// move applies the intended translation one axis at a time, pushing out of
// solids after each axis.
func (ps *PhysicsSystem) move(e ecs.Entity, info *bodyInfo, ctrl *component.CharacterController) {
	ctrl.Grounded = false
	ctrl.Collisions = ctrl.Collisions[:0]

	delta := ctrl.Translation
	if delta.X != 0 {
		pos := info.body.Position()
		info.body.SetPosition(cp.Vector{X: pos.X + delta.X, Y: pos.Y})
		ps.resolve(info, ctrl, 0)
	}

	if delta.Y != 0 {
		pos := info.body.Position()
		info.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y + delta.Y})
	}
	ps.resolve(info, ctrl, delta.Y)
}

func (ps *PhysicsSystem) resolve(info *bodyInfo, ctrl *component.CharacterController, dy float64) {
	for i := 0; i < maxResolveIterations; i++ {
		var (
			push    cp.Vector
			deepest float64
		)
		ps.space.ShapeQuery(info.shape, func(other *cp.Shape, points *cp.ContactPointSet) {
			if other.Sensor() {
				return
			}
			penetrating := false
			for j := 0; j < points.Count; j++ {
				d := points.Points[j].Distance
				if d < -penetrationSlop {
					penetrating = true
				}
				if d < deepest {
					deepest = d
					push = points.Normal.Mult(d)
				}
			}
			if !penetrating {
				return
			}
			if hit, ok := other.UserData.(ecs.Entity); ok {
				addCollision(ctrl, hit)
			}
		})
		if deepest > -penetrationSlop {
			return
		}
		if dy < 0 && push.Y > 0 {
			ctrl.Grounded = true
		}
		info.body.SetPosition(info.body.Position().Add(push))
	}
}

func addCollision(ctrl *component.CharacterController, e ecs.Entity) {
	if ctrl.Touched(uint64(e)) {
		return
	}
	ctrl.Collisions = append(ctrl.Collisions, uint64(e))
}

// Raycast returns the first solid or character collider hit by the segment
// from origin along dir for maxDist units, ignoring exclude's collider.
func (ps *PhysicsSystem) Raycast(origin, dir cp.Vector, maxDist float64, exclude ecs.Entity) (RayHit, bool) {
	if ps == nil || maxDist <= 0 || dir.LengthSq() == 0 {
		return RayHit{}, false
	}
	end := origin.Add(dir.Normalize().Mult(maxDist))

	filter := cp.SHAPE_FILTER_ALL
	if info, ok := ps.entities[exclude]; ok && info.shape != nil {
		filter = cp.NewShapeFilter(info.shape.Filter.Group, cp.ALL_CATEGORIES, categorySolid|categoryCharacter)
	} else {
		filter = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categorySolid|categoryCharacter)
	}

	res := ps.space.SegmentQueryFirst(origin, end, 0, filter)
	if res.Shape == nil {
		return RayHit{}, false
	}
	hit, ok := res.Shape.UserData.(ecs.Entity)
	if !ok {
		return RayHit{}, false
	}
	return RayHit{Entity: hit, Point: res.Point, Alpha: res.Alpha}, true
}

// Intersections returns the sensor entities currently overlapping e.
func (ps *PhysicsSystem) Intersections(e ecs.Entity) []ecs.Entity {
	if ps == nil {
		return nil
	}
	info, ok := ps.entities[e]
	if !ok || info.shape == nil {
		return nil
	}
	var out []ecs.Entity
	ps.space.ShapeQuery(info.shape, func(other *cp.Shape, points *cp.ContactPointSet) {
		if !other.Sensor() {
			return
		}
		hit, ok := other.UserData.(ecs.Entity)
		if !ok {
			return
		}
		out = append(out, hit)
	})
	return out
}
