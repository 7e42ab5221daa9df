package component

import "github.com/jakecoffman/cp"

type BodyKind int

const (
	// BodyKinematic is moved by the character controller.
	BodyKinematic BodyKind = iota
	// BodyStatic is solid level geometry.
	BodyStatic
	// BodySensor reports overlaps without blocking.
	BodySensor
)

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

// Collider describes an entity's collision shape. Body and Shape are filled
// in by the physics system when the entity is first seen.
type Collider struct {
	Kind   BodyKind
	Shape  ShapeKind
	Width  float64
	Height float64
	Radius float64

	Body      *cp.Body
	CPShape   *cp.Shape
	Ephemeral bool
}

var ColliderComponent = NewComponent[Collider]()

// CharacterController carries the intended translation for the next physics
// step and the result of the previous one.
type CharacterController struct {
	Translation cp.Vector
	Grounded    bool
	// Collisions lists the entities (as ecs.Entity values) touched while
	// moving during the last step, in contact order, without duplicates.
	Collisions []uint64
}

var CharacterControllerComponent = NewComponent[CharacterController]()

// Touched reports whether the last step's collision list contains e.
func (c *CharacterController) Touched(e uint64) bool {
	for _, hit := range c.Collisions {
		if hit == e {
			return true
		}
	}
	return false
}
