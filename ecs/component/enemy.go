package component

// Enemy hurts the player on contact.
type Enemy struct {
	Damage float64
}

var EnemyComponent = NewComponent[Enemy]()

type MovementKind int

const (
	MovementStationary MovementKind = iota
	MovementPatrol
)

func (k MovementKind) String() string {
	switch k {
	case MovementPatrol:
		return "patrol"
	default:
		return "stationary"
	}
}

// Movement selects how an NPC moves each tick. Left and Right bound a patrol
// in world units; Speed holds the last signed horizontal speed.
type Movement struct {
	Kind      MovementKind
	Left      float64
	Right     float64
	MinSpeed  float64
	Direction Direction
	Speed     float64
}

var MovementComponent = NewComponent[Movement]()

func PatrolBetween(left, right, minSpeed float64) *Movement {
	if left > right {
		left, right = right, left
	}
	return &Movement{
		Kind:      MovementPatrol,
		Left:      left,
		Right:     right,
		MinSpeed:  minSpeed,
		Direction: Right,
	}
}

func Stationary() *Movement {
	return &Movement{Kind: MovementStationary}
}
