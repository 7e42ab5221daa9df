package component

// Player holds the tuning and per-tick flags of the controllable character.
// MoveSpeed is in world units per tick.
type Player struct {
	MoveSpeed      float64
	JumpHeight     float64
	JumpTimeToPeak float64
	Facing         Direction
	Animating      bool
}

var PlayerComponent = NewComponent[Player]()
