package component

// Jump is present on the player only while a jump is in progress. Velocities
// are world units per tick.
type Jump struct {
	Gravity         float64
	InitialVelocity float64
	Elapsed         float64
	Duration        float64
}

var JumpComponent = NewComponent[Jump]()

// NewJump derives the ballistic profile reaching height after timeToPeak
// seconds and returning to the start height after twice that.
func NewJump(height, timeToPeak float64) *Jump {
	return &Jump{
		Gravity:         -2 * height / (timeToPeak * timeToPeak),
		InitialVelocity: 2 * height / timeToPeak,
		Duration:        2 * timeToPeak,
	}
}

// VelocityAt returns the vertical velocity after elapsed seconds.
func (j *Jump) VelocityAt(elapsed float64) float64 {
	return j.Gravity*elapsed + j.InitialVelocity
}

// Velocity returns the vertical velocity at the current elapsed time.
func (j *Jump) Velocity() float64 {
	return j.VelocityAt(j.Elapsed)
}

// Advance moves elapsed forward by dt, holding at Duration once the arc is
// complete so the fall continues at -InitialVelocity.
func (j *Jump) Advance(dt float64) {
	j.Elapsed += dt
	if j.Elapsed > j.Duration {
		j.Elapsed = j.Duration
	}
}
