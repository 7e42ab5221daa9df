package component

// Camera follows the player with a dead zone and per-axis speed cap. Its
// Transform is the world point shown at the centre of the screen.
type Camera struct {
	Divisor   float64
	DeadZone  float64
	MaxSpeedX float64
	MaxSpeedY float64
	Zoom      float64
}

var CameraComponent = NewComponent[Camera]()
