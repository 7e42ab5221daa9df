package component

// Transform is a world-space position. The world is y-up; rendering flips it.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
