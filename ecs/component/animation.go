package component

import "image"

// AnimatedSprite cycles frames First..Last of a grid sheet every Interval
// seconds while its owner is animating. The current frame is written to the
// entity's Sprite source rectangle.
type AnimatedSprite struct {
	FrameW   int
	FrameH   int
	Columns  int
	First    int
	Last     int
	Index    int
	Interval float64
	Timer    float64
}

var AnimatedSpriteComponent = NewComponent[AnimatedSprite]()

// Frame returns the sheet rectangle of the current frame.
func (a *AnimatedSprite) Frame() image.Rectangle {
	cols := a.Columns
	if cols <= 0 {
		cols = 1
	}
	x := (a.Index % cols) * a.FrameW
	y := (a.Index / cols) * a.FrameH
	return image.Rect(x, y, x+a.FrameW, y+a.FrameH)
}
