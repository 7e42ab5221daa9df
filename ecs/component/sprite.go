package component

import (
	"image"
	"image/color"
)

// Sprite draws the image registered under ImageKey (or a Fill rectangle when
// the key is empty) centred on the entity's Transform, scaled to
// Width x Height world units.
type Sprite struct {
	ImageKey  string
	Source    image.Rectangle
	UseSource bool
	Width     float64
	Height    float64
	FlipX     bool
	Fill      color.Color
	// Tint multiplies the drawn colour; nil draws unmodified.
	Tint color.Color
}

var SpriteComponent = NewComponent[Sprite]()
