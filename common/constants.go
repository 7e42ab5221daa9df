package common

import "image/color"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// World constants. One world unit is one pixel.
const (
	Tile           = 64.0
	PixelsPerMeter = 1.0
	WinX           = Tile * 32

	// Gravity is applied every tick as the player's base translation.
	Gravity = -9.81

	InitialHealth  = 100.0
	MovementSpeed  = 3.0
	JumpHeight     = 1.5 * PixelsPerMeter
	JumpTimeToPeak = 0.5

	PullStrength      = 10.0
	GuidelineDistance = 50.0
	GuidelineDotSize  = 10.0
	GrappleMarkerSize = 10.0
)

// BackgroundColor is the clear colour behind the parallax layers.
var BackgroundColor = color.NRGBA{R: 46, G: 54, B: 51, A: 0xff}
