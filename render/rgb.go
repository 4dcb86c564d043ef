package render

import (
	"math"

	"github.com/lixenwraith/boxfield/scene"
)

// RGB is a 24-bit terminal color
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack     = RGB{0, 0, 0}
	RgbHUDText   = RGB{192, 202, 245}
	RgbHUDDim    = RGB{86, 95, 137}
	RgbHUDAccent = RGB{125, 207, 255}
)

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// FromColor converts a unit-range scene color to RGB with rounding
func FromColor(c scene.Color) RGB {
	return RGB{
		R: clamp(math.Round(c.R * 255.0)),
		G: clamp(math.Round(c.G * 255.0)),
		B: clamp(math.Round(c.B * 255.0)),
	}
}
