package scene

// Color is a linear RGB color with components in [0, 1]
type Color struct {
	R, G, B float64
}

// ColorHex converts 0xRRGGBB to Color
func ColorHex(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xFF) / 255,
		G: float64((hex>>8)&0xFF) / 255,
		B: float64(hex&0xFF) / 255,
	}
}

// LightBlue is the CSS lightblue color
var LightBlue = ColorHex(0xADD8E6)

// Material describes how a mesh surface is shaded
type Material interface {
	material()
}

// NormalMaterial colors each surface by its view-space normal
type NormalMaterial struct{}

// BasicMaterial fills surfaces with a flat unlit color
type BasicMaterial struct {
	Color Color
}

func (*NormalMaterial) material() {}
func (*BasicMaterial) material()  {}
