package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/boxfield/terminal"
)

// Screen is the subset of tcell.Screen the renderer writes to
type Screen interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
	Sync()
}

var _ Screen = tcell.Screen(nil)

// RGBToTcell converts RGB to tcell.Color, quantizing to the xterm palette in 256 mode
func RGBToTcell(rgb RGB, mode terminal.ColorMode) tcell.Color {
	if mode == terminal.ColorMode256 {
		return tcell.PaletteColor(int(terminal.RGBTo256(rgb.R, rgb.G, rgb.B)))
	}
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// TcellToRGB converts tcell.Color to RGB
// Treats ColorDefault as black
func TcellToRGB(c tcell.Color) RGB {
	if c == tcell.ColorDefault {
		return RGBBlack
	}
	r, g, b := c.RGB()
	return RGB{uint8(r), uint8(g), uint8(b)}
}

// cellStyle builds the tcell style for a cell
func cellStyle(c Cell, mode terminal.ColorMode) tcell.Style {
	return tcell.StyleDefault.
		Foreground(RGBToTcell(c.Fg, mode)).
		Background(RGBToTcell(c.Bg, mode))
}
