package terminal

import (
	"fmt"
	"strings"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the flag spelling of the mode
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode resolves a -color flag value; "auto" and "" defer to DetectColorMode
func ParseColorMode(s string, lookup func(string) (string, bool)) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(lookup), nil
	case "256":
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	}
	return ColorMode256, fmt.Errorf("unknown color mode %q", s)
}

// DetectColorMode determines terminal color capability from environment
// lookup is normally os.LookupEnv
func DetectColorMode(lookup func(string) (string, bool)) ColorMode {
	get := func(k string) string {
		v, _ := lookup(k)
		return v
	}

	// COLORTERM is set by most modern terminals
	colorterm := get("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	for _, k := range []string{
		"KITTY_WINDOW_ID",
		"KONSOLE_VERSION",
		"ITERM_SESSION_ID",
		"ALACRITTY_WINDOW_ID",
		"ALACRITTY_LOG",
		"WEZTERM_PANE",
	} {
		if get(k) != "" {
			return ColorModeTrueColor
		}
	}

	term := strings.ToLower(get("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to the nearest cube level
var cubeIndex [256]uint8

func init() {
	for i := range cubeIndex {
		best := 0
		for j := 1; j < len(cubeValues); j++ {
			if abs(i-cubeValues[j]) < abs(i-cubeValues[best]) {
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 returns the nearest xterm-256 palette index
// Near-neutral colors may land on the grayscale ramp (232-255)
func RGBTo256(r, g, b uint8) uint8 {
	cr, cg, cb := cubeIndex[r], cubeIndex[g], cubeIndex[b]
	cube := 16 + 36*int(cr) + 6*int(cg) + int(cb)

	ir, ig, ib := int(r), int(g), int(b)
	gray := (ir + ig + ib) / 3
	if max(abs(ir-gray), abs(ig-gray), abs(ib-gray)) >= 10 {
		return uint8(cube)
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}

	// Grayscale ramp: 232-255 map to 8, 18, ..., 238
	grayIdx := min(232+(gray-8)/10, 255)
	level := 8 + (grayIdx-232)*10
	grayDist := abs(ir-level) + abs(ig-level) + abs(ib-level)
	cubeDist := abs(ir-cubeValues[cr]) + abs(ig-cubeValues[cg]) + abs(ib-cubeValues[cb])
	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return uint8(cube)
}
