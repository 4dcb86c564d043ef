package terminal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want ColorMode
	}{
		{"colorterm", map[string]string{"COLORTERM": "truecolor"}, ColorModeTrueColor},
		{"kitty", map[string]string{"KITTY_WINDOW_ID": "1"}, ColorModeTrueColor},
		{"term direct", map[string]string{"TERM": "xterm-DIRECT"}, ColorModeTrueColor},
		{"plain xterm", map[string]string{"TERM": "xterm-256color"}, ColorMode256},
		{"empty", nil, ColorMode256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectColorMode(env(tt.env)))
		})
	}
}

func TestParseColorMode(t *testing.T) {
	m, err := ParseColorMode("256", env(map[string]string{"COLORTERM": "truecolor"}))
	require.NoError(t, err)
	assert.Equal(t, ColorMode256, m)

	m, err = ParseColorMode("24bit", env(nil))
	require.NoError(t, err)
	assert.Equal(t, ColorModeTrueColor, m)

	m, err = ParseColorMode("auto", env(map[string]string{"COLORTERM": "24bit"}))
	require.NoError(t, err)
	assert.Equal(t, ColorModeTrueColor, m)
	assert.Equal(t, "truecolor", m.String())

	_, err = ParseColorMode("16", env(nil))
	assert.Error(t, err)
}

func TestRGBTo256(t *testing.T) {
	assert.Equal(t, uint8(16), RGBTo256(0, 0, 0))
	assert.Equal(t, uint8(231), RGBTo256(255, 255, 255))
	assert.Equal(t, uint8(196), RGBTo256(255, 0, 0))
	assert.Equal(t, uint8(21), RGBTo256(0, 0, 255))

	// Mid gray prefers the grayscale ramp
	idx := RGBTo256(128, 128, 128)
	assert.GreaterOrEqual(t, idx, uint8(232))
}

func TestEmergencyResetWritesSequences(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)

	out := buf.String()
	assert.Contains(t, out, "\x1b[?25h")
	assert.Contains(t, out, "\x1b[?1049l")
	assert.Contains(t, out, "\x1b[0m")
}
