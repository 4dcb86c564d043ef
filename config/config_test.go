package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/boxfield/constant"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, constant.DefaultBoxCount, c.Boxes)
	assert.Equal(t, constant.DefaultStarCount, c.Stars)
	assert.Equal(t, constant.FrameUpdateInterval, Default().FrameInterval().Truncate(time.Millisecond))
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxfield.toml")
	require.NoError(t, os.WriteFile(path, []byte("boxes = 3\naudio = true\n"), 0o644))

	c := Default()
	require.NoError(t, c.Load(path))
	assert.Equal(t, 3, c.Boxes)
	assert.True(t, c.Audio)
	assert.Equal(t, constant.DefaultStarCount, c.Stars, "absent keys keep defaults")
}

func TestLoadErrors(t *testing.T) {
	c := Default()
	assert.Error(t, c.Load(filepath.Join(t.TempDir(), "missing.toml")))

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("colour = 1\n"), 0o644))
	assert.ErrorIs(t, c.Load(path), ErrInvalid)
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(envMap(map[string]string{
		EnvBoxes: "7",
		EnvFPS:   "30",
		EnvSeed:  "42",
		EnvHUD:   "false",
		EnvStars: "",
	}))
	require.NoError(t, err)
	assert.Equal(t, 7, c.Boxes)
	assert.Equal(t, 30, c.FPS)
	assert.Equal(t, int64(42), c.Seed)
	assert.False(t, c.HUD)
	assert.Equal(t, constant.DefaultStarCount, c.Stars, "empty value ignored")

	assert.Error(t, c.ApplyEnv(envMap(map[string]string{EnvBoxes: "many"})))
	assert.Error(t, c.ApplyEnv(envMap(map[string]string{EnvAudio: "maybe"})))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative boxes", func(c *Config) { c.Boxes = -1 }},
		{"negative stars", func(c *Config) { c.Stars = -1 }},
		{"zero spread", func(c *Config) { c.StarSpread = 0 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"fps too high", func(c *Config) { c.FPS = constant.MaxFPS + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}

	c := Default()
	c.Boxes, c.Stars = 0, 0
	assert.NoError(t, c.Validate(), "empty scene is allowed")
}

func TestFrameInterval(t *testing.T) {
	c := Config{FPS: 50}
	assert.Equal(t, 20*time.Millisecond, c.FrameInterval())
	c.FPS = 0
	assert.Equal(t, constant.FrameUpdateInterval, c.FrameInterval())
}
