package main

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/boxfield/config"
	"github.com/lixenwraith/boxfield/constant"
	"github.com/lixenwraith/boxfield/terminal"
)

func noEnv(string) (string, bool) { return "", false }

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := newFlags("test").resolveConfig(nil, noEnv)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxfield.toml")
	require.NoError(t, os.WriteFile(path, []byte("boxes = 5\nstars = 50\nfps = 20\n"), 0o644))

	env := func(k string) (string, bool) {
		switch k {
		case config.EnvStars:
			return "60", true
		case config.EnvFPS:
			return "25", true
		}
		return "", false
	}

	cfg, err := newFlags("test").resolveConfig([]string{"-config", path, "-fps", "30", "-loglevel", "debug"}, env)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Boxes, "file over default")
	assert.Equal(t, 60, cfg.Stars, "env over file")
	assert.Equal(t, 30, cfg.FPS, "flag over env")
	assert.Equal(t, "DEBUG", cfg.LogLevel)
}

func TestResolveConfigRejectsInvalid(t *testing.T) {
	_, err := newFlags("test").resolveConfig([]string{"-fps", "0"}, noEnv)
	assert.ErrorIs(t, err, config.ErrInvalid)

	f := newFlags("test")
	f.fs.SetOutput(io.Discard)
	_, err = f.resolveConfig([]string{"-loglevel", "loud"}, noEnv)
	assert.Error(t, err)
}

func TestLogLevelFlag(t *testing.T) {
	var l logLevelFlag
	require.NoError(t, l.Set("warn"))
	assert.Equal(t, slog.LevelWarn, l.value)
	assert.Equal(t, "WARN", l.String())
	assert.Error(t, l.Set("verbose"))
}

func TestHandleEvent(t *testing.T) {
	resized := 0
	onResize := func() { resized++ }

	assert.False(t, handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), onResize))
	assert.False(t, handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), onResize))
	assert.False(t, handleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), onResize))
	assert.False(t, handleEvent(nil, onResize))

	assert.True(t, handleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), onResize))
	assert.True(t, handleEvent(tcell.NewEventResize(80, 24), onResize))
	assert.Equal(t, 1, resized)
}

// chanSource feeds PollEvent from a channel
type chanSource struct {
	events chan tcell.Event
}

func (c *chanSource) PollEvent() tcell.Event { return <-c.events }
func (c *chanSource) PostEvent(ev tcell.Event) error {
	c.events <- ev
	return nil
}

func TestPollInputStopsOnCancel(t *testing.T) {
	src := &chanSource{events: make(chan tcell.Event, 4)}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		pollInput(ctx, src, func() {})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pollInput did not return after cancel")
	}
}

func TestPollInputStopsOnQuitKey(t *testing.T) {
	src := &chanSource{events: make(chan tcell.Event, 4)}
	src.events <- tcell.NewEventResize(10, 10)
	src.events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)

	resized := 0
	pollInput(context.Background(), src, func() { resized++ })
	assert.Equal(t, 1, resized)
}

func TestSetupLoggingDiscardsByDefault(t *testing.T) {
	logger, closer := setupLogging(slog.LevelInfo, "")
	assert.Nil(t, closer)
	assert.NotNil(t, logger)
}

func TestSetupLoggingWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxfield.log")
	logger, closer := setupLogging(slog.LevelDebug, path)
	require.NotNil(t, closer)
	defer closer.Close()

	logger.Debug("test message", "frame", 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "test message")
}

type fakeScreen struct {
	w, h  int
	cells int
	shows int
	syncs int
}

func (f *fakeScreen) Size() (int, int) { return f.w, f.h }
func (f *fakeScreen) Show()            { f.shows++ }
func (f *fakeScreen) Sync()            { f.syncs++ }
func (f *fakeScreen) SetContent(int, int, rune, []rune, tcell.Style) {
	f.cells++
}

func TestAppRendersFrames(t *testing.T) {
	cfg := config.Default()
	cfg.Boxes = 3
	cfg.Stars = 10

	scr := &fakeScreen{w: 40, h: 20}
	a := newApp(scr, cfg, terminal.ColorModeTrueColor, rand.New(rand.NewSource(1)), slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer a.close()

	before, ok := a.store.State().Get(0)
	require.True(t, ok)

	require.NoError(t, a.loop.Step())
	assert.Equal(t, 1, scr.shows)
	assert.Equal(t, 40*20, scr.cells)

	// Box rotation follows the store within the same frame
	v, _ := a.store.State().Get(0)
	assert.InDelta(t, before.X()+constant.RotationStep, v.X(), 1e-12)
	assert.Equal(t, v, a.field.Boxes[0].Node().Rotation)

	scr.w, scr.h = 30, 10
	a.requestResize()
	require.NoError(t, a.loop.Step())
	w, h := a.orchestrator.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 10, h)
	assert.Equal(t, 1, scr.syncs)
}
