package main

import (
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/boxfield/audio"
	"github.com/lixenwraith/boxfield/components"
	"github.com/lixenwraith/boxfield/config"
	"github.com/lixenwraith/boxfield/constant"
	"github.com/lixenwraith/boxfield/engine"
	"github.com/lixenwraith/boxfield/render"
	"github.com/lixenwraith/boxfield/render/renderers"
	"github.com/lixenwraith/boxfield/store"
	"github.com/lixenwraith/boxfield/terminal"
)

// app wires store, loop, scene and renderers around one screen
type app struct {
	screen       render.Screen
	store        *store.Store
	loop         *engine.Loop
	field        *components.Field
	orchestrator *render.RenderOrchestrator
	logger       *slog.Logger

	resizePending atomic.Bool
	closers       []func()
}

func newApp(screen render.Screen, cfg config.Config, colorMode terminal.ColorMode, rng *rand.Rand, logger *slog.Logger) *app {
	a := &app{
		screen:       screen,
		store:        store.New(store.RandomTable(cfg.Boxes, rng)),
		orchestrator: render.NewRenderOrchestrator(screen, colorMode),
		logger:       logger,
	}

	a.loop = engine.NewLoop(a.store, cfg.FrameInterval(),
		engine.WithLogger(logger),
		engine.WithRender(a.renderFrame),
	)

	a.field = components.Compose(a.store, a.loop, components.FieldOptions{
		StarCount:  cfg.Stars,
		StarSpread: cfg.StarSpread,
		Rand:       rng,
	})

	reserve := 0
	if cfg.HUD {
		reserve = constant.HUDRows
	}
	sceneRenderer := renderers.NewSceneRenderer(a.field.Root, render.NewCamera(), reserve)
	a.orchestrator.Register(sceneRenderer, render.PriorityScene)
	a.orchestrator.Register(renderers.NewStatusBarRenderer(title, sceneRenderer, cfg.HUD), render.PriorityUI)

	return a
}

// requestResize is called from the input goroutine; the loop goroutine applies it
func (a *app) requestResize() {
	a.resizePending.Store(true)
}

func (a *app) renderFrame(info engine.FrameInfo) error {
	if a.resizePending.Swap(false) {
		w, h := a.screen.Size()
		a.orchestrator.Resize(w, h)
	}
	a.orchestrator.RenderFrame(render.RenderContext{
		FrameNumber: info.Number,
		DeltaTime:   info.Delta,
		FrameTime:   info.FrameTime,
	})
	return nil
}

// startAudio attaches the drone to the star field; failure leaves the demo silent
func (a *app) startAudio() {
	sm := audio.NewSoundManager(a.logger)
	if err := sm.Initialize(); err != nil {
		a.logger.Warn("audio initialization failed, continuing without audio", "error", err)
		return
	}
	sm.Start()
	cancel := a.loop.OnFrame(func(time.Duration) {
		sm.SetLevel(a.field.Stars.Scale())
	})
	a.closers = append(a.closers, cancel, sm.Cleanup)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	a.field.Close()
}
