package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/boxfield/config"
	"github.com/lixenwraith/boxfield/engine"
	"github.com/lixenwraith/boxfield/terminal"
)

const title = "boxfield"

func main() {
	flags := newFlags(os.Args[0])
	cfg, err := flags.resolveConfig(os.Args[1:], os.LookupEnv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
		os.Exit(2)
	}

	colorMode, err := terminal.ParseColorMode(flags.color, os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
		os.Exit(2)
	}

	var level logLevelFlag
	if err := level.Set(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
		os.Exit(2)
	}
	logger, closer := setupLogging(level.value, cfg.LogFile)
	if closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, colorMode, logger); err != nil {
		logger.Error("exit", "error", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", title, err)
		os.Exit(1)
	}
}

// run owns the screen for the lifetime of the demo
func run(ctx context.Context, cfg config.Config, colorMode terminal.ColorMode, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()
	screen.Clear()

	// Panics on guarded goroutines restore the terminal before the stack is printed
	engine.SetCrashHandler(func(r any) {
		screen.Fini()
		terminal.EmergencyReset(os.Stdout)
		// \r\n keeps output aligned if the tty is still raw
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mBOXFIELD CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	})
	defer engine.SetCrashHandler(nil)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Info("starting",
		"boxes", cfg.Boxes,
		"stars", cfg.Stars,
		"fps", cfg.FPS,
		"seed", seed,
		"color", colorMode.String(),
	)

	app := newApp(screen, cfg, colorMode, rng, logger)
	defer app.close()

	if cfg.Audio {
		app.startAudio()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(engine.Guard(func() error {
		// A clean stop from the loop still ends input polling
		defer cancel()
		return app.loop.Run(gctx)
	}))
	g.Go(engine.Guard(func() error {
		defer cancel()
		pollInput(gctx, screen, app.requestResize)
		return nil
	}))

	return g.Wait()
}
