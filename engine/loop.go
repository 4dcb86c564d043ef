// Package engine drives the animation: one explicit loop that, per display
// refresh, mutates the shared store, runs frame callbacks and renders.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/lixenwraith/boxfield/constant"
	"github.com/lixenwraith/boxfield/store"
)

// FrameInfo describes one completed loop iteration
type FrameInfo struct {
	Number    uint64
	Delta     time.Duration // Time since the previous iteration
	FrameTime time.Duration // Smoothed iteration interval
}

// RenderFunc presents a frame after mutation and callbacks
type RenderFunc func(FrameInfo) error

// frameEntry is one registered per-frame callback
type frameEntry struct {
	fn     func(time.Duration)
	active atomic.Bool
}

// Loop schedules store mutation, frame callbacks and rendering once per refresh
type Loop struct {
	store    *store.Store
	interval time.Duration
	clock    TimeProvider
	logger   *slog.Logger
	render   RenderFunc

	mu        sync.Mutex
	callbacks []*frameEntry

	frameCount atomic.Uint64
	lastTick   time.Time
	frameTime  time.Duration
	statsLog   rate.Sometimes
}

// Option configures a Loop
type Option func(*Loop)

// WithClock overrides the time source
func WithClock(c TimeProvider) Option {
	return func(l *Loop) { l.clock = c }
}

// WithLogger sets the logger for loop statistics
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithRender sets the presentation step run at the end of every iteration
func WithRender(fn RenderFunc) Option {
	return func(l *Loop) { l.render = fn }
}

// NewLoop creates a loop advancing s every interval
// A non-positive interval falls back to the default refresh interval
func NewLoop(s *store.Store, interval time.Duration, opts ...Option) *Loop {
	if interval <= 0 {
		interval = constant.FrameUpdateInterval
	}
	l := &Loop{
		store:    s,
		interval: interval,
		clock:    NewMonotonicTimeProvider(),
		logger:   slog.Default(),
		statsLog: rate.Sometimes{Interval: constant.StatsLogInterval},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Interval returns the refresh interval
func (l *Loop) Interval() time.Duration { return l.interval }

// Frames returns the number of completed iterations
func (l *Loop) Frames() uint64 { return l.frameCount.Load() }

// OnFrame registers fn to run every iteration after the store mutation
// Callbacks run in registration order; the returned func unregisters.
// After cancel returns, fn is skipped by every later Step and by the rest of
// the current one; a Step already calling fn on another goroutine is not interrupted
func (l *Loop) OnFrame(fn func(dt time.Duration)) (cancel func()) {
	e := &frameEntry{fn: fn}
	e.active.Store(true)

	l.mu.Lock()
	l.callbacks = append(l.callbacks, e)
	l.mu.Unlock()

	return func() {
		if !e.active.CompareAndSwap(true, false) {
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, existing := range l.callbacks {
			if existing == e {
				l.callbacks = append(l.callbacks[:i], l.callbacks[i+1:]...)
				break
			}
		}
	}
}

// Step runs exactly one iteration: mutate, frame callbacks, render
func (l *Loop) Step() error {
	now := l.clock.Now()
	dt := l.interval
	if !l.lastTick.IsZero() {
		dt = now.Sub(l.lastTick)
	}
	l.lastTick = now

	// Subscribers observe the new state before any frame callback reads it
	l.store.Mutate()

	l.mu.Lock()
	callbacks := make([]*frameEntry, len(l.callbacks))
	copy(callbacks, l.callbacks)
	l.mu.Unlock()

	for _, e := range callbacks {
		if e.active.Load() {
			e.fn(dt)
		}
	}

	// Exponential moving average of iteration interval
	if l.frameTime == 0 {
		l.frameTime = dt
	} else {
		l.frameTime += (dt - l.frameTime) / 10
	}

	info := FrameInfo{
		Number:    l.frameCount.Add(1),
		Delta:     dt,
		FrameTime: l.frameTime,
	}

	l.statsLog.Do(func() {
		l.logger.Debug("loop stats",
			"frame", info.Number,
			"frame_time", info.FrameTime,
			"mutations", l.store.Mutations(),
		)
	})

	if l.render != nil {
		if err := l.render(info); err != nil {
			return fmt.Errorf("render frame %d: %w", info.Number, err)
		}
	}
	return nil
}

// Run iterates once per interval until ctx is done or a render fails
// Cancellation returns nil; a deadline returns the context error
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Info("loop started", "interval", l.interval)
	defer func() { l.logger.Info("loop stopped", "frames", l.Frames()) }()

	for {
		if err := ctx.Err(); err != nil {
			return contextResult(err)
		}
		select {
		case <-ctx.Done():
			return contextResult(ctx.Err())
		case <-ticker.C:
			if err := l.Step(); err != nil {
				return err
			}
		}
	}
}

func contextResult(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
