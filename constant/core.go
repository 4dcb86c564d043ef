package constant

import "time"

// Loop Timing
const (
	// FrameUpdateInterval is the display refresh interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DefaultFPS matches FrameUpdateInterval
	DefaultFPS = 60

	// MaxFPS bounds configurable refresh rate
	MaxFPS = 240

	// StatsLogInterval throttles loop statistics logging
	StatsLogInterval = 5 * time.Second
)

// Animation State
const (
	// DefaultBoxCount is the number of rotating boxes declared at startup
	DefaultBoxCount = 200

	// RotationStep is added to every rotation component on each mutation
	RotationStep = 0.01
)

// Ambient Field
const (
	// DefaultStarCount is the number of fixed star placements
	DefaultStarCount = 2000

	// StarSpread is the half-extent of the cube stars are scattered in
	StarSpread = 400.0

	// PhaseStep is added to the star phase accumulator each frame (degrees)
	PhaseStep = 0.1

	// RotationAmplitude scales the sinusoidal group rotation
	RotationAmplitude = 5.0
)
