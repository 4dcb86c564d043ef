package render

import "time"

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	FrameNumber uint64
	DeltaTime   time.Duration

	// Mean frame duration over the recent window, zero until measured
	FrameTime time.Duration

	ScreenWidth  int
	ScreenHeight int
}

// FPS derives frames per second from FrameTime
func (c RenderContext) FPS() float64 {
	if c.FrameTime <= 0 {
		return 0
	}
	return float64(time.Second) / float64(c.FrameTime)
}
