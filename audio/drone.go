// Package audio plays an optional ambient drone that breathes with the star
// field: its loudness and pitch follow the field's current scale.
package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/boxfield/constant"
)

// Drone is an endless sine streamer whose gain and pitch track a level in [-1, 1]
type Drone struct {
	sr     beep.SampleRate
	freq   float64
	detune float64
	volume float64

	level atomic.Uint64 // math.Float64bits
	phase float64       // Cycles in [0, 1), touched only by the speaker goroutine
}

// NewDrone creates a drone at the default pitch and volume
func NewDrone(sr beep.SampleRate) *Drone {
	return &Drone{
		sr:     sr,
		freq:   constant.DroneFrequency,
		detune: constant.DroneDetune,
		volume: constant.DroneVolume,
	}
}

// SetLevel updates the drone from the field scale; safe from any goroutine
func (d *Drone) SetLevel(level float64) {
	level = math.Max(-1, math.Min(1, level))
	d.level.Store(math.Float64bits(level))
}

// Level returns the last level set
func (d *Drone) Level() float64 {
	return math.Float64frombits(d.level.Load())
}

// Stream implements beep.Streamer
func (d *Drone) Stream(samples [][2]float64) (n int, ok bool) {
	level := d.Level()
	gain := d.volume * math.Abs(level)
	inc := (d.freq + d.detune*level) / float64(d.sr)

	for i := range samples {
		v := gain * math.Sin(2*math.Pi*d.phase)
		samples[i][0] = v
		samples[i][1] = v
		d.phase += inc
		if d.phase >= 1 {
			d.phase -= 1
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer
func (d *Drone) Err() error {
	return nil
}
