package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/boxfield/constant"
)

const sampleRate = beep.SampleRate(constant.AudioSampleRate)

// SoundManager owns the speaker and the ambient drone
// All methods are safe to call when initialization failed or never happened
type SoundManager struct {
	mu          sync.Mutex
	drone       *Drone
	ctrl        *beep.Ctrl
	mixer       *beep.Mixer
	initialized bool
	logger      *slog.Logger
}

// NewSoundManager creates a sound manager; no device is opened until Initialize
func NewSoundManager(logger *slog.Logger) *SoundManager {
	if logger == nil {
		logger = slog.Default()
	}
	d := NewDrone(sampleRate)
	return &SoundManager{
		drone:  d,
		ctrl:   &beep.Ctrl{Streamer: d, Paused: true},
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize opens the speaker and starts the paused drone
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constant.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	sm.mixer.Add(sm.ctrl)
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Info("audio initialized", "sample_rate", int(sampleRate))
	return nil
}

// Start unpauses the drone
func (sm *SoundManager) Start() {
	sm.setPaused(false)
}

// Stop pauses the drone
func (sm *SoundManager) Stop() {
	sm.setPaused(true)
}

func (sm *SoundManager) setPaused(paused bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.ctrl.Paused = paused
	speaker.Unlock()
}

// SetLevel forwards the field scale to the drone
func (sm *SoundManager) SetLevel(level float64) {
	sm.drone.SetLevel(level)
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.ctrl.Paused = true
	speaker.Unlock()
	speaker.Clear()
	sm.mixer.Clear()

	// beep keeps the device open; clearing streamers leaves it silent
	sm.initialized = false
}
