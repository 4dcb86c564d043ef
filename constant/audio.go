package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Ambient Drone
const (
	// DroneFrequency is the base pitch in Hz
	DroneFrequency = 110.0

	// DroneDetune is the pitch swing in Hz applied with the field scale
	DroneDetune = 20.0

	// DroneVolume is the peak amplitude before scaling
	DroneVolume = 0.15
)
