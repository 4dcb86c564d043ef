package constant

// Geometry
const (
	// BoxSize is the edge length of every box
	BoxSize = 2.0

	// StarRadius is the radius of the shared star sphere
	StarRadius = 1.0

	// StarSegments is both width and height segment count of the star sphere
	StarSegments = 10
)

// Camera, matching a default perspective canvas
const (
	CameraFovDeg = 75.0
	CameraNear   = 0.1
	CameraFar    = 1000.0
	CameraZ      = 5.0
)

// Terminal Cells
const (
	// PixelsPerCell is the vertical pixel count packed into one cell via half blocks
	PixelsPerCell = 2

	// HalfBlock renders the top pixel as foreground, bottom pixel as background
	HalfBlock = '▀'

	// HUDRows is the number of rows reserved for the status line when enabled
	HUDRows = 1
)
