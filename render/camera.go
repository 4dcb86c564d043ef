package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/boxfield/constant"
)

// Camera is a perspective camera looking down -Z from Position
type Camera struct {
	FovY     float64 // Vertical field of view in degrees
	Near     float64
	Far      float64
	Position mgl64.Vec3
	Target   mgl64.Vec3
}

// NewCamera returns the default canvas camera at (0, 0, 5)
func NewCamera() *Camera {
	return &Camera{
		FovY:     constant.CameraFovDeg,
		Near:     constant.CameraNear,
		Far:      constant.CameraFar,
		Position: mgl64.Vec3{0, 0, constant.CameraZ},
	}
}

// View returns the world to view matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, mgl64.Vec3{0, 1, 0})
}

// Projection returns the view to clip matrix for the given aspect ratio
func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}
