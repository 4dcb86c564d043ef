package components

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/boxfield/constant"
	"github.com/lixenwraith/boxfield/scene"
)

// Stars is a fixed cloud of spheres animated as one group
type Stars struct {
	group     *scene.Node
	positions []mgl64.Vec3
	theta     float64
	scale     atomic.Uint64 // math.Float64bits of the latest group scale
}

// NewStars scatters count instances of geo/mat uniformly in [-spread, spread) on each axis
// Positions are generated once; every instance shares the same geometry and material
func NewStars(count int, spread float64, rng *rand.Rand, geo *scene.Geometry, mat scene.Material) *Stars {
	s := &Stars{
		group:     scene.NewGroup("stars"),
		positions: make([]mgl64.Vec3, count),
	}
	s.scale.Store(math.Float64bits(1))

	for i := range s.positions {
		p := mgl64.Vec3{
			rng.Float64()*2*spread - spread,
			rng.Float64()*2*spread - spread,
			rng.Float64()*2*spread - spread,
		}
		s.positions[i] = p

		m := scene.NewMesh(fmt.Sprintf("star-%d", i), geo, mat)
		m.Position = p
		s.group.Add(m)
	}
	return s
}

// Node returns the group holding every star
func (s *Stars) Node() *scene.Node { return s.group }

// Positions returns the fixed placements. The slice must not be modified
func (s *Stars) Positions() []mgl64.Vec3 { return s.positions }

// Phase returns the accumulated phase in degrees
func (s *Stars) Phase() float64 { return s.theta }

// Scale returns the group scale applied on the latest frame
func (s *Stars) Scale() float64 {
	return math.Float64frombits(s.scale.Load())
}

// Frame advances the phase and applies the oscillation to the whole group
func (s *Stars) Frame(time.Duration) {
	if s.group == nil {
		return
	}
	s.theta += constant.PhaseStep
	r, sc := Oscillation(s.theta)
	s.group.SetRotation(r, r, r)
	s.group.SetScale(sc, sc, sc)
	s.scale.Store(math.Float64bits(sc))
}

// Oscillation derives group rotation and scale from phase theta in degrees
// r = 5·sin(θ), s = cos(2θ)
func Oscillation(theta float64) (rotation, scale float64) {
	rotation = constant.RotationAmplitude * math.Sin(mgl64.DegToRad(theta))
	scale = math.Cos(mgl64.DegToRad(theta * 2))
	return rotation, scale
}
