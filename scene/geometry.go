package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is an indexed triangle list with per-vertex normals
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []uint32 // Three per triangle, counter-clockwise front faces

	// Radius bounds every position around the local origin
	Radius float64
}

// Triangles returns the triangle count
func (g *Geometry) Triangles() int {
	return len(g.Indices) / 3
}

func (g *Geometry) computeRadius() {
	r := 0.0
	for _, p := range g.Positions {
		r = math.Max(r, p.Len())
	}
	g.Radius = r
}

// boxFace describes one face by its outward normal and in-plane axes, with u×v = n
type boxFace struct {
	n, u, v mgl64.Vec3
}

var boxFaces = [6]boxFace{
	{mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}, mgl64.Vec3{0, 1, 0}},
	{mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 1, 0}},
	{mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, -1}},
	{mgl64.Vec3{0, -1, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 0, 1}},
	{mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
	{mgl64.Vec3{0, 0, -1}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{0, 1, 0}},
}

// NewBoxGeometry creates an axis-aligned box centered on the origin
// Each face has its own four vertices so normals stay flat
func NewBoxGeometry(width, height, depth float64) *Geometry {
	half := mgl64.Vec3{width / 2, height / 2, depth / 2}
	g := &Geometry{
		Positions: make([]mgl64.Vec3, 0, 24),
		Normals:   make([]mgl64.Vec3, 0, 24),
		Indices:   make([]uint32, 0, 36),
	}

	corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {
		base := uint32(len(g.Positions))
		center := mul(f.n, half)
		for _, c := range corners {
			p := center.Add(mul(f.u, half).Mul(c[0])).Add(mul(f.v, half).Mul(c[1]))
			g.Positions = append(g.Positions, p)
			g.Normals = append(g.Normals, f.n)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	g.computeRadius()
	return g
}

// NewSphereGeometry creates a UV sphere. Poles collapse to single-triangle rows
func NewSphereGeometry(radius float64, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(3, widthSegments)
	heightSegments = max(2, heightSegments)

	g := &Geometry{
		Positions: make([]mgl64.Vec3, 0, (widthSegments+1)*(heightSegments+1)),
		Normals:   make([]mgl64.Vec3, 0, (widthSegments+1)*(heightSegments+1)),
	}

	grid := make([][]uint32, heightSegments+1)
	var index uint32
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			p := mgl64.Vec3{
				-radius * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				radius * math.Cos(v*math.Pi),
				radius * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			}
			g.Positions = append(g.Positions, p)
			g.Normals = append(g.Normals, p.Normalize())
			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	g.computeRadius()
	return g
}

// mul is the component-wise product
func mul(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
