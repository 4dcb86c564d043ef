package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/boxfield/scene"
)

// minPixelRadius below which a mesh is drawn as a single point
const minPixelRadius = 0.75

// Framebuffer holds per-pixel color and depth
type Framebuffer struct {
	Width, Height int
	color         []RGB
	depth         []float64
}

// NewFramebuffer allocates a framebuffer of width x height pixels
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates only if capacity insufficient
func (fb *Framebuffer) Resize(width, height int) {
	width, height = max(0, width), max(0, height)
	size := width * height
	if cap(fb.color) < size {
		fb.color = make([]RGB, size)
		fb.depth = make([]float64, size)
	} else {
		fb.color = fb.color[:size]
		fb.depth = fb.depth[:size]
	}
	fb.Width, fb.Height = width, height
}

// Clear fills color with bg and resets depth to infinity
func (fb *Framebuffer) Clear(bg RGB) {
	inf := math.Inf(1)
	for i := range fb.color {
		fb.color[i] = bg
		fb.depth[i] = inf
	}
}

// At returns the pixel color and whether anything was drawn there
func (fb *Framebuffer) At(x, y int) (RGB, bool) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return RGBBlack, false
	}
	i := y*fb.Width + x
	return fb.color[i], !math.IsInf(fb.depth[i], 1)
}

// plot writes c at x, y if z passes the depth test
func (fb *Framebuffer) plot(x, y int, z float64, c RGB) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	if z < fb.depth[i] {
		fb.depth[i] = z
		fb.color[i] = c
	}
}

// Rasterizer draws a scene graph into a Framebuffer
type Rasterizer struct {
	fb     *Framebuffer
	camera *Camera
	bg     RGB

	// Per-frame counters
	Triangles int
	Points    int
	Culled    int

	// Reused per-mesh vertex scratch
	screen []mgl64.Vec3
	valid  []bool
}

// NewRasterizer creates a rasterizer for camera over a width x height pixel target
func NewRasterizer(camera *Camera, width, height int) *Rasterizer {
	return &Rasterizer{
		fb:     NewFramebuffer(width, height),
		camera: camera,
		bg:     RGBBlack,
	}
}

// Framebuffer returns the render target
func (r *Rasterizer) Framebuffer() *Framebuffer { return r.fb }

// Resize changes the pixel target size
func (r *Rasterizer) Resize(width, height int) {
	r.fb.Resize(width, height)
}

// Draw clears the framebuffer and rasterizes every visible mesh under root
func (r *Rasterizer) Draw(root *scene.Node) {
	r.fb.Clear(r.bg)
	r.Triangles, r.Points, r.Culled = 0, 0, 0
	if r.fb.Width == 0 || r.fb.Height == 0 || root == nil {
		return
	}

	view := r.camera.View()
	proj := r.camera.Projection(float64(r.fb.Width) / float64(r.fb.Height))
	// Pixel scale of one view-space unit at distance 1
	focal := float64(r.fb.Height) / 2 / math.Tan(mgl64.DegToRad(r.camera.FovY)/2)

	root.Walk(func(n *scene.Node, world mgl64.Mat4) {
		if n.Kind != scene.KindMesh || n.Geometry == nil || n.Material == nil {
			return
		}
		r.drawMesh(n, view.Mul4(world), proj, focal)
	})
}

func (r *Rasterizer) drawMesh(n *scene.Node, modelView, proj mgl64.Mat4, focal float64) {
	geo := n.Geometry

	normalMat := modelView.Mat3()
	if math.Abs(normalMat.Det()) < 1e-12 {
		// Degenerate transform collapses the mesh to nothing
		r.Culled++
		return
	}

	// Bounding sphere in view space; camera looks down -Z
	center := mgl64.TransformCoordinate(mgl64.Vec3{}, modelView)
	radius := geo.Radius * maxAxisScale(normalMat)
	depth := -center[2]
	if depth+radius < r.camera.Near || depth-radius > r.camera.Far {
		r.Culled++
		return
	}

	if depth > r.camera.Near && radius*focal/depth < minPixelRadius {
		r.drawPoint(n, center, proj)
		return
	}

	normalMat = normalMat.Inv().Transpose()
	mvp := proj.Mul4(modelView)

	if cap(r.screen) < len(geo.Positions) {
		r.screen = make([]mgl64.Vec3, len(geo.Positions))
		r.valid = make([]bool, len(geo.Positions))
	}
	r.screen = r.screen[:len(geo.Positions)]
	r.valid = r.valid[:len(geo.Positions)]
	for i, p := range geo.Positions {
		r.screen[i], r.valid[i] = r.toScreen(mvp.Mul4x1(p.Vec4(1)))
	}

	for i := 0; i+2 < len(geo.Indices); i += 3 {
		a, b, c := geo.Indices[i], geo.Indices[i+1], geo.Indices[i+2]
		if !r.valid[a] || !r.valid[b] || !r.valid[c] {
			continue
		}
		col := shade(n.Material, normalMat, geo.Normals[a].Add(geo.Normals[b]).Add(geo.Normals[c]))
		r.fillTriangle(r.screen[a], r.screen[b], r.screen[c], col)
		r.Triangles++
	}
}

func (r *Rasterizer) drawPoint(n *scene.Node, viewCenter mgl64.Vec3, proj mgl64.Mat4) {
	p, ok := r.toScreen(proj.Mul4x1(viewCenter.Vec4(1)))
	if !ok {
		r.Culled++
		return
	}
	// A point faces the camera
	col := shade(n.Material, mgl64.Ident3(), mgl64.Vec3{0, 0, 1})
	r.fb.plot(int(math.Floor(p[0])), int(math.Floor(p[1])), p[2], col)
	r.Points++
}

// toScreen maps a clip-space position to pixel x, y and NDC depth
// Vertices behind the near plane are rejected
func (r *Rasterizer) toScreen(clip mgl64.Vec4) (mgl64.Vec3, bool) {
	w := clip[3]
	if w < r.camera.Near {
		return mgl64.Vec3{}, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc[2] < -1 || ndc[2] > 1 {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{
		(ndc[0] + 1) / 2 * float64(r.fb.Width),
		(1 - ndc[1]) / 2 * float64(r.fb.Height),
		ndc[2],
	}, true
}

// fillTriangle rasterizes with edge functions over the clipped bounding box
// Both windings are filled; depth is interpolated linearly in screen space
func (r *Rasterizer) fillTriangle(v0, v1, v2 mgl64.Vec3, col RGB) {
	area := edge(v0, v1, v2[0], v2[1])
	if math.Abs(area) < 1e-9 {
		return
	}

	minX := max(0, int(math.Floor(min(v0[0], v1[0], v2[0]))))
	maxX := min(r.fb.Width-1, int(math.Ceil(max(v0[0], v1[0], v2[0]))))
	minY := max(0, int(math.Floor(min(v0[1], v1[1], v2[1]))))
	maxY := min(r.fb.Height-1, int(math.Ceil(max(v0[1], v1[1], v2[1]))))

	inv := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(v1, v2, px, py) * inv
			w1 := edge(v2, v0, px, py) * inv
			w2 := edge(v0, v1, px, py) * inv
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			r.fb.plot(x, y, w0*v0[2]+w1*v1[2]+w2*v2[2], col)
		}
	}
}

// edge is twice the signed area of (a, b, p)
func edge(a, b mgl64.Vec3, px, py float64) float64 {
	return (b[0]-a[0])*(py-a[1]) - (b[1]-a[1])*(px-a[0])
}

// normalEpsilon is the magnitude below which a view-space normal component is zero
const normalEpsilon = 1e-9

// shade resolves the material color for a model-space normal
func shade(mat scene.Material, normalMat mgl64.Mat3, normal mgl64.Vec3) RGB {
	switch m := mat.(type) {
	case *scene.BasicMaterial:
		return FromColor(m.Color)
	case *scene.NormalMaterial:
		n := normalMat.Mul3x1(normal)
		if n.Len() == 0 {
			return FromColor(scene.Color{R: 0.5, G: 0.5, B: 1})
		}
		n = n.Normalize()
		// Rotation residue around zero must not tip a channel across the rounding boundary
		for i := range n {
			if math.Abs(n[i]) < normalEpsilon {
				n[i] = 0
			}
		}
		return FromColor(scene.Color{R: n[0]*0.5 + 0.5, G: n[1]*0.5 + 0.5, B: n[2]*0.5 + 0.5})
	}
	return RGBBlack
}

// maxAxisScale returns the largest column length of m
func maxAxisScale(m mgl64.Mat3) float64 {
	return max(m.Col(0).Len(), m.Col(1).Len(), m.Col(2).Len())
}
