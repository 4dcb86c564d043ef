package renderers

import (
	"github.com/lixenwraith/boxfield/constant"
	"github.com/lixenwraith/boxfield/render"
	"github.com/lixenwraith/boxfield/scene"
)

// SceneStats summarizes the last rasterized frame
type SceneStats struct {
	Triangles int
	Points    int
	Culled    int
}

// SceneRenderer rasterizes a scene graph into the buffer using half-block cells
// Each cell carries two vertically stacked pixels: fg is the top, bg the bottom
type SceneRenderer struct {
	root        *scene.Node
	raster      *render.Rasterizer
	reserveRows int
	stats       SceneStats
}

// NewSceneRenderer creates a renderer for root seen through camera
// reserveRows rows at the bottom of the screen are left for other renderers
func NewSceneRenderer(root *scene.Node, camera *render.Camera, reserveRows int) *SceneRenderer {
	return &SceneRenderer{
		root:        root,
		raster:      render.NewRasterizer(camera, 0, 0),
		reserveRows: max(0, reserveRows),
	}
}

// Stats returns counters from the most recent Render
func (s *SceneRenderer) Stats() SceneStats {
	return s.stats
}

// Render implements SystemRenderer
func (s *SceneRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	w, h := buf.Bounds()
	rows := h - s.reserveRows
	if w <= 0 || rows <= 0 {
		return
	}

	fb := s.raster.Framebuffer()
	if fb.Width != w || fb.Height != rows*constant.PixelsPerCell {
		s.raster.Resize(w, rows*constant.PixelsPerCell)
	}

	s.raster.Draw(s.root)
	s.stats = SceneStats{
		Triangles: s.raster.Triangles,
		Points:    s.raster.Points,
		Culled:    s.raster.Culled,
	}

	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < w; cx++ {
			top, topDrawn := fb.At(cx, cy*2)
			bottom, bottomDrawn := fb.At(cx, cy*2+1)
			if !topDrawn && !bottomDrawn {
				continue
			}
			buf.SetWithBg(cx, cy, constant.HalfBlock, top, bottom)
		}
	}
}
