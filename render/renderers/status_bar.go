package renderers

import (
	"fmt"

	"github.com/lixenwraith/boxfield/render"
)

// StatusBarRenderer draws a one-line summary at the bottom of the screen
type StatusBarRenderer struct {
	title   string
	scene   *SceneRenderer
	visible bool
}

// NewStatusBarRenderer creates a status bar reporting scene's counters
func NewStatusBarRenderer(title string, scene *SceneRenderer, visible bool) *StatusBarRenderer {
	return &StatusBarRenderer{
		title:   title,
		scene:   scene,
		visible: visible,
	}
}

// IsVisible implements VisibilityToggle
func (s *StatusBarRenderer) IsVisible() bool {
	return s.visible
}

// SetVisible toggles drawing
func (s *StatusBarRenderer) SetVisible(v bool) {
	s.visible = v
}

// Render implements SystemRenderer
func (s *StatusBarRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	w, h := buf.Bounds()
	if h == 0 {
		return
	}
	y := h - 1

	for x := 0; x < w; x++ {
		buf.SetWithBg(x, y, ' ', render.RgbHUDText, render.RGBBlack)
	}

	x := buf.WriteString(1, y, s.title, render.RgbHUDAccent)
	x = buf.WriteString(x, y, fmt.Sprintf("  frame %d  %.1f fps", ctx.FrameNumber, ctx.FPS()), render.RgbHUDText)
	if s.scene != nil {
		st := s.scene.Stats()
		x = buf.WriteString(x, y, fmt.Sprintf("  tris %d  pts %d", st.Triangles, st.Points), render.RgbHUDText)
	}
	buf.WriteString(x, y, "  q:quit", render.RgbHUDDim)
}
