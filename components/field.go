// Package components holds the renderables of the demo: boxes that follow
// the shared animation store and the self-animated star field.
package components

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/boxfield/constant"
	"github.com/lixenwraith/boxfield/scene"
	"github.com/lixenwraith/boxfield/store"
)

// FrameFunc runs once per display refresh
type FrameFunc func(dt time.Duration)

// Registrar accepts per-frame callbacks; the returned func unregisters
type Registrar interface {
	OnFrame(fn func(dt time.Duration)) (cancel func())
}

// FieldOptions configures Compose
type FieldOptions struct {
	StarCount  int
	StarSpread float64
	Rand       *rand.Rand
}

// Field is the composed scene: one Box per declared id plus one Stars group
type Field struct {
	Root  *scene.Node
	Boxes []*Box
	Stars *Stars

	cancels []func()
}

// Compose builds the scene for every id in s and registers each component's Frame with reg
func Compose(s *store.Store, reg Registrar, opts FieldOptions) *Field {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.StarSpread <= 0 {
		opts.StarSpread = constant.StarSpread
	}

	f := &Field{Root: scene.NewGroup("root")}

	boxGeo := scene.NewBoxGeometry(constant.BoxSize, constant.BoxSize, constant.BoxSize)
	boxMat := &scene.NormalMaterial{}
	for _, id := range s.IDs() {
		b := NewBox(id, s, boxGeo, boxMat)
		f.Boxes = append(f.Boxes, b)
		f.Root.Add(b.Node())
		f.register(reg, b.Frame)
	}

	starGeo := scene.NewSphereGeometry(constant.StarRadius, constant.StarSegments, constant.StarSegments)
	starMat := &scene.BasicMaterial{Color: scene.LightBlue}
	f.Stars = NewStars(opts.StarCount, opts.StarSpread, opts.Rand, starGeo, starMat)
	f.Root.Add(f.Stars.Node())
	f.register(reg, f.Stars.Frame)

	return f
}

func (f *Field) register(reg Registrar, fn FrameFunc) {
	if reg == nil {
		return
	}
	f.cancels = append(f.cancels, reg.OnFrame(fn))
}

// Close unregisters frame callbacks and releases every box subscription
func (f *Field) Close() {
	for _, cancel := range f.cancels {
		cancel()
	}
	f.cancels = nil
	for _, b := range f.Boxes {
		b.Close()
	}
	f.Boxes = nil
	if f.Stars != nil {
		f.Stars.Node().Detach()
	}
}
