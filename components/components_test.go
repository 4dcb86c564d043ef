package components

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/boxfield/scene"
	"github.com/lixenwraith/boxfield/store"
)

type fakeRegistrar struct {
	fns    map[int]func(time.Duration)
	next   int
	cancel int
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{fns: make(map[int]func(time.Duration))}
}

func (r *fakeRegistrar) OnFrame(fn func(time.Duration)) func() {
	id := r.next
	r.next++
	r.fns[id] = fn
	return func() {
		if _, ok := r.fns[id]; ok {
			delete(r.fns, id)
			r.cancel++
		}
	}
}

func (r *fakeRegistrar) frame() {
	for i := 0; i < r.next; i++ {
		if fn, ok := r.fns[i]; ok {
			fn(16 * time.Millisecond)
		}
	}
}

func TestBoxAppliesRetainedVector(t *testing.T) {
	s := store.New(store.NewTable([]store.Vec3{{0.5, 1, 1.5}, {2, 2, 2}}))
	b := NewBox(0, s, scene.NewBoxGeometry(2, 2, 2), &scene.NormalMaterial{})
	defer b.Close()

	// Nothing retained until the first notification
	b.Frame(0)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, b.Node().Rotation)

	s.Mutate()
	b.Frame(0)

	want, _ := s.State().Get(0)
	assert.Equal(t, want, b.Node().Rotation)
	assert.Equal(t, want, b.Coords())
}

func TestBoxIgnoresOtherIDs(t *testing.T) {
	s := store.New(store.NewTable([]store.Vec3{{0, 0, 0}, {1, 1, 1}}))
	b := NewBox(1, s, scene.NewBoxGeometry(2, 2, 2), &scene.NormalMaterial{})
	defer b.Close()

	s.Mutate()
	got := b.Coords()
	assert.InDelta(t, 1.01, got[0], 1e-9)
	assert.Equal(t, store.ObjectID(1), b.ID())
}

func TestBoxCloseReleasesSubscription(t *testing.T) {
	s := store.New(store.NewTable([]store.Vec3{{0, 0, 0}}))
	root := scene.NewGroup("root")
	b := NewBox(0, s, scene.NewBoxGeometry(2, 2, 2), &scene.NormalMaterial{})
	root.Add(b.Node())
	require.Equal(t, 1, s.SubscriberCount())

	b.Close()
	b.Close()

	assert.Zero(t, s.SubscriberCount())
	assert.Empty(t, root.Children())
	assert.Nil(t, b.Node())
	// Missing mesh is a silent no-op
	assert.NotPanics(t, func() { b.Frame(0) })
}

func TestStarsShareGeometryAndMaterial(t *testing.T) {
	geo := scene.NewSphereGeometry(1, 10, 10)
	mat := &scene.BasicMaterial{Color: scene.LightBlue}
	s := NewStars(2000, 400, rand.New(rand.NewSource(1)), geo, mat)

	children := s.Node().Children()
	require.Len(t, children, 2000)
	require.Len(t, s.Positions(), 2000)
	for i, c := range children {
		assert.Same(t, geo, c.Geometry)
		assert.Same(t, mat, c.Material.(*scene.BasicMaterial))
		assert.Equal(t, s.Positions()[i], c.Position)
		for _, v := range c.Position {
			assert.GreaterOrEqual(t, v, -400.0)
			assert.Less(t, v, 400.0)
		}
	}
}

func TestStarsFrameAnimatesGroup(t *testing.T) {
	s := NewStars(3, 400, rand.New(rand.NewSource(2)), scene.NewSphereGeometry(1, 10, 10), &scene.BasicMaterial{})
	before := append([]mgl64.Vec3(nil), s.Positions()...)

	for i := 0; i < 10; i++ {
		s.Frame(0)
	}

	assert.InDelta(t, 1.0, s.Phase(), 1e-9)
	r, sc := Oscillation(s.Phase())
	assert.InDelta(t, 5*math.Sin(mgl64.DegToRad(1)), r, 1e-12)
	assert.InDelta(t, math.Cos(mgl64.DegToRad(2)), sc, 1e-12)

	g := s.Node()
	assert.Equal(t, mgl64.Vec3{r, r, r}, g.Rotation)
	assert.Equal(t, mgl64.Vec3{sc, sc, sc}, g.Scale)
	assert.Equal(t, sc, s.Scale())
	// Star placements never move, only the group transform does
	assert.Equal(t, before, s.Positions())
}

func TestOscillationBounds(t *testing.T) {
	for theta := -720.0; theta <= 720.0; theta += 0.37 {
		r, s := Oscillation(theta)
		assert.LessOrEqual(t, math.Abs(r), 5.0)
		assert.LessOrEqual(t, math.Abs(s), 1.0)
	}
	r, s := Oscillation(90)
	assert.InDelta(t, 5.0, r, 1e-12)
	assert.InDelta(t, -1.0, s, 1e-12)
}

func TestComposeBuildsScene(t *testing.T) {
	s := store.New(store.RandomTable(4, rand.New(rand.NewSource(3))))
	reg := newFakeRegistrar()

	f := Compose(s, reg, FieldOptions{StarCount: 10, Rand: rand.New(rand.NewSource(4))})

	require.Len(t, f.Boxes, 4)
	require.Len(t, f.Root.Children(), 5)
	assert.Len(t, f.Stars.Positions(), 10)
	assert.Len(t, reg.fns, 5)
	assert.Equal(t, 4, s.SubscriberCount())

	// Boxes share one geometry definition
	for _, b := range f.Boxes[1:] {
		assert.Same(t, f.Boxes[0].Node().Geometry, b.Node().Geometry)
	}

	s.Mutate()
	reg.frame()
	for _, b := range f.Boxes {
		want, _ := s.State().Get(b.ID())
		assert.Equal(t, want, b.Node().Rotation)
	}
	assert.InDelta(t, 0.1, f.Stars.Phase(), 1e-12)

	f.Close()
	assert.Empty(t, reg.fns)
	assert.Equal(t, 5, reg.cancel)
	assert.Zero(t, s.SubscriberCount())
}
