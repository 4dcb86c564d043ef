package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxGeometry(t *testing.T) {
	g := NewBoxGeometry(2, 2, 2)

	assert.Len(t, g.Positions, 24)
	assert.Len(t, g.Normals, 24)
	assert.Equal(t, 12, g.Triangles())
	assert.InDelta(t, math.Sqrt(3), g.Radius, 1e-9)

	for _, p := range g.Positions {
		for _, c := range p {
			assert.InDelta(t, 1.0, math.Abs(c), 1e-9)
		}
	}
}

func TestBoxGeometryWinding(t *testing.T) {
	g := NewBoxGeometry(2, 4, 6)

	// Every triangle's geometric normal must agree with its vertex normals
	for i := 0; i < len(g.Indices); i += 3 {
		a, b, c := g.Positions[g.Indices[i]], g.Positions[g.Indices[i+1]], g.Positions[g.Indices[i+2]]
		face := b.Sub(a).Cross(c.Sub(a)).Normalize()
		assert.InDelta(t, 1.0, face.Dot(g.Normals[g.Indices[i]]), 1e-9, "triangle %d", i/3)
	}
}

func TestSphereGeometry(t *testing.T) {
	g := NewSphereGeometry(1, 10, 10)

	assert.Len(t, g.Positions, 11*11)
	assert.Equal(t, 2*10*9, g.Triangles())
	assert.InDelta(t, 1.0, g.Radius, 1e-9)

	for i, p := range g.Positions {
		assert.InDelta(t, 1.0, p.Len(), 1e-9)
		assert.InDelta(t, 1.0, g.Normals[i].Len(), 1e-9)
	}
	for _, idx := range g.Indices {
		assert.Less(t, int(idx), len(g.Positions))
	}
}

func TestNodeHierarchy(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	b := NewGroup("b")

	root.Add(a)
	root.Add(b)
	require.Len(t, root.Children(), 2)
	assert.Same(t, root, a.Parent())

	// Re-parenting detaches from the previous parent
	a.Add(b)
	assert.Len(t, root.Children(), 1)
	assert.Same(t, a, b.Parent())
	assert.Equal(t, 3, root.Count())

	b.Detach()
	assert.Nil(t, b.Parent())
	assert.Empty(t, a.Children())
	assert.False(t, root.Remove(b))
}

func TestEulerXYZMatchesComposition(t *testing.T) {
	r := mgl64.Vec3{0.3, -1.2, 2.1}
	m := EulerXYZ(r)

	v := mgl64.Vec3{1, 2, 3}
	want := mgl64.Rotate3DX(r[0]).Mul3(mgl64.Rotate3DY(r[1])).Mul3(mgl64.Rotate3DZ(r[2])).Mul3x1(v)
	got := mgl64.TransformCoordinate(v, m)
	assert.True(t, want.ApproxEqualThreshold(got, 1e-9), "want %v got %v", want, got)
}

func TestWalkComposesTransforms(t *testing.T) {
	root := NewGroup("root")
	root.SetScale(2, 2, 2)
	mesh := NewMesh("m", NewBoxGeometry(1, 1, 1), &NormalMaterial{})
	mesh.Position = mgl64.Vec3{1, 0, 0}
	root.Add(mesh)

	hidden := NewMesh("h", NewBoxGeometry(1, 1, 1), &NormalMaterial{})
	hidden.Visible = false
	root.Add(hidden)

	var visited []string
	var meshWorld mgl64.Mat4
	root.Walk(func(n *Node, world mgl64.Mat4) {
		visited = append(visited, n.Name)
		if n == mesh {
			meshWorld = world
		}
	})

	assert.Equal(t, []string{"root", "m"}, visited)
	got := mgl64.TransformCoordinate(mgl64.Vec3{0, 0, 0}, meshWorld)
	assert.True(t, got.ApproxEqualThreshold(mgl64.Vec3{2, 0, 0}, 1e-9))
}

func TestColorHex(t *testing.T) {
	c := ColorHex(0xADD8E6)
	assert.InDelta(t, 173.0/255, c.R, 1e-9)
	assert.InDelta(t, 216.0/255, c.G, 1e-9)
	assert.InDelta(t, 230.0/255, c.B, 1e-9)
}
