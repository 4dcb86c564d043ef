// Package scene provides a minimal scene graph: groups and meshes with
// position, Euler rotation and scale, composed into world transforms.
//
// Geometry and Material values are shared by pointer; any number of meshes
// may reference the same definition.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Kind distinguishes node roles
type Kind uint8

const (
	KindGroup Kind = iota
	KindMesh
)

// Node represents a single node in a scene graph.
// Nodes have at most one parent and any number of children
type Node struct {
	Name string
	Kind Kind

	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles in radians, applied in XYZ order
	Scale    mgl64.Vec3
	Visible  bool

	Geometry *Geometry
	Material Material

	parent   *Node
	children []*Node
}

// NewGroup creates an empty group node with identity transform
func NewGroup(name string) *Node {
	return &Node{
		Name:    name,
		Kind:    KindGroup,
		Scale:   mgl64.Vec3{1, 1, 1},
		Visible: true,
	}
}

// NewMesh creates a mesh node drawing geo with mat
func NewMesh(name string, geo *Geometry, mat Material) *Node {
	n := NewGroup(name)
	n.Kind = KindMesh
	n.Geometry = geo
	n.Material = mat
	return n
}

// Add inserts child as the last child of n, detaching it from any previous parent
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child if it belongs to n
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return true
		}
	}
	return false
}

// Detach removes n from its parent
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// Parent returns the immediate ancestor or nil
func (n *Node) Parent() *Node { return n.parent }

// Children returns the immediate descendants. The slice must not be modified
func (n *Node) Children() []*Node { return n.children }

// SetRotation sets Euler angles in radians
func (n *Node) SetRotation(x, y, z float64) {
	n.Rotation = mgl64.Vec3{x, y, z}
}

// SetScale sets per-axis scale
func (n *Node) SetScale(x, y, z float64) {
	n.Scale = mgl64.Vec3{x, y, z}
}

// LocalMatrix composes translation, XYZ Euler rotation and scale
func (n *Node) LocalMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(n.Position[0], n.Position[1], n.Position[2]).
		Mul4(EulerXYZ(n.Rotation)).
		Mul4(mgl64.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2]))
}

// EulerXYZ returns the rotation matrix Rx·Ry·Rz
func EulerXYZ(r mgl64.Vec3) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(r[0]).
		Mul4(mgl64.HomogRotate3DY(r[1])).
		Mul4(mgl64.HomogRotate3DZ(r[2]))
}

// Walk visits visible nodes depth-first with their world matrix
// Invisible nodes and their subtrees are skipped
func (n *Node) Walk(fn func(node *Node, world mgl64.Mat4)) {
	n.walk(mgl64.Ident4(), fn)
}

func (n *Node) walk(parentWorld mgl64.Mat4, fn func(*Node, mgl64.Mat4)) {
	if !n.Visible {
		return
	}
	world := parentWorld.Mul4(n.LocalMatrix())
	fn(n, world)
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n, including n
func (n *Node) Count() int {
	total := 1
	for _, c := range n.children {
		total += c.Count()
	}
	return total
}
