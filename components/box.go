package components

import (
	"fmt"
	"sync"
	"time"

	"github.com/lixenwraith/boxfield/scene"
	"github.com/lixenwraith/boxfield/store"
)

// Box renders one cube whose orientation follows its id's rotation vector
type Box struct {
	id    store.ObjectID
	mesh  *scene.Node
	unsub store.Unsubscribe

	// Retained outside of frame evaluation, written by the store subscription
	mu     sync.Mutex
	coords store.Vec3
}

// NewBox creates the mesh for id and subscribes to its rotation vector
func NewBox(id store.ObjectID, s *store.Store, geo *scene.Geometry, mat scene.Material) *Box {
	b := &Box{
		id:   id,
		mesh: scene.NewMesh(fmt.Sprintf("box-%d", id), geo, mat),
	}
	b.unsub = s.SubscribeID(id, b.retain)
	return b
}

func (b *Box) retain(v store.Vec3) {
	b.mu.Lock()
	b.coords = v
	b.mu.Unlock()
}

// ID returns the object id this box follows
func (b *Box) ID() store.ObjectID { return b.id }

// Node returns the mesh, nil once closed
func (b *Box) Node() *scene.Node { return b.mesh }

// Coords returns the most recently retained rotation vector
func (b *Box) Coords() store.Vec3 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.coords
}

// Frame applies the retained vector as x, y, z rotation
// A missing mesh is skipped for this tick
func (b *Box) Frame(time.Duration) {
	if b.mesh == nil {
		return
	}
	v := b.Coords()
	b.mesh.SetRotation(v[0], v[1], v[2])
}

// Close releases the subscription and detaches the mesh
func (b *Box) Close() {
	if b.unsub != nil {
		b.unsub()
		b.unsub = nil
	}
	if b.mesh != nil {
		b.mesh.Detach()
		b.mesh = nil
	}
}
