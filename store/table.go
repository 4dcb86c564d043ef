package store

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// ObjectID identifies one animated object, assigned once at startup
type ObjectID int

// Vec3 is a rotation vector in radians (x, y, z)
type Vec3 = mgl64.Vec3

// Table maps every declared ObjectID to its rotation vector
// Tables are immutable snapshots: every mutation builds a new one
type Table struct {
	ids    []ObjectID
	coords map[ObjectID]Vec3
}

// NewTable creates a table with ids 0..len(vectors)-1 in order
func NewTable(vectors []Vec3) Table {
	t := Table{
		ids:    make([]ObjectID, len(vectors)),
		coords: make(map[ObjectID]Vec3, len(vectors)),
	}
	for i, v := range vectors {
		id := ObjectID(i)
		t.ids[i] = id
		t.coords[id] = v
	}
	return t
}

// RandomTable creates n entries with every component uniform in [0, π)
func RandomTable(n int, rng *rand.Rand) Table {
	vectors := make([]Vec3, n)
	for i := range vectors {
		vectors[i] = Vec3{
			rng.Float64() * math.Pi,
			rng.Float64() * math.Pi,
			rng.Float64() * math.Pi,
		}
	}
	return NewTable(vectors)
}

// Len returns the number of entries
func (t Table) Len() int {
	return len(t.ids)
}

// Get returns the vector for id
func (t Table) Get(id ObjectID) (Vec3, bool) {
	v, ok := t.coords[id]
	return v, ok
}

// IDs returns a copy of the declared ids in order
func (t Table) IDs() []ObjectID {
	out := make([]ObjectID, len(t.ids))
	copy(out, t.ids)
	return out
}

// Each visits entries in id order
func (t Table) Each(fn func(id ObjectID, v Vec3)) {
	for _, id := range t.ids {
		fn(id, t.coords[id])
	}
}

// Advance returns a new table with step added to every component
// The id slice is shared since the key set never changes
func (t Table) Advance(step float64) Table {
	next := Table{
		ids:    t.ids,
		coords: make(map[ObjectID]Vec3, len(t.ids)),
	}
	for _, id := range t.ids {
		v := t.coords[id]
		next.coords[id] = Vec3{v[0] + step, v[1] + step, v[2] + step}
	}
	return next
}
