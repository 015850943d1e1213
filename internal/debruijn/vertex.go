package debruijn

import "fmt"

// Overlap is the junction model of a vertex: SimpleOverlap or *ComplexOverlap.
type Overlap interface {
	isOverlap()
}

// SimpleOverlap is the single symmetric overlap length of an ordinary junction.
type SimpleOverlap uint32

// ComplexOverlap lists the explicit edge pairings of an ambiguous junction.
type ComplexOverlap struct {
	links []LinkID
}

func (SimpleOverlap) isOverlap()   {}
func (*ComplexOverlap) isOverlap() {}

// VertexData is the payload of a vertex. The overlap variant is fixed at
// construction; promoting a simple vertex means building a new complex one.
type VertexData struct {
	overlap Overlap
}

func NewSimpleVertex(overlap uint32) VertexData {
	return VertexData{overlap: SimpleOverlap(overlap)}
}

// NewComplexVertex builds a complex vertex owning links (each is retained).
func NewComplexVertex(store *LinkStore, links ...LinkID) VertexData {
	v := VertexData{overlap: &ComplexOverlap{}}
	v.AddLinks(store, links)
	return v
}

// Variant exposes the active overlap for type switches.
func (v VertexData) Variant() Overlap {
	return v.overlap
}

func (v VertexData) HasComplexOverlap() bool {
	_, ok := v.overlap.(*ComplexOverlap)
	return ok
}

// SimpleOverlap is the checked accessor for the simple variant.
func (v VertexData) SimpleOverlap() (uint32, bool) {
	o, ok := v.overlap.(SimpleOverlap)
	return uint32(o), ok
}

// Overlap returns the simple overlap length. It panics on a complex vertex.
func (v VertexData) Overlap() uint32 {
	o, ok := v.overlap.(SimpleOverlap)
	if !ok {
		panic(v.mismatch("Overlap"))
	}
	return uint32(o)
}

// SetOverlap panics on a complex vertex.
func (v *VertexData) SetOverlap(overlap uint32) {
	if _, ok := v.overlap.(SimpleOverlap); !ok {
		panic(v.mismatch("SetOverlap"))
	}
	v.overlap = SimpleOverlap(overlap)
}

// Links returns a copy of the link handles. It panics on a simple vertex.
func (v VertexData) Links() []LinkID {
	c := v.complex("Links")
	out := make([]LinkID, len(c.links))
	copy(out, c.links)
	return out
}

func (v VertexData) AddLink(store *LinkStore, id LinkID) {
	c := v.complex("AddLink")
	store.Retain(id)
	c.links = append(c.links, id)
}

func (v VertexData) AddLinks(store *LinkStore, ids []LinkID) {
	c := v.complex("AddLinks")
	for _, id := range ids {
		store.Retain(id)
	}
	c.links = append(c.links, ids...)
}

// MoveLinks empties the list and hands its references to the caller,
// who must either AdoptLinks them elsewhere or release them.
func (v VertexData) MoveLinks() []LinkID {
	c := v.complex("MoveLinks")
	out := c.links
	c.links = nil
	return out
}

// AdoptLinks appends references obtained from MoveLinks without retaining them again.
func (v VertexData) AdoptLinks(ids []LinkID) {
	c := v.complex("AdoptLinks")
	c.links = append(c.links, ids...)
}

// ReleaseLinks drops every reference held by the vertex.
func (v VertexData) ReleaseLinks(store *LinkStore) {
	c := v.complex("ReleaseLinks")
	for _, id := range c.links {
		store.Release(id)
	}
	c.links = nil
}

func (v VertexData) complex(op string) *ComplexOverlap {
	c, ok := v.overlap.(*ComplexOverlap)
	if !ok {
		panic(v.mismatch(op))
	}
	return c
}

func (v VertexData) mismatch(op string) string {
	switch v.overlap.(type) {
	case SimpleOverlap:
		return fmt.Sprintf("debruijn: %s called on simple-overlap vertex", op)
	case *ComplexOverlap:
		return fmt.Sprintf("debruijn: %s called on complex-overlap vertex", op)
	default:
		return fmt.Sprintf("debruijn: %s called on uninitialized vertex", op)
	}
}
