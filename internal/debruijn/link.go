package debruijn

import "fmt"

// EdgeID is the opaque handle of an edge in the surrounding graph.
type EdgeID uint64

// VertexID is the opaque handle of a vertex in the surrounding graph.
type VertexID uint64

// LinkID indexes a Link inside a LinkStore.
type LinkID uint32

// Link declares that Edges[0] may directly abut Edges[1] with Overlap shared bases.
type Link struct {
	Edges   [2]EdgeID
	Overlap uint32
}

// LinkStore is an arena of links shared by complex vertices.
// A link stays alive while at least one vertex list references it.
type LinkStore struct {
	links []Link
	refs  []int
	alive []bool
	free  []LinkID
	live  int
}

func NewLinkStore() *LinkStore {
	return &LinkStore{}
}

// New allocates a link with no owners yet. Vertices take ownership through AddLink.
func (s *LinkStore) New(from, to EdgeID, overlap uint32) LinkID {
	l := Link{Edges: [2]EdgeID{from, to}, Overlap: overlap}
	s.live++
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		s.links[id] = l
		s.refs[id] = 0
		s.alive[id] = true
		return id
	}
	s.links = append(s.links, l)
	s.refs = append(s.refs, 0)
	s.alive = append(s.alive, true)
	return LinkID(len(s.links) - 1)
}

// Get returns the link payload. Reading a freed link panics.
func (s *LinkStore) Get(id LinkID) Link {
	s.mustBeAlive(id)
	return s.links[id]
}

func (s *LinkStore) Retain(id LinkID) {
	s.mustBeAlive(id)
	s.refs[id]++
}

// Release drops one reference and frees the slot when none remain.
func (s *LinkStore) Release(id LinkID) {
	s.mustBeAlive(id)
	s.refs[id]--
	if s.refs[id] <= 0 {
		s.refs[id] = 0
		s.alive[id] = false
		s.links[id] = Link{}
		s.free = append(s.free, id)
		s.live--
	}
}

func (s *LinkStore) RefCount(id LinkID) int {
	if int(id) >= len(s.refs) || !s.alive[id] {
		return 0
	}
	return s.refs[id]
}

func (s *LinkStore) Alive(id LinkID) bool {
	return int(id) < len(s.alive) && s.alive[id]
}

// Len is the number of live links.
func (s *LinkStore) Len() int {
	return s.live
}

func (s *LinkStore) mustBeAlive(id LinkID) {
	if !s.Alive(id) {
		panic(fmt.Sprintf("debruijn: link %d is not alive", id))
	}
}
