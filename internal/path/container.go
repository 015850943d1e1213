package path

import "sort"

// Pair holds a path and its conjugate.
type Pair struct {
	Path      *Path
	Conjugate *Path
}

// Container keeps path pairs in insertion order.
type Container struct {
	pairs []Pair
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) AddPair(p, conj *Path) {
	c.pairs = append(c.pairs, Pair{Path: p, Conjugate: conj})
}

// Add stores p together with its freshly built conjugate.
func (c *Container) Add(p *Path, g Graph) {
	c.AddPair(p, p.Conjugate(g))
}

func (c *Container) Len() int {
	return len(c.pairs)
}

func (c *Container) At(i int) Pair {
	return c.pairs[i]
}

func (c *Container) Pairs() []Pair {
	return c.pairs
}

// SortByLength orders pairs by descending path length, keeping the
// insertion order among equal lengths.
func (c *Container) SortByLength(g Graph) {
	lengths := make(map[*Path]int, len(c.pairs))
	for _, p := range c.pairs {
		lengths[p.Path] = p.Path.Length(g)
	}
	sort.SliceStable(c.pairs, func(i, j int) bool {
		return lengths[c.pairs[i].Path] > lengths[c.pairs[j].Path]
	})
}
