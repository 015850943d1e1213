package path

// Breaker cuts scaffolds at gaps larger than MinGap.
type Breaker struct {
	MinGap int
}

// SplitPath appends the sub-paths of p, each paired with its conjugate, to out.
// A gap equal to MinGap does not break the path.
func (b Breaker) SplitPath(p *Path, g Graph, out *Container) {
	i := 0
	for i < p.Size() {
		sub := New(p.At(i))
		i++
		for i < p.Size() && p.GapAt(i) <= b.MinGap {
			sub.PushBack(p.At(i), p.GapInfoAt(i))
			i++
		}
		out.Add(sub, g)
	}
}

// Break splits every path of in and returns the pieces sorted by length.
func (b Breaker) Break(in *Container, g Graph) *Container {
	out := NewContainer()
	for _, pair := range in.Pairs() {
		b.SplitPath(pair.Path, g, out)
	}
	out.SortByLength(g)
	return out
}
