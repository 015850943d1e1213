package genes

// UnionFind is a disjoint-set forest over dense ids 0..n-1 with union by
// rank and path compression.
type UnionFind struct {
	parent []int
	rank   []int
}

func NewUnionFind(n int) *UnionFind {
	uf := &UnionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := 0; i < n; i++ {
		uf.MakeSet(i)
	}
	return uf
}

// MakeSet makes x a singleton, growing the forest when x is new.
func (uf *UnionFind) MakeSet(x int) {
	for len(uf.parent) <= x {
		uf.parent = append(uf.parent, len(uf.parent))
		uf.rank = append(uf.rank, 0)
	}
	uf.parent[x] = x
	uf.rank[x] = 0
}

func (uf *UnionFind) Find(x int) int {
	if uf.parent[x] == x {
		return x
	}
	uf.parent[x] = uf.Find(uf.parent[x])
	return uf.parent[x]
}

// Union joins the sets of x and y. The higher-ranked root survives; on a
// tie x's root survives and its rank grows.
func (uf *UnionFind) Union(x, y int) {
	x, y = uf.Find(x), uf.Find(y)
	if x == y {
		return
	}
	switch {
	case uf.rank[x] < uf.rank[y]:
		uf.parent[x] = y
	case uf.rank[x] > uf.rank[y]:
		uf.parent[y] = x
	default:
		uf.parent[y] = x
		uf.rank[x]++
	}
}

func (uf *UnionFind) Same(x, y int) bool {
	return uf.Find(x) == uf.Find(y)
}

func (uf *UnionFind) Len() int {
	return len(uf.parent)
}

func (uf *UnionFind) Rank(x int) int {
	return uf.rank[x]
}
