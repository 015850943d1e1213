package neighborhood

import (
	"container/heap"
	"sort"

	"asmgraph/internal/debruijn"
)

type (
	EdgeID   = debruijn.EdgeID
	VertexID = debruijn.VertexID
)

// Topology is the read-only directed structure traversed here.
type Topology interface {
	EdgeStart(e EdgeID) VertexID
	EdgeEnd(e EdgeID) VertexID
	OutgoingEdges(v VertexID) []EdgeID
	IncomingEdges(v VertexID) []EdgeID
	Length(e EdgeID) int
}

// Reversed flips every edge of t. Following outgoing edges of the result
// walks incoming edges of t.
func Reversed(t Topology) Topology {
	if r, ok := t.(reversed); ok {
		return r.t
	}
	return reversed{t: t}
}

type reversed struct {
	t Topology
}

func (r reversed) EdgeStart(e EdgeID) VertexID       { return r.t.EdgeEnd(e) }
func (r reversed) EdgeEnd(e EdgeID) VertexID         { return r.t.EdgeStart(e) }
func (r reversed) OutgoingEdges(v VertexID) []EdgeID { return r.t.IncomingEdges(v) }
func (r reversed) IncomingEdges(v VertexID) []EdgeID { return r.t.OutgoingEdges(v) }
func (r reversed) Length(e EdgeID) int               { return r.t.Length(e) }

// Forward returns the vertices reachable from `from` by following outgoing
// edges, where an edge may be taken only while the shortest distance to
// its origin is below budget. The start vertex itself is not reported.
func Forward(t Topology, from VertexID, budget int) []VertexID {
	if budget <= 0 {
		return nil
	}

	dist := map[VertexID]int{from: 0}
	queue := &distQueue{{v: from, dist: 0}}
	for queue.Len() > 0 {
		cur := heap.Pop(queue).(queueItem)
		if cur.dist > dist[cur.v] || cur.dist >= budget {
			continue
		}
		for _, e := range t.OutgoingEdges(cur.v) {
			next := t.EdgeEnd(e)
			nd := cur.dist + max(t.Length(e), 0)
			if d, seen := dist[next]; seen && d <= nd {
				continue
			}
			dist[next] = nd
			heap.Push(queue, queueItem{v: next, dist: nd})
		}
	}

	delete(dist, from)
	return sortedKeys(dist)
}

// Backward is Forward along incoming edges.
func Backward(t Topology, from VertexID, budget int) []VertexID {
	return Forward(Reversed(t), from, budget)
}

type queueItem struct {
	v    VertexID
	dist int
}

type distQueue []queueItem

func (q distQueue) Len() int { return len(q) }

func (q distQueue) Less(i, j int) bool {
	if q[i].dist == q[j].dist {
		return q[i].v < q[j].v
	}
	return q[i].dist < q[j].dist
}

func (q distQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *distQueue) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *distQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func sortedKeys[K ~uint64, T any](m map[K]T) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
