package transit

import (
	"container/heap"
	"math"
)

type distEntry struct {
	vertex VertexID
	dist   float64
	seq    int
}

type priorityQueue []distEntry

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) { *pq = append(*pq, x.(distEntry)) }

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// shortestPath runs Dijkstra from source over g, returning the shortest
// distance to every vertex and, per vertex, the id of the edge used to
// reach it on that shortest path (-1 for the source and for vertices
// never reached). Discovery order is tracked with a monotonically
// increasing sequence number so that equal-weight candidates settle in
// first-in-first-out order, same as the original graph library's
// binary-heap router.
func shortestPath(g *Graph, source VertexID) (dist []float64, viaEdge []int) {
	n := g.VertexCount()
	dist = make([]float64, n)
	viaEdge = make([]int, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = math.Inf(1)
		viaEdge[i] = -1
	}
	dist[source] = 0

	pq := &priorityQueue{{vertex: source, dist: 0, seq: 0}}
	seq := 1

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(distEntry)
		if visited[cur.vertex] {
			continue
		}
		visited[cur.vertex] = true

		for _, edgeID := range g.Outgoing(cur.vertex) {
			e := g.Edge(edgeID)
			candidate := dist[cur.vertex] + e.Weight
			if candidate < dist[e.To] {
				dist[e.To] = candidate
				viaEdge[e.To] = edgeID
				heap.Push(pq, distEntry{vertex: e.To, dist: candidate, seq: seq})
				seq++
			}
		}
	}
	return dist, viaEdge
}
