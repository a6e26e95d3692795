// Package transit builds a directed weighted graph over a catalogue's
// stops and routes and answers shortest-itinerary queries against it.
package transit

// VertexID identifies a vertex in a Graph.
type VertexID int

// EdgeKind distinguishes a boarding-wait edge from a riding-a-route edge.
type EdgeKind int

const (
	// EdgeWait models standing at a stop until a bus arrives.
	EdgeWait EdgeKind = iota
	// EdgeRide models riding a route across one or more spans without
	// disembarking.
	EdgeRide
)

// Edge is one directed, weighted arc of the graph, annotated with enough
// domain context to reconstruct a human-readable itinerary step.
type Edge struct {
	From, To VertexID
	Weight   float64
	Kind     EdgeKind

	StopName  string // set on EdgeWait: the stop being waited at
	RouteName string // set on EdgeRide: the route being ridden
	Span      int    // set on EdgeRide: hops between the boarding and alighting stops
}

// Graph is a directed weighted graph stored as an edge list plus a
// per-vertex outgoing adjacency index, matching the library the
// original routing code layers its shortest-path search on top of.
type Graph struct {
	edges    []Edge
	outgoing [][]int
}

// NewGraph allocates a graph with vertexCount vertices and no edges.
func NewGraph(vertexCount int) *Graph {
	return &Graph{outgoing: make([][]int, vertexCount)}
}

// AddEdge appends e and returns its edge id.
func (g *Graph) AddEdge(e Edge) int {
	id := len(g.edges)
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], id)
	return id
}

// Edge returns the edge stored at id.
func (g *Graph) Edge(id int) Edge { return g.edges[id] }

// Outgoing returns the edge ids leaving v, in insertion order.
func (g *Graph) Outgoing(v VertexID) []int { return g.outgoing[v] }

// VertexCount returns the number of vertices in the graph.
func (g *Graph) VertexCount() int { return len(g.outgoing) }
