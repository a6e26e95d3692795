package transit

import (
	"errors"
	"fmt"
	"math"

	"github.com/antigravity/transitcat/internal/catalogue"
)

// ErrMissingDistance is returned by Build when two consecutive stops on
// a route's materialized traversal have no recorded road distance in
// either direction. This is a reference error: the catalogue must be
// fully populated before a Router can be built from it.
var ErrMissingDistance = errors.New("transit: missing road distance between consecutive stops")

// Settings configures edge weights: how long a passenger waits at any
// stop before boarding, and the constant velocity assumed for every bus.
type Settings struct {
	BusWaitTimeMinutes float64
	BusVelocityKmh     float64
}

// stopVertices is the wait/ride vertex pair a stop is split into.
type stopVertices struct {
	Wait, Ride VertexID
}

// ItemKind distinguishes a wait step from a ride step in an Itinerary.
type ItemKind int

const (
	ItemWait ItemKind = iota
	ItemRide
)

// Item is one step of a reconstructed itinerary.
type Item struct {
	Kind      ItemKind
	StopName  string
	RouteName string
	Span      int
	Time      float64
}

// Itinerary is a shortest path between two stops, as an ordered list of
// alternating wait and ride steps plus the total travel time in minutes.
type Itinerary struct {
	TotalTime float64
	Items     []Item
}

// Router answers shortest-itinerary queries over a fixed catalogue
// snapshot and routing settings.
type Router struct {
	graph    *Graph
	settings Settings
	vertices map[string]stopVertices
}

// Build constructs the routing graph for cat under settings: one
// wait edge per stop, plus ride edges for every span of every route's
// materialized traversal. It fails if any consecutive pair of stops on
// a route lacks a recorded road distance.
func Build(cat *catalogue.Catalogue, settings Settings) (*Router, error) {
	stops := cat.Stops()
	g := NewGraph(len(stops) * 2)
	vertices := make(map[string]stopVertices, len(stops))

	next := VertexID(0)
	for _, s := range stops {
		wait, ride := next, next+1
		next += 2
		vertices[s.Name] = stopVertices{Wait: wait, Ride: ride}
		g.AddEdge(Edge{
			From: wait, To: ride,
			Weight:   settings.BusWaitTimeMinutes,
			Kind:     EdgeWait,
			StopName: s.Name,
		})
	}

	for _, route := range cat.Routes() {
		if err := addRouteEdges(g, cat, vertices, route, settings); err != nil {
			return nil, err
		}
	}

	return &Router{graph: g, settings: settings, vertices: vertices}, nil
}

// addRouteEdges adds, for every stop on route's materialized traversal,
// one ride edge to every later stop on that traversal: boarding at stop
// i and alighting at stop j incurs the summed travel time of every hop
// in between, without an intermediate wait.
func addRouteEdges(g *Graph, cat *catalogue.Catalogue, vertices map[string]stopVertices, route *catalogue.Route, settings Settings) error {
	stops := route.Materialized
	for from := 0; from < len(stops); from++ {
		weight := 0.0
		for to := from + 1; to < len(stops); to++ {
			meters, ok := cat.EffectiveDistance(stops[to-1], stops[to])
			if !ok {
				return fmt.Errorf("%w: %q -> %q on route %q", ErrMissingDistance, stops[to-1].Name, stops[to].Name, route.Name)
			}
			weight += float64(meters) / settings.BusVelocityKmh * (60.0 / 1000.0)

			g.AddEdge(Edge{
				From:      vertices[stops[from].Name].Ride,
				To:        vertices[stops[to].Name].Wait,
				Weight:    weight,
				Kind:      EdgeRide,
				RouteName: route.Name,
				Span:      to - from,
			})
		}
	}
	return nil
}

// FindRoute returns the fastest itinerary from the stop named from to
// the stop named to. The degenerate from == to case returns a zero-item,
// zero-time itinerary, never an error. A false second return means
// either stop is unknown to the router or no path connects them.
func (r *Router) FindRoute(from, to string) (Itinerary, bool) {
	if from == to {
		return Itinerary{}, true
	}

	fromVerts, ok := r.vertices[from]
	if !ok {
		return Itinerary{}, false
	}
	toVerts, ok := r.vertices[to]
	if !ok {
		return Itinerary{}, false
	}

	dist, viaEdge := shortestPath(r.graph, fromVerts.Wait)
	if math.IsInf(dist[toVerts.Wait], 1) {
		return Itinerary{}, false
	}

	var items []Item
	for v := toVerts.Wait; viaEdge[v] != -1; {
		edgeID := viaEdge[v]
		e := r.graph.Edge(edgeID)
		items = append(items, itemFromEdge(e))
		v = e.From
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}

	return Itinerary{TotalTime: dist[toVerts.Wait], Items: items}, true
}

func itemFromEdge(e Edge) Item {
	switch e.Kind {
	case EdgeWait:
		return Item{Kind: ItemWait, StopName: e.StopName, Time: e.Weight}
	default:
		return Item{Kind: ItemRide, RouteName: e.RouteName, Span: e.Span, Time: e.Weight}
	}
}
