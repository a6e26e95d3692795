// Package catalogue holds the in-memory relational model of a transit
// network: stops, routes, the asymmetric road-distance table, and the
// reverse stop→routes incidence index.
//
// Stops and routes are stored as individually heap-allocated values
// referenced through []*Stop / []*Route — appending to those slices
// never relocates an already-inserted Stop or Route, so callers may
// hold a *Stop or *Route for the lifetime of the Catalogue. This is the
// "append-only vector of boxed elements" strategy for interior-reference
// stability; an arena or stable-index scheme would work equally well.
package catalogue

import (
	"errors"
	"fmt"
	"sort"

	"github.com/antigravity/transitcat/internal/geo"
)

var (
	// ErrDuplicateStop is returned by AddStop when the name is already in use.
	ErrDuplicateStop = errors.New("catalogue: duplicate stop name")
	// ErrDuplicateRoute is returned by AddRoute when the name is already in use.
	ErrDuplicateRoute = errors.New("catalogue: duplicate route name")
	// ErrUnknownStop is returned when a name does not resolve to an inserted stop.
	ErrUnknownStop = errors.New("catalogue: unknown stop")
	// ErrNegativeDistance is returned by SetStopDistances for a negative meters value.
	ErrNegativeDistance = errors.New("catalogue: negative road distance")
)

// Stop is a named, geolocated point in the network. Once inserted into a
// Catalogue a Stop is never mutated.
type Stop struct {
	Name        string
	Coordinates geo.Coordinates
}

// Route is a named sequence of stops, either a roundtrip (canonical list
// already starts and ends at the same stop) or a there-and-back line
// whose materialized traversal mirrors the canonical list.
type Route struct {
	Name             string
	IsRoundtrip      bool
	Canonical        []*Stop
	Materialized     []*Stop
	UniqueStopsCount int
}

// FarTerminus returns the last stop of the canonical list: for a
// non-roundtrip route this is the far end of the line, where the bus
// turns around. It can be the same stop as Materialized[0].
func (r *Route) FarTerminus() *Stop {
	return r.Canonical[len(r.Canonical)-1]
}

// RouteStat is the aggregate reported by GetRouteStat.
type RouteStat struct {
	StopsCount       int
	UniqueStopsCount int
	GeoLength        float64
	RoadLength       float64
}

// Catalogue is the frozen-after-ingestion relational store. Create one
// with New; the zero value has nil maps and AddStop panics on it.
type Catalogue struct {
	stops       []*Stop
	stopByName  map[string]*Stop
	routes      []*Route
	routeByName map[string]*Route
	// distances[from][to] = meters, asymmetric.
	distances map[string]map[string]int
	// incidence[stopName] = set of route names touching that stop.
	incidence map[string]map[string]struct{}
}

// New returns an empty Catalogue ready for the ingestion phase.
func New() *Catalogue {
	return &Catalogue{
		stopByName:  make(map[string]*Stop),
		routeByName: make(map[string]*Route),
		distances:   make(map[string]map[string]int),
		incidence:   make(map[string]map[string]struct{}),
	}
}

// AddStop inserts a new stop. It fails if name is already in use.
func (c *Catalogue) AddStop(name string, coords geo.Coordinates) error {
	if _, exists := c.stopByName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStop, name)
	}
	s := &Stop{Name: name, Coordinates: coords}
	c.stops = append(c.stops, s)
	c.stopByName[name] = s
	c.incidence[name] = make(map[string]struct{})
	return nil
}

// SetStopDistances records the distance in meters from fromName to each
// neighbor in toMeters. Requires AddStop to already be complete for
// every name involved.
func (c *Catalogue) SetStopDistances(fromName string, toMeters map[string]int) error {
	from, ok := c.stopByName[fromName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, fromName)
	}
	for toName, meters := range toMeters {
		if _, ok := c.stopByName[toName]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownStop, toName)
		}
		if meters < 0 {
			return fmt.Errorf("%w: %s->%s = %d", ErrNegativeDistance, fromName, toName, meters)
		}
	}
	row, ok := c.distances[from.Name]
	if !ok {
		row = make(map[string]int)
		c.distances[from.Name] = row
	}
	for toName, meters := range toMeters {
		row[toName] = meters
	}
	return nil
}

// AddRoute resolves stopNames into interior Stop references, materializes
// the full traversal (mirroring it for non-roundtrip routes per the
// catalogue's traversal contract), and registers the route's name in the
// incidence set of every distinct stop it touches.
func (c *Catalogue) AddRoute(name string, stopNames []string, isRoundtrip bool) error {
	if _, exists := c.routeByName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, name)
	}
	canonical := make([]*Stop, 0, len(stopNames))
	unique := make(map[string]struct{}, len(stopNames))
	for _, stopName := range stopNames {
		stop, ok := c.stopByName[stopName]
		if !ok {
			return fmt.Errorf("%w: %q (route %q)", ErrUnknownStop, stopName, name)
		}
		canonical = append(canonical, stop)
		unique[stopName] = struct{}{}
	}

	materialized := canonical
	if !isRoundtrip && len(canonical) > 0 {
		n := len(canonical)
		materialized = make([]*Stop, 2*n-1)
		copy(materialized, canonical)
		for i := 0; i < n-1; i++ {
			materialized[n+i] = canonical[n-2-i]
		}
	}

	route := &Route{
		Name:             name,
		IsRoundtrip:      isRoundtrip,
		Canonical:        canonical,
		Materialized:     materialized,
		UniqueStopsCount: len(unique),
	}
	c.routes = append(c.routes, route)
	c.routeByName[name] = route

	for stopName := range unique {
		c.incidence[stopName][name] = struct{}{}
	}
	return nil
}

// GetRouteStat returns the aggregate statistics for the named route, or
// false if the route is unknown.
func (c *Catalogue) GetRouteStat(name string) (RouteStat, bool) {
	route, ok := c.routeByName[name]
	if !ok {
		return RouteStat{}, false
	}

	var geoLength, roadLength float64
	for i := 0; i+1 < len(route.Materialized); i++ {
		a, b := route.Materialized[i], route.Materialized[i+1]
		geoLength += geo.Distance(a.Coordinates, b.Coordinates)
		if d, ok := c.EffectiveDistance(a, b); ok {
			roadLength += float64(d)
		}
	}
	if !route.IsRoundtrip && len(route.Canonical) > 0 {
		far := route.FarTerminus()
		if d, ok := c.EffectiveDistance(far, far); ok {
			roadLength += float64(d)
		}
	}

	return RouteStat{
		StopsCount:       len(route.Materialized),
		UniqueStopsCount: route.UniqueStopsCount,
		GeoLength:        geoLength,
		RoadLength:       roadLength,
	}, true
}

// GetStopStat returns the sorted set of route names incident to name, or
// false if the stop is unknown.
func (c *Catalogue) GetStopStat(name string) ([]string, bool) {
	set, ok := c.incidence[name]
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(set))
	for routeName := range set {
		names = append(names, routeName)
	}
	sort.Strings(names)
	return names, true
}

// Stops returns all stops in insertion order.
func (c *Catalogue) Stops() []*Stop {
	return c.stops
}

// Routes returns all routes in insertion order.
func (c *Catalogue) Routes() []*Route {
	return c.routes
}

// StopByName resolves a stop by name, or returns (nil, false) when unknown.
func (c *Catalogue) StopByName(name string) (*Stop, bool) {
	s, ok := c.stopByName[name]
	return s, ok
}

// RouteByName resolves a route by name, or returns (nil, false) when unknown.
func (c *Catalogue) RouteByName(name string) (*Route, bool) {
	r, ok := c.routeByName[name]
	return r, ok
}

// UsedStops returns the stops with at least one incident route, sorted
// lexicographically by name, ready for rendering.
func (c *Catalogue) UsedStops() []*Stop {
	used := make([]*Stop, 0, len(c.stops))
	for _, s := range c.stops {
		if len(c.incidence[s.Name]) > 0 {
			used = append(used, s)
		}
	}
	sort.Slice(used, func(i, j int) bool { return used[i].Name < used[j].Name })
	return used
}

// EffectiveDistance returns the explicit (a,b) distance if present,
// falling back to (b,a), or false if neither is recorded.
func (c *Catalogue) EffectiveDistance(a, b *Stop) (int, bool) {
	if row, ok := c.distances[a.Name]; ok {
		if d, ok := row[b.Name]; ok {
			return d, true
		}
	}
	if row, ok := c.distances[b.Name]; ok {
		if d, ok := row[a.Name]; ok {
			return d, true
		}
	}
	return 0, false
}
