// Package persist implements the binary persisted-artifact codec: a
// length-prefixed record carrying a catalogue snapshot plus render and
// routing settings, written and read back symmetrically.
//
// §1 places the serialization codec outside the three core subsystems
// as a peripheral external collaborator, so this package favors a
// compact, dependency-free wire format (encoding/gob behind a length
// prefix) over hand-rolling the original's protobuf schema — see
// DESIGN.md for why no protobuf grounding was available in the pack.
package persist

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/antigravity/transitcat/internal/catalogue"
	"github.com/antigravity/transitcat/internal/geo"
	"github.com/antigravity/transitcat/internal/render"
)

// stopRecord is a stop plus its outgoing road distances, keyed by
// destination index into the snapshot's stop array (per §6's
// "integer indices into the stop array" contract).
type stopRecord struct {
	Name string
	Lat  float64
	Lng  float64

	DistanceTo    []int // destination stop index
	DistanceMeter []int // parallel to DistanceTo
}

// routeRecord stores the full canonical stop list plus the roundtrip
// flag; the reader re-materializes the mirrored traversal for
// non-roundtrip routes.
type routeRecord struct {
	Name        string
	IsRoundtrip bool
	StopIndex   []int // indices into the snapshot's stop array
}

type colorRecord struct {
	Kind    uint8 // 0=named, 1=rgb, 2=rgba
	Named   string
	R, G, B uint8
	Opacity float64
}

type renderRecord struct {
	Width, Height, Padding     float64
	LineWidth, StopRadius      float64
	BusLabelFontSize           int
	BusLabelOffset             [2]float64
	StopLabelFontSize          int
	StopLabelOffset            [2]float64
	UnderlayerColor            colorRecord
	UnderlayerWidth            float64
	ColorPalette               []colorRecord
}

type routingRecord struct {
	BusWaitTime float64
	BusVelocity float64
}

type snapshot struct {
	Stops   []stopRecord
	Routes  []routeRecord
	Render  renderRecord
	Routing routingRecord
}

// Snapshot is the decoded in-memory result of Load: a rebuilt catalogue
// plus the render and routing settings it was persisted with.
type Snapshot struct {
	Catalogue *catalogue.Catalogue
	Render    render.Settings
	Routing   RoutingSettings
}

// RoutingSettings mirrors the persisted (bus_wait_time, bus_velocity)
// pair; kept distinct from internal/transit.Settings so this package
// has no dependency on the routing graph itself.
type RoutingSettings struct {
	BusWaitTimeMinutes float64
	BusVelocityKmh     float64
}

func toColorRecord(c render.Color) colorRecord {
	switch v := c.(type) {
	case render.Named:
		return colorRecord{Kind: 0, Named: string(v)}
	case render.RGB:
		return colorRecord{Kind: 1, R: v.R, G: v.G, B: v.B}
	case render.RGBA:
		return colorRecord{Kind: 2, R: v.R, G: v.G, B: v.B, Opacity: v.Opacity}
	default:
		return colorRecord{}
	}
}

func fromColorRecord(r colorRecord) render.Color {
	switch r.Kind {
	case 1:
		return render.RGB{R: r.R, G: r.G, B: r.B}
	case 2:
		return render.RGBA{R: r.R, G: r.G, B: r.B, Opacity: r.Opacity}
	default:
		return render.Named(r.Named)
	}
}

// Save serializes cat, renderSettings, and routingSettings to a
// length-prefixed gob record and writes it to w.
func Save(w io.Writer, cat *catalogue.Catalogue, renderSettings render.Settings, routingSettings RoutingSettings) error {
	snap := buildSnapshot(cat, renderSettings, routingSettings)

	var body bytes.Buffer
	if err := gob.NewEncoder(&body).Encode(snap); err != nil {
		return fmt.Errorf("persist: encode: %w", err)
	}

	var lengthPrefix [8]byte
	binary.BigEndian.PutUint64(lengthPrefix[:], uint64(body.Len()))
	if _, err := w.Write(lengthPrefix[:]); err != nil {
		return fmt.Errorf("persist: write length prefix: %w", err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return fmt.Errorf("persist: write body: %w", err)
	}
	return nil
}

// Load reads a record written by Save and rebuilds the catalogue and
// settings it encodes.
func Load(r io.Reader) (Snapshot, error) {
	var lengthPrefix [8]byte
	if _, err := io.ReadFull(r, lengthPrefix[:]); err != nil {
		return Snapshot{}, fmt.Errorf("persist: read length prefix: %w", err)
	}
	length := binary.BigEndian.Uint64(lengthPrefix[:])

	body := io.LimitReader(r, int64(length))
	var snap snapshot
	if err := gob.NewDecoder(body).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("persist: decode: %w", err)
	}

	return rebuildSnapshot(snap)
}

func buildSnapshot(cat *catalogue.Catalogue, renderSettings render.Settings, routingSettings RoutingSettings) snapshot {
	stops := cat.Stops()
	indexByName := make(map[string]int, len(stops))
	for i, s := range stops {
		indexByName[s.Name] = i
	}

	stopRecords := make([]stopRecord, len(stops))
	for i, s := range stops {
		rec := stopRecord{Name: s.Name, Lat: s.Coordinates.Lat, Lng: s.Coordinates.Lng}
		for _, other := range stops {
			if d, ok := cat.EffectiveDistance(s, other); ok {
				rec.DistanceTo = append(rec.DistanceTo, indexByName[other.Name])
				rec.DistanceMeter = append(rec.DistanceMeter, d)
			}
		}
		stopRecords[i] = rec
	}

	routeRecords := make([]routeRecord, len(cat.Routes()))
	for i, route := range cat.Routes() {
		indices := make([]int, len(route.Canonical))
		for j, s := range route.Canonical {
			indices[j] = indexByName[s.Name]
		}
		routeRecords[i] = routeRecord{Name: route.Name, IsRoundtrip: route.IsRoundtrip, StopIndex: indices}
	}

	palette := make([]colorRecord, len(renderSettings.ColorPalette))
	for i, c := range renderSettings.ColorPalette {
		palette[i] = toColorRecord(c)
	}

	return snapshot{
		Stops:  stopRecords,
		Routes: routeRecords,
		Render: renderRecord{
			Width: renderSettings.Width, Height: renderSettings.Height, Padding: renderSettings.Padding,
			LineWidth: renderSettings.LineWidth, StopRadius: renderSettings.StopRadius,
			BusLabelFontSize: renderSettings.BusLabelFontSize, BusLabelOffset: renderSettings.BusLabelOffset,
			StopLabelFontSize: renderSettings.StopLabelFontSize, StopLabelOffset: renderSettings.StopLabelOffset,
			UnderlayerColor: toColorRecord(renderSettings.UnderlayerColor),
			UnderlayerWidth: renderSettings.UnderlayerWidth,
			ColorPalette:    palette,
		},
		Routing: routingRecord{BusWaitTime: routingSettings.BusWaitTimeMinutes, BusVelocity: routingSettings.BusVelocityKmh},
	}
}

func rebuildSnapshot(snap snapshot) (Snapshot, error) {
	cat := catalogue.New()

	for _, s := range snap.Stops {
		if err := cat.AddStop(s.Name, geo.Coordinates{Lat: s.Lat, Lng: s.Lng}); err != nil {
			return Snapshot{}, fmt.Errorf("persist: rebuild stop %q: %w", s.Name, err)
		}
	}
	for _, s := range snap.Stops {
		if len(s.DistanceTo) == 0 {
			continue
		}
		toMeters := make(map[string]int, len(s.DistanceTo))
		for i, idx := range s.DistanceTo {
			toMeters[snap.Stops[idx].Name] = s.DistanceMeter[i]
		}
		if err := cat.SetStopDistances(s.Name, toMeters); err != nil {
			return Snapshot{}, fmt.Errorf("persist: rebuild distances for %q: %w", s.Name, err)
		}
	}
	for _, r := range snap.Routes {
		canonical := rematerializeCanonical(snap, r)
		if err := cat.AddRoute(r.Name, canonical, r.IsRoundtrip); err != nil {
			return Snapshot{}, fmt.Errorf("persist: rebuild route %q: %w", r.Name, err)
		}
	}

	renderSettings := render.Settings{
		Width: snap.Render.Width, Height: snap.Render.Height, Padding: snap.Render.Padding,
		LineWidth: snap.Render.LineWidth, StopRadius: snap.Render.StopRadius,
		BusLabelFontSize: snap.Render.BusLabelFontSize, BusLabelOffset: snap.Render.BusLabelOffset,
		StopLabelFontSize: snap.Render.StopLabelFontSize, StopLabelOffset: snap.Render.StopLabelOffset,
		UnderlayerColor: fromColorRecord(snap.Render.UnderlayerColor),
		UnderlayerWidth: snap.Render.UnderlayerWidth,
	}
	for _, c := range snap.Render.ColorPalette {
		renderSettings.ColorPalette = append(renderSettings.ColorPalette, fromColorRecord(c))
	}

	routingSettings := RoutingSettings{
		BusWaitTimeMinutes: snap.Routing.BusWaitTime,
		BusVelocityKmh:     snap.Routing.BusVelocity,
	}

	return Snapshot{Catalogue: cat, Render: renderSettings, Routing: routingSettings}, nil
}

// rematerializeCanonical resolves a route's stored stop indices back to
// names. What's stored is the full canonical list; AddRoute re-derives
// a non-roundtrip route's mirrored second half itself.
func rematerializeCanonical(snap snapshot, r routeRecord) []string {
	names := make([]string, len(r.StopIndex))
	for i, idx := range r.StopIndex {
		names[i] = snap.Stops[idx].Name
	}
	return names
}
