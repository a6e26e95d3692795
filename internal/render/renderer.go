package render

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/antigravity/transitcat/internal/catalogue"
)

// Settings configures map rendering: canvas geometry, stroke widths,
// label typography, and the route color palette.
type Settings struct {
	Width, Height, Padding float64
	LineWidth, StopRadius  float64

	BusLabelFontSize int
	BusLabelOffset   [2]float64

	StopLabelFontSize int
	StopLabelOffset   [2]float64

	UnderlayerColor Color
	UnderlayerWidth float64

	ColorPalette []Color
}

// Render builds the full layered SVG document for cat under settings:
// route polylines, then route name labels, then stop circles, then stop
// name labels, in that fixed paint order.
func Render(cat *catalogue.Catalogue, settings Settings) string {
	usedStops := cat.UsedStops()
	points := make([]orb.Point, len(usedStops))
	for i, s := range usedStops {
		points[i] = orb.Point{s.Coordinates.Lng, s.Coordinates.Lat}
	}
	proj := NewSphereProjector(points, settings.Width, settings.Height, settings.Padding)

	doc := &Document{}
	routes := append([]*catalogue.Route(nil), cat.Routes()...)
	sort.Slice(routes, func(i, j int) bool { return routes[i].Name < routes[j].Name })

	renderRoutePolylines(doc, routes, proj, settings)
	renderRouteLabels(doc, routes, proj, settings)
	renderStopCircles(doc, usedStops, proj, settings)
	renderStopLabels(doc, usedStops, proj, settings)

	return doc.Render()
}

func paletteColor(settings Settings, ordinal int) Color {
	return settings.ColorPalette[ordinal%len(settings.ColorPalette)]
}

func renderRoutePolylines(doc *Document, routes []*catalogue.Route, proj *SphereProjector, settings Settings) {
	ordinal := 0
	for _, route := range routes {
		if len(route.Materialized) == 0 {
			continue
		}
		pts := make([]Point, len(route.Materialized))
		for i, s := range route.Materialized {
			pts[i] = proj.Project(s.Coordinates)
		}
		doc.Add(Polyline{
			Points:      pts,
			Stroke:      paletteColor(settings, ordinal),
			StrokeWidth: settings.LineWidth,
		})
		ordinal++
	}
}

func routeLabelAnchors(route *catalogue.Route) []*catalogue.Stop {
	anchors := []*catalogue.Stop{route.Materialized[0]}
	if !route.IsRoundtrip {
		far := route.FarTerminus()
		if far.Name != route.Materialized[0].Name {
			anchors = append(anchors, far)
		}
	}
	return anchors
}

func renderRouteLabels(doc *Document, routes []*catalogue.Route, proj *SphereProjector, settings Settings) {
	ordinal := 0
	for _, route := range routes {
		if len(route.Materialized) == 0 {
			continue
		}
		color := paletteColor(settings, ordinal)
		for _, anchor := range routeLabelAnchors(route) {
			pos := proj.Project(anchor.Coordinates)
			underlayer := Text{
				Position:   pos,
				Offset:     settings.BusLabelOffset,
				FontSize:   settings.BusLabelFontSize,
				FontFamily: "Verdana",
				FontWeight: "bold",
				Data:       route.Name,
				Fill:       settings.UnderlayerColor,
				Stroke:     settings.UnderlayerColor,
				StrokeW:    settings.UnderlayerWidth,
			}
			foreground := underlayer
			foreground.Fill = color
			foreground.Stroke = nil
			doc.Add(underlayer)
			doc.Add(foreground)
		}
		ordinal++
	}
}

func renderStopCircles(doc *Document, stops []*catalogue.Stop, proj *SphereProjector, settings Settings) {
	for _, s := range stops {
		doc.Add(Circle{
			Center: proj.Project(s.Coordinates),
			Radius: settings.StopRadius,
			Fill:   Named("white"),
		})
	}
}

func renderStopLabels(doc *Document, stops []*catalogue.Stop, proj *SphereProjector, settings Settings) {
	for _, s := range stops {
		pos := proj.Project(s.Coordinates)
		underlayer := Text{
			Position:   pos,
			Offset:     settings.StopLabelOffset,
			FontSize:   settings.StopLabelFontSize,
			FontFamily: "Verdana",
			Data:       s.Name,
			Fill:       settings.UnderlayerColor,
			Stroke:     settings.UnderlayerColor,
			StrokeW:    settings.UnderlayerWidth,
		}
		foreground := underlayer
		foreground.Fill = Named("black")
		foreground.Stroke = nil
		doc.Add(underlayer)
		doc.Add(foreground)
	}
}
