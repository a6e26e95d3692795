// Package ingest turns a validated request document's base_requests and
// render_settings into a frozen catalogue and render.Settings, shared
// by both the CLI's make_base path and the serve subcommand's POST
// /base handler.
package ingest

import (
	"github.com/antigravity/transitcat/internal/catalogue"
	"github.com/antigravity/transitcat/internal/geo"
	"github.com/antigravity/transitcat/internal/render"
	"github.com/antigravity/transitcat/internal/schema"
)

// Catalogue builds a catalogue from reqs, following the §3 lifecycle:
// all stops first, then all distances, then all routes.
func Catalogue(reqs []schema.BaseRequest) (*catalogue.Catalogue, error) {
	cat := catalogue.New()

	for _, req := range reqs {
		if req.Type != "Stop" {
			continue
		}
		if err := cat.AddStop(req.Name, geo.Coordinates{Lat: req.Latitude, Lng: req.Longitude}); err != nil {
			return nil, err
		}
	}
	for _, req := range reqs {
		if req.Type != "Stop" || len(req.RoadDistances) == 0 {
			continue
		}
		if err := cat.SetStopDistances(req.Name, req.RoadDistances); err != nil {
			return nil, err
		}
	}
	for _, req := range reqs {
		if req.Type != "Bus" {
			continue
		}
		if err := cat.AddRoute(req.Name, req.Stops, req.IsRoundtrip); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// RenderSettings resolves a schema.RenderSettings's deferred color
// fields into render.Settings.
func RenderSettings(s *schema.RenderSettings) (render.Settings, error) {
	underlayer, err := render.ParseColor(s.UnderlayerColor)
	if err != nil {
		return render.Settings{}, err
	}
	palette := make([]render.Color, len(s.ColorPalette))
	for i, raw := range s.ColorPalette {
		c, err := render.ParseColor(raw)
		if err != nil {
			return render.Settings{}, err
		}
		palette[i] = c
	}
	return render.Settings{
		Width: s.Width, Height: s.Height, Padding: s.Padding,
		LineWidth: s.LineWidth, StopRadius: s.StopRadius,
		BusLabelFontSize: s.BusLabelFontSize, BusLabelOffset: s.BusLabelOffset,
		StopLabelFontSize: s.StopLabelFontSize, StopLabelOffset: s.StopLabelOffset,
		UnderlayerColor: underlayer, UnderlayerWidth: s.UnderlayerWidth,
		ColorPalette: palette,
	}, nil
}
