package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/transitcat/internal/catalogue"
	"github.com/antigravity/transitcat/internal/geo"
	"github.com/antigravity/transitcat/internal/logging"
	"github.com/antigravity/transitcat/internal/render"
	"github.com/antigravity/transitcat/internal/schema"
	"github.com/antigravity/transitcat/internal/transit"
)

func buildHandler(t *testing.T) *Handler {
	t.Helper()
	cat := catalogue.New()
	require.NoError(t, cat.AddStop("A", geo.Coordinates{Lat: 55.611, Lng: 37.20}))
	require.NoError(t, cat.AddStop("B", geo.Coordinates{Lat: 55.595, Lng: 37.21}))
	require.NoError(t, cat.SetStopDistances("A", map[string]int{"B": 12000}))
	require.NoError(t, cat.SetStopDistances("B", map[string]int{"A": 12000}))
	require.NoError(t, cat.AddRoute("R", []string{"A", "B", "A"}, true))

	router, err := transit.Build(cat, transit.Settings{BusWaitTimeMinutes: 6, BusVelocityKmh: 40})
	require.NoError(t, err)

	settings := render.Settings{
		Width: 600, Height: 400, Padding: 30,
		LineWidth: 14, StopRadius: 5,
		BusLabelFontSize: 20, StopLabelFontSize: 20,
		UnderlayerColor: render.Named("white"),
		ColorPalette:    []render.Color{render.Named("red")},
	}

	return New(cat, router, settings, nil, logging.Noop())
}

func TestAnswerStopFound(t *testing.T) {
	h := buildHandler(t)
	replies := h.Answer("corr-1", []schema.StatRequest{{ID: 1, Type: "Stop", Name: "A"}})
	require.Len(t, replies, 1)
	assert.Equal(t, []string{"R"}, replies[0].Buses)
	assert.Empty(t, replies[0].ErrorMessage)
}

func TestAnswerStopNotFound(t *testing.T) {
	h := buildHandler(t)
	replies := h.Answer("corr-1", []schema.StatRequest{{ID: 2, Type: "Stop", Name: "Ghost"}})
	assert.Equal(t, "not found", replies[0].ErrorMessage)
}

func TestAnswerBusFound(t *testing.T) {
	h := buildHandler(t)
	replies := h.Answer("corr-1", []schema.StatRequest{{ID: 3, Type: "Bus", Name: "R"}})
	assert.Equal(t, 3, replies[0].StopCount)
	assert.Equal(t, 2, replies[0].UniqueStopCount)
	assert.Equal(t, 24000.0, replies[0].RouteLength)
}

func TestAnswerRouteDegenerate(t *testing.T) {
	h := buildHandler(t)
	replies := h.Answer("corr-1", []schema.StatRequest{{ID: 4, Type: "Route", From: "A", To: "A"}})
	assert.Equal(t, 0.0, replies[0].TotalTime)
	assert.Empty(t, replies[0].Items)
	assert.NotNil(t, replies[0].Items)
}

func TestAnswerRouteOneHop(t *testing.T) {
	h := buildHandler(t)
	replies := h.Answer("corr-1", []schema.StatRequest{{ID: 5, Type: "Route", From: "A", To: "B"}})
	require.Len(t, replies[0].Items, 2)
	assert.Equal(t, "Wait", replies[0].Items[0].Type)
	assert.Equal(t, "A", replies[0].Items[0].StopName)
	assert.Equal(t, 6.0, replies[0].Items[0].Time)
	assert.Equal(t, "Bus", replies[0].Items[1].Type)
	assert.Equal(t, "R", replies[0].Items[1].Bus)
	assert.InDelta(t, 24.0, replies[0].TotalTime, 1e-9)
}

func TestAnswerRouteNotFound(t *testing.T) {
	h := buildHandler(t)
	replies := h.Answer("corr-1", []schema.StatRequest{{ID: 6, Type: "Route", From: "A", To: "Ghost"}})
	assert.Equal(t, "not found", replies[0].ErrorMessage)
}

func TestAnswerMap(t *testing.T) {
	h := buildHandler(t)
	replies := h.Answer("corr-1", []schema.StatRequest{{ID: 7, Type: "Map"}})
	assert.Contains(t, replies[0].Map, "<svg")
}
