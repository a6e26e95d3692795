package persist

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/transitcat/internal/catalogue"
	"github.com/antigravity/transitcat/internal/geo"
	"github.com/antigravity/transitcat/internal/render"
)

func buildRoundTripCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	cat := catalogue.New()
	require.NoError(t, cat.AddStop("A", geo.Coordinates{Lat: 55.611, Lng: 37.20}))
	require.NoError(t, cat.AddStop("B", geo.Coordinates{Lat: 55.595, Lng: 37.21}))
	require.NoError(t, cat.AddStop("C", geo.Coordinates{Lat: 55.632, Lng: 37.33}))
	require.NoError(t, cat.SetStopDistances("A", map[string]int{"B": 3900}))
	require.NoError(t, cat.SetStopDistances("B", map[string]int{"C": 4200}))
	require.NoError(t, cat.AddRoute("297", []string{"A", "B", "A"}, true))
	require.NoError(t, cat.AddRoute("828", []string{"A", "B", "C"}, false))
	return cat
}

func testRenderSettings() render.Settings {
	return render.Settings{
		Width: 600, Height: 400, Padding: 30,
		LineWidth: 14, StopRadius: 5,
		BusLabelFontSize: 20, BusLabelOffset: [2]float64{7, 15},
		StopLabelFontSize: 20, StopLabelOffset: [2]float64{7, -3},
		UnderlayerColor: render.RGBA{R: 255, G: 255, B: 255, Opacity: 0.85},
		UnderlayerWidth: 3,
		ColorPalette:    []render.Color{render.Named("green"), render.RGB{R: 255, G: 160, B: 0}},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cat := buildRoundTripCatalogue(t)
	renderSettings := testRenderSettings()
	routingSettings := RoutingSettings{BusWaitTimeMinutes: 6, BusVelocityKmh: 40}

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, cat, renderSettings, routingSettings))

	snap, err := Load(&buf)
	require.NoError(t, err)

	origStat, ok := cat.GetRouteStat("297")
	require.True(t, ok)
	loadedStat, ok := snap.Catalogue.GetRouteStat("297")
	require.True(t, ok)
	assert.Equal(t, origStat, loadedStat)

	origStat828, ok := cat.GetRouteStat("828")
	require.True(t, ok)
	loadedStat828, ok := snap.Catalogue.GetRouteStat("828")
	require.True(t, ok)
	assert.Equal(t, origStat828, loadedStat828)

	origNames, ok := cat.GetStopStat("B")
	require.True(t, ok)
	loadedNames, ok := snap.Catalogue.GetStopStat("B")
	require.True(t, ok)
	assert.Equal(t, origNames, loadedNames)

	assert.Equal(t, routingSettings, snap.Routing)
	assert.Equal(t, renderSettings.ColorPalette, snap.Render.ColorPalette)
	assert.Equal(t, renderSettings.UnderlayerColor, snap.Render.UnderlayerColor)
}

func TestLoadRejectsTruncatedInput(t *testing.T) {
	_, err := Load(bytes.NewReader([]byte{0, 0, 0}))
	assert.Error(t, err)
}
