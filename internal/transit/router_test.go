package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/transitcat/internal/catalogue"
	"github.com/antigravity/transitcat/internal/geo"
)

func buildLineCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	cat := catalogue.New()
	require.NoError(t, cat.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0}))
	require.NoError(t, cat.AddStop("B", geo.Coordinates{Lat: 0, Lng: 0.01}))
	require.NoError(t, cat.AddStop("C", geo.Coordinates{Lat: 0, Lng: 0.02}))
	require.NoError(t, cat.SetStopDistances("A", map[string]int{"B": 1000}))
	require.NoError(t, cat.SetStopDistances("B", map[string]int{"A": 1000, "C": 1000}))
	require.NoError(t, cat.SetStopDistances("C", map[string]int{"B": 1000}))
	require.NoError(t, cat.AddRoute("1", []string{"A", "B", "C"}, false))
	return cat
}

func TestFindRouteDegenerateSameStop(t *testing.T) {
	router, err := Build(buildLineCatalogue(t), Settings{BusWaitTimeMinutes: 6, BusVelocityKmh: 40})
	require.NoError(t, err)

	it, ok := router.FindRoute("A", "A")
	require.True(t, ok)
	assert.Zero(t, it.TotalTime)
	assert.Empty(t, it.Items)
}

func TestFindRouteOneHop(t *testing.T) {
	router, err := Build(buildLineCatalogue(t), Settings{BusWaitTimeMinutes: 6, BusVelocityKmh: 40})
	require.NoError(t, err)

	it, ok := router.FindRoute("A", "B")
	require.True(t, ok)
	require.Len(t, it.Items, 2)
	assert.Equal(t, ItemWait, it.Items[0].Kind)
	assert.Equal(t, "A", it.Items[0].StopName)
	assert.Equal(t, 6.0, it.Items[0].Time)
	assert.Equal(t, ItemRide, it.Items[1].Kind)
	assert.Equal(t, "1", it.Items[1].RouteName)
	assert.Equal(t, 1, it.Items[1].Span)
	assert.InDelta(t, 6.0+1000.0/40*(60.0/1000.0), it.TotalTime, 1e-9)
}

func TestFindRouteSkipsIntermediateWaitWhenRidingThrough(t *testing.T) {
	router, err := Build(buildLineCatalogue(t), Settings{BusWaitTimeMinutes: 6, BusVelocityKmh: 40})
	require.NoError(t, err)

	it, ok := router.FindRoute("A", "C")
	require.True(t, ok)
	// one wait, then a single two-span ride edge beats wait+ride+wait+ride
	require.Len(t, it.Items, 2)
	assert.Equal(t, ItemRide, it.Items[1].Kind)
	assert.Equal(t, 2, it.Items[1].Span)
}

func TestFindRouteUnknownStopNotFound(t *testing.T) {
	router, err := Build(buildLineCatalogue(t), Settings{BusWaitTimeMinutes: 6, BusVelocityKmh: 40})
	require.NoError(t, err)

	_, ok := router.FindRoute("A", "Z")
	assert.False(t, ok)
}

func TestFindRouteUnreachableStop(t *testing.T) {
	cat := buildLineCatalogue(t)
	require.NoError(t, cat.AddStop("Island", geo.Coordinates{Lat: 5, Lng: 5}))
	router, err := Build(cat, Settings{BusWaitTimeMinutes: 6, BusVelocityKmh: 40})
	require.NoError(t, err)

	_, ok := router.FindRoute("A", "Island")
	assert.False(t, ok)
}

func TestBuildFailsOnMissingDistance(t *testing.T) {
	cat := catalogue.New()
	require.NoError(t, cat.AddStop("A", geo.Coordinates{Lat: 0, Lng: 0}))
	require.NoError(t, cat.AddStop("B", geo.Coordinates{Lat: 0, Lng: 0.01}))
	require.NoError(t, cat.AddRoute("1", []string{"A", "B"}, true))

	_, err := Build(cat, Settings{BusWaitTimeMinutes: 6, BusVelocityKmh: 40})
	require.ErrorIs(t, err, ErrMissingDistance)
}
