package render

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"github.com/antigravity/transitcat/internal/geo"
)

func TestProjectorEmptyInput(t *testing.T) {
	p := NewSphereProjector(nil, 600, 400, 30)
	pt := p.Project(geo.Coordinates{Lat: 10, Lng: 20})
	assert.Equal(t, Point{X: 30, Y: 30}, pt)
}

func TestProjectorWithinPaddedCanvas(t *testing.T) {
	coords := []geo.Coordinates{
		{Lat: 55.611087, Lng: 37.20829},
		{Lat: 55.595884, Lng: 37.209755},
		{Lat: 55.632761, Lng: 37.333324},
	}
	points := make([]orb.Point, len(coords))
	for i, c := range coords {
		points[i] = orb.Point{c.Lng, c.Lat}
	}
	const width, height, padding = 600.0, 400.0, 30.0
	p := NewSphereProjector(points, width, height, padding)

	for _, c := range coords {
		pt := p.Project(c)
		assert.GreaterOrEqual(t, pt.X, padding-1e-9)
		assert.LessOrEqual(t, pt.X, width-padding+1e-9)
		assert.GreaterOrEqual(t, pt.Y, padding-1e-9)
		assert.LessOrEqual(t, pt.Y, height-padding+1e-9)
	}
}

func TestProjectorSinglePointCollapsesToPadding(t *testing.T) {
	points := []orb.Point{{37.2, 55.6}}
	p := NewSphereProjector(points, 600, 400, 30)
	pt := p.Project(geo.Coordinates{Lat: 55.6, Lng: 37.2})
	assert.Equal(t, Point{X: 30, Y: 30}, pt)
}
