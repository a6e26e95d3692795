package render

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/antigravity/transitcat/internal/geo"
)

const projectorEpsilon = 1e-6

// SphereProjector maps geographic coordinates onto a padded canvas with a
// single zoom coefficient shared by both axes, so the aspect ratio of
// the projected point set is preserved.
type SphereProjector struct {
	padding float64
	minLng  float64
	maxLat  float64
	zoom    float64
}

// NewSphereProjector fits a projector to points, a set of (lng, lat)
// orb.Point values, within a max_width x max_height canvas inset by
// padding on every side. An empty point set yields a projector that
// maps everything to (padding, padding).
func NewSphereProjector(points []orb.Point, maxWidth, maxHeight, padding float64) *SphereProjector {
	p := &SphereProjector{padding: padding}
	if len(points) == 0 {
		return p
	}

	minLng, maxLng := points[0].X(), points[0].X()
	minLat, maxLat := points[0].Y(), points[0].Y()
	for _, pt := range points[1:] {
		if pt.X() < minLng {
			minLng = pt.X()
		}
		if pt.X() > maxLng {
			maxLng = pt.X()
		}
		if pt.Y() < minLat {
			minLat = pt.Y()
		}
		if pt.Y() > maxLat {
			maxLat = pt.Y()
		}
	}
	p.minLng = minLng
	p.maxLat = maxLat

	lonSpan := maxLng - minLng
	latSpan := maxLat - minLat

	var zoomX, zoomY float64
	haveX, haveY := false, false
	if lonSpan > projectorEpsilon {
		zoomX = (maxWidth - 2*padding) / lonSpan
		haveX = true
	}
	if latSpan > projectorEpsilon {
		zoomY = (maxHeight - 2*padding) / latSpan
		haveY = true
	}

	switch {
	case haveX && haveY:
		p.zoom = math.Min(zoomX, zoomY)
	case haveX:
		p.zoom = zoomX
	case haveY:
		p.zoom = zoomY
	default:
		p.zoom = 0
	}
	return p
}

// Project maps a geographic coordinate onto the padded canvas.
func (p *SphereProjector) Project(c geo.Coordinates) Point {
	return Point{
		X: (c.Lng-p.minLng)*p.zoom + p.padding,
		Y: (p.maxLat-c.Lat)*p.zoom + p.padding,
	}
}
