package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceIdenticalPoints(t *testing.T) {
	a := Coordinates{Lat: 55.611087, Lng: 37.20829}
	assert.Equal(t, 0.0, Distance(a, a))
}

func TestDistanceWithinEpsilonIsZero(t *testing.T) {
	a := Coordinates{Lat: 55.611087, Lng: 37.20829}
	b := Coordinates{Lat: 55.611087 + 1e-9, Lng: 37.20829 - 1e-9}
	assert.Equal(t, 0.0, Distance(a, b))
}

func TestDistanceKnownPair(t *testing.T) {
	a := Coordinates{Lat: 55.611087, Lng: 37.20829}
	b := Coordinates{Lat: 55.595884, Lng: 37.209755}
	d := Distance(a, b)
	assert.InDelta(t, 1693.0, d, 50.0)
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := Coordinates{Lat: 55.611087, Lng: 37.20829}
	b := Coordinates{Lat: 55.595884, Lng: 37.209755}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestEqualWithinEpsilon(t *testing.T) {
	a := Coordinates{Lat: 1.0, Lng: 2.0}
	b := Coordinates{Lat: 1.0 + 1e-7, Lng: 2.0 - 1e-7}
	assert.True(t, a.Equal(b))

	c := Coordinates{Lat: 1.0 + 1e-3, Lng: 2.0}
	assert.False(t, a.Equal(c))
}
