package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorNamed(t *testing.T) {
	c, err := ParseColor([]byte(`"red"`))
	require.NoError(t, err)
	assert.Equal(t, Named("red"), c)
	assert.Equal(t, "red", c.svgValue())
}

func TestParseColorRGB(t *testing.T) {
	c, err := ParseColor([]byte(`[255, 160, 0]`))
	require.NoError(t, err)
	assert.Equal(t, RGB{R: 255, G: 160, B: 0}, c)
	assert.Equal(t, "rgb(255,160,0)", c.svgValue())
}

func TestParseColorRGBA(t *testing.T) {
	c, err := ParseColor([]byte(`[255, 160, 0, 0.85]`))
	require.NoError(t, err)
	assert.Equal(t, RGBA{R: 255, G: 160, B: 0, Opacity: 0.85}, c)
	assert.Equal(t, "rgba(255,160,0,0.85)", c.svgValue())
}

func TestParseColorInvalidArrayLength(t *testing.T) {
	_, err := ParseColor([]byte(`[1, 2]`))
	assert.Error(t, err)
}
