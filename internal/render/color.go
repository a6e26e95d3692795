package render

import (
	"encoding/json"
	"fmt"
)

// Color is a tagged union of the three color representations a request
// document may supply: a named CSS/SVG color, an opaque RGB triple, or
// an RGBA triple with explicit opacity.
type Color interface {
	svgValue() string
}

// Named is a color given as a verbatim string, e.g. "red" or "#ff0000".
type Named string

func (n Named) svgValue() string { return string(n) }

// RGB is an opaque 0-255 color triple, serialized as rgb(r,g,b).
type RGB struct {
	R, G, B uint8
}

func (c RGB) svgValue() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// RGBA is a 0-255 color triple plus a 0..1 opacity, serialized as
// rgba(r,g,b,opacity).
type RGBA struct {
	R, G, B uint8
	Opacity float64
}

func (c RGBA) svgValue() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, trimFloat(c.Opacity))
}

// ParseColor decodes the request document's color encoding: a bare
// string names a color verbatim, a 3-element array is an RGB triple,
// and a 4-element array is an RGB triple plus opacity.
func ParseColor(raw json.RawMessage) (Color, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return Named(name), nil
	}

	var triple []float64
	if err := json.Unmarshal(raw, &triple); err != nil {
		return nil, fmt.Errorf("render: invalid color %s: %w", raw, err)
	}
	switch len(triple) {
	case 3:
		return RGB{R: uint8(triple[0]), G: uint8(triple[1]), B: uint8(triple[2])}, nil
	case 4:
		return RGBA{R: uint8(triple[0]), G: uint8(triple[1]), B: uint8(triple[2]), Opacity: triple[3]}, nil
	default:
		return nil, fmt.Errorf("render: color array must have 3 or 4 elements, got %d", len(triple))
	}
}

// trimFloat renders a float without a forced fixed precision, matching
// the compact numeric style SVG tooling expects (1 instead of 1.000000).
func trimFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}
