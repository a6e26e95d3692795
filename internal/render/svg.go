package render

import (
	"strconv"
	"strings"
)

// Point is a projected canvas coordinate.
type Point struct {
	X, Y float64
}

// Drawable is one SVG element emitted into a Document.
type Drawable interface {
	writeSVG(b *strings.Builder)
}

// Document is an ordered list of SVG drawables; later elements paint
// over earlier ones, matching the fixed layer order §4.3 describes.
type Document struct {
	elements []Drawable
}

// Add appends a drawable to the document.
func (d *Document) Add(e Drawable) {
	d.elements = append(d.elements, e)
}

// Render serializes the document as a standalone SVG document: the XML
// declaration, the svg root element, every layer in emission order, and
// the closing tag.
func (d *Document) Render() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" ?>`)
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1">`)
	for _, e := range d.elements {
		e.writeSVG(&b)
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// Polyline is an unfilled, stroked path through Points.
type Polyline struct {
	Points      []Point
	Stroke      Color
	StrokeWidth float64
}

func (p Polyline) writeSVG(b *strings.Builder) {
	b.WriteString(`<polyline points="`)
	for i, pt := range p.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatFloat(pt.X))
		b.WriteByte(',')
		b.WriteString(formatFloat(pt.Y))
	}
	b.WriteString(`" fill="none" stroke="`)
	b.WriteString(escapeAttr(p.Stroke.svgValue()))
	b.WriteString(`" stroke-width="`)
	b.WriteString(formatFloat(p.StrokeWidth))
	b.WriteString(`" stroke-linecap="round" stroke-linejoin="round"/>`)
}

// Circle is a filled, unstroked disc.
type Circle struct {
	Center Point
	Radius float64
	Fill   Color
}

func (c Circle) writeSVG(b *strings.Builder) {
	b.WriteString(`<circle cx="`)
	b.WriteString(formatFloat(c.Center.X))
	b.WriteString(`" cy="`)
	b.WriteString(formatFloat(c.Center.Y))
	b.WriteString(`" r="`)
	b.WriteString(formatFloat(c.Radius))
	b.WriteString(`" fill="`)
	b.WriteString(escapeAttr(c.Fill.svgValue()))
	b.WriteString(`"/>`)
}

// Text is a label. When Stroke is non-nil the element is rendered as the
// underlayer pass (stroke = fill, round cap/join); otherwise it is the
// foreground pass.
type Text struct {
	Position   Point
	Offset     [2]float64
	FontSize   int
	FontFamily string
	FontWeight string
	Data       string
	Fill       Color
	Stroke     Color
	StrokeW    float64
}

func (t Text) writeSVG(b *strings.Builder) {
	b.WriteString(`<text x="`)
	b.WriteString(formatFloat(t.Position.X))
	b.WriteString(`" y="`)
	b.WriteString(formatFloat(t.Position.Y))
	b.WriteString(`" dx="`)
	b.WriteString(formatFloat(t.Offset[0]))
	b.WriteString(`" dy="`)
	b.WriteString(formatFloat(t.Offset[1]))
	b.WriteString(`" font-size="`)
	b.WriteString(strconv.Itoa(t.FontSize))
	b.WriteByte('"')
	if t.FontFamily != "" {
		b.WriteString(` font-family="`)
		b.WriteString(escapeAttr(t.FontFamily))
		b.WriteByte('"')
	}
	if t.FontWeight != "" {
		b.WriteString(` font-weight="`)
		b.WriteString(escapeAttr(t.FontWeight))
		b.WriteByte('"')
	}
	b.WriteString(` fill="`)
	b.WriteString(escapeAttr(t.Fill.svgValue()))
	b.WriteByte('"')
	if t.Stroke != nil {
		b.WriteString(` stroke="`)
		b.WriteString(escapeAttr(t.Stroke.svgValue()))
		b.WriteString(`" stroke-width="`)
		b.WriteString(formatFloat(t.StrokeW))
		b.WriteString(`" stroke-linecap="round" stroke-linejoin="round"`)
	}
	b.WriteByte('>')
	b.WriteString(escapeAttr(t.Data))
	b.WriteString(`</text>`)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// escapeAttr XML-escapes an attribute or text value: " ' < > & become
// &quot; &apos; &lt; &gt; &amp;.
func escapeAttr(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '&':
			b.WriteString("&amp;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
