package scene

import (
	"fmt"

	"github.com/matzehuels/surveycharts/pkg/shape"
)

// Group returns a <g> element with attrs.
func Group(attrs ...Attr) *Node { return El("g", attrs...) }

// Path returns a <path> element drawing d.
func Path(d string) *Node { return El("path", A("d", d)) }

// Circle returns a <circle>. Zero centre coordinates are omitted.
func Circle(cx, cy, r float64) *Node {
	n := El("circle")
	if cx != 0 {
		n.Set("cx", cx)
	}
	if cy != 0 {
		n.Set("cy", cy)
	}
	return n.Set("r", r)
}

// Rect returns a <rect> at x, y with the given size.
func Rect(x, y, width, height float64) *Node {
	return El("rect", A("x", x), A("y", y), A("width", width), A("height", height))
}

// Text returns a <text> element. Zero coordinates are omitted.
func Text(x, y float64, text string) *Node {
	n := El("text")
	if x != 0 {
		n.Set("x", x)
	}
	if y != 0 {
		n.Set("y", y)
	}
	return n.SetText(text)
}

// TextPath lays text along the path element with the given id.
func TextPath(href, text string) *Node {
	return El("textPath", A("xlink:href", "#"+href), A("startOffset", "50%")).SetText(text)
}

// Defs returns an empty <defs> container.
func Defs() *Node { return El("defs") }

// Stop is a gradient colour stop.
type Stop struct {
	Offset  string  `toml:"offset" yaml:"offset" json:"offset" validate:"required"`
	Color   string  `toml:"color" yaml:"color" json:"color" validate:"required"`
	Opacity float64 `toml:"opacity" yaml:"opacity" json:"opacity" validate:"gte=0,lte=1"`
}

// LinearGradient builds a gradient definition. Empty coordinates are left
// to the SVG defaults.
func LinearGradient(id, x1, y1, x2, y2 string, stops ...Stop) *Node {
	g := El("linearGradient", A("id", id))
	for _, c := range []Attr{{"x1", x1}, {"y1", y1}, {"x2", x2}, {"y2", y2}} {
		if c.Value != "" {
			g.Attrs = append(g.Attrs, c)
		}
	}
	for _, s := range stops {
		g.Add(El("stop", A("offset", s.Offset), A("stop-color", s.Color), A("stop-opacity", s.Opacity)))
	}
	return g
}

// URL references a definition by id, as in fill="url(#id)".
func URL(id string) string { return "url(#" + id + ")" }

// Translate formats an SVG translate transform.
func Translate(x, y float64) string {
	return fmt.Sprintf("translate(%s, %s)", shape.FormatNumber(x, 3), shape.FormatNumber(y, 3))
}

// Rotate formats an SVG rotate transform in degrees.
func Rotate(deg float64) string {
	return fmt.Sprintf("rotate(%s)", shape.FormatNumber(deg, 3))
}
