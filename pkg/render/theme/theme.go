// Package theme holds the chart palette and writes it onto scene nodes as
// presentation attributes.
//
// Styles are keyed by class name. [Theme.Style] adds the classes to a node
// and copies every matching style onto it, so charts render the same in a
// browser, in librsvg and in rasterizers that ignore CSS.
package theme

import (
	"maps"
	"slices"

	"github.com/matzehuels/surveycharts/pkg/render/scene"
)

// Gradient is a linear gradient definition.
type Gradient struct {
	X1    string       `toml:"x1" yaml:"x1" json:"x1,omitempty"`
	Y1    string       `toml:"y1" yaml:"y1" json:"y1,omitempty"`
	X2    string       `toml:"x2" yaml:"x2" json:"x2,omitempty"`
	Y2    string       `toml:"y2" yaml:"y2" json:"y2,omitempty"`
	Stops []scene.Stop `toml:"stops" yaml:"stops" json:"stops" validate:"min=1,dive"`
}

// Node returns the <linearGradient> element for id.
func (g Gradient) Node(id string) *scene.Node {
	return scene.LinearGradient(id, g.X1, g.Y1, g.X2, g.Y2, g.Stops...)
}

// Style is the set of presentation attributes for one class. Zero values
// are not written.
type Style struct {
	Fill          string  `toml:"fill" yaml:"fill" json:"fill,omitempty"`
	FillOpacity   float64 `toml:"fill_opacity" yaml:"fill_opacity" json:"fill_opacity,omitempty" validate:"gte=0,lte=1"`
	Stroke        string  `toml:"stroke" yaml:"stroke" json:"stroke,omitempty"`
	StrokeWidth   float64 `toml:"stroke_width" yaml:"stroke_width" json:"stroke_width,omitempty" validate:"gte=0"`
	StrokeOpacity float64 `toml:"stroke_opacity" yaml:"stroke_opacity" json:"stroke_opacity,omitempty" validate:"gte=0,lte=1"`
	Dash          string  `toml:"dash" yaml:"dash" json:"dash,omitempty"`
	Opacity       float64 `toml:"opacity" yaml:"opacity" json:"opacity,omitempty" validate:"gte=0,lte=1"`
	FontSize      float64 `toml:"font_size" yaml:"font_size" json:"font_size,omitempty" validate:"gte=0"`
	FontWeight    string  `toml:"font_weight" yaml:"font_weight" json:"font_weight,omitempty"`
	FontStyle     string  `toml:"font_style" yaml:"font_style" json:"font_style,omitempty"`
	Anchor        string  `toml:"anchor" yaml:"anchor" json:"anchor,omitempty" validate:"omitempty,oneof=start middle end"`
	Baseline      string  `toml:"baseline" yaml:"baseline" json:"baseline,omitempty"`
	LetterSpacing float64 `toml:"letter_spacing" yaml:"letter_spacing" json:"letter_spacing,omitempty"`
	Hidden        bool    `toml:"hidden" yaml:"hidden" json:"hidden,omitempty"`
}

// Theme is the full palette.
type Theme struct {
	FontFamily string `toml:"font_family" yaml:"font_family" json:"font_family" validate:"required"`
	Background string `toml:"background" yaml:"background" json:"background"`
	// Circle fills the role total circles.
	Circle Gradient `toml:"circle" yaml:"circle" json:"circle"`
	// Primary and Secondary fill the optional backgrounds behind each side.
	Primary   Gradient         `toml:"primary" yaml:"primary" json:"primary"`
	Secondary Gradient         `toml:"secondary" yaml:"secondary" json:"secondary"`
	Styles    map[string]Style `toml:"styles" yaml:"styles" json:"styles" validate:"dive"`
}

// Gradient ids referenced by the charts.
const (
	CircleGradientID    = "gradient"
	PrimaryGradientID   = "gradient-true"
	SecondaryGradientID = "gradient-false"
)

// SideGradientID returns the background gradient id for a side.
func SideGradientID(primary bool) string {
	if primary {
		return PrimaryGradientID
	}
	return SecondaryGradientID
}

// Defs returns a <defs> element with all gradients.
func (t Theme) Defs() *scene.Node {
	return scene.Defs().Add(
		t.Circle.Node(CircleGradientID),
		t.Primary.Node(PrimaryGradientID),
		t.Secondary.Node(SecondaryGradientID),
	)
}

// Style adds classes to n and writes the attributes of every matching style,
// later classes overriding earlier ones. Attributes already on n win.
func (t Theme) Style(n *scene.Node, classes ...string) *scene.Node {
	n.Class(classes...)
	merged := Style{}
	for _, c := range n.Classes() {
		if s, ok := t.Styles[c]; ok {
			merged = merged.merge(s)
		}
	}
	merged.apply(n, t.FontFamily)
	return n
}

// Classes returns the styled class names in sorted order.
func (t Theme) Classes() []string {
	return slices.Sorted(maps.Keys(t.Styles))
}

func (s Style) merge(o Style) Style {
	if o.Fill != "" {
		s.Fill = o.Fill
	}
	if o.FillOpacity != 0 {
		s.FillOpacity = o.FillOpacity
	}
	if o.Stroke != "" {
		s.Stroke = o.Stroke
	}
	if o.StrokeWidth != 0 {
		s.StrokeWidth = o.StrokeWidth
	}
	if o.StrokeOpacity != 0 {
		s.StrokeOpacity = o.StrokeOpacity
	}
	if o.Dash != "" {
		s.Dash = o.Dash
	}
	if o.Opacity != 0 {
		s.Opacity = o.Opacity
	}
	if o.FontSize != 0 {
		s.FontSize = o.FontSize
	}
	if o.FontWeight != "" {
		s.FontWeight = o.FontWeight
	}
	if o.FontStyle != "" {
		s.FontStyle = o.FontStyle
	}
	if o.Anchor != "" {
		s.Anchor = o.Anchor
	}
	if o.Baseline != "" {
		s.Baseline = o.Baseline
	}
	if o.LetterSpacing != 0 {
		s.LetterSpacing = o.LetterSpacing
	}
	s.Hidden = s.Hidden || o.Hidden
	return s
}

func (s Style) apply(n *scene.Node, fontFamily string) {
	if s.Hidden {
		n.SetDefault("visibility", "hidden")
		n.SetDefault("fill", "none")
		return
	}
	str := func(name, v string) {
		if v != "" {
			n.SetDefault(name, v)
		}
	}
	num := func(name string, v float64) {
		if v != 0 {
			n.SetDefault(name, v)
		}
	}
	str("fill", s.Fill)
	num("fill-opacity", s.FillOpacity)
	str("stroke", s.Stroke)
	num("stroke-width", s.StrokeWidth)
	num("stroke-opacity", s.StrokeOpacity)
	str("stroke-dasharray", s.Dash)
	num("opacity", s.Opacity)
	if s.FontSize != 0 {
		str("font-family", fontFamily)
		num("font-size", s.FontSize)
	}
	str("font-weight", s.FontWeight)
	str("font-style", s.FontStyle)
	str("text-anchor", s.Anchor)
	str("dominant-baseline", s.Baseline)
	num("letter-spacing", s.LetterSpacing)
}
