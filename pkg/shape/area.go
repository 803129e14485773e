package shape

// Accessor reads a coordinate from a datum and its index.
type Accessor[T any] func(d T, i int) float64

// Constant returns an accessor that ignores its input.
func Constant[T any](v float64) Accessor[T] {
	return func(T, int) float64 { return v }
}

// Line generates an open polyline or spline through the data.
type Line[T any] struct {
	X, Y    Accessor[T]
	Defined func(d T, i int) bool // nil treats every datum as defined
	Curve   CurveFactory          // nil means Linear
}

// Path returns the path data, or "" when no datum is defined. Runs of
// undefined data split the line into separate subpaths.
func (l Line[T]) Path(data []T) string {
	p := NewPath()
	l.Draw(p, data)
	return p.String()
}

// Draw writes the line into ctx.
func (l Line[T]) Draw(ctx Context, data []T) {
	out := curveOf(l.Curve)(ctx)
	on := false
	for i, d := range data {
		ok := l.Defined == nil || l.Defined(d, i)
		if ok != on {
			on = ok
			if on {
				out.LineStart()
			} else {
				out.LineEnd()
			}
		}
		if on {
			out.Point(l.X(d, i), l.Y(d, i))
		}
	}
	if on {
		out.LineEnd()
	}
}

// Area generates a closed region between a top line (X1, Y1) and a
// baseline (X0, Y0). The top line is drawn in data order and the baseline
// in reverse, so the outline is a single closed subpath per defined run.
// A nil X1 or Y1 reuses X0 or Y0.
type Area[T any] struct {
	X0, X1  Accessor[T]
	Y0, Y1  Accessor[T]
	Defined func(d T, i int) bool
	Curve   CurveFactory
}

// Path returns the area path data, or "" when no datum is defined.
func (a Area[T]) Path(data []T) string {
	p := NewPath()
	a.Draw(p, data)
	return p.String()
}

// Draw writes the area into ctx.
func (a Area[T]) Draw(ctx Context, data []T) {
	a.drawWith(curveOf(a.Curve)(ctx), data)
}

func (a Area[T]) drawWith(out Curve, data []T) {
	n := len(data)
	x0z := make([]float64, n)
	y0z := make([]float64, n)
	on := false
	start := 0

	for i := 0; i <= n; i++ {
		ok := i < n && (a.Defined == nil || a.Defined(data[i], i))
		if ok != on {
			on = ok
			if on {
				start = i
				out.AreaStart()
				out.LineStart()
			} else {
				out.LineEnd()
				out.LineStart()
				for k := i - 1; k >= start; k-- {
					out.Point(x0z[k], y0z[k])
				}
				out.LineEnd()
				out.AreaEnd()
			}
		}
		if on {
			d := data[i]
			x0z[i], y0z[i] = a.X0(d, i), a.Y0(d, i)
			x, y := x0z[i], y0z[i]
			if a.X1 != nil {
				x = a.X1(d, i)
			}
			if a.Y1 != nil {
				y = a.Y1(d, i)
			}
			out.Point(x, y)
		}
	}
}

// RadialArea is an [Area] in polar coordinates centred on the origin.
// Angles are in radians clockwise from 12 o'clock; a point at angle a and
// radius r lands at (r·sin a, −r·cos a).
type RadialArea[T any] struct {
	Angle       Accessor[T]
	EndAngle    Accessor[T] // nil reuses Angle
	InnerRadius Accessor[T]
	OuterRadius Accessor[T] // nil reuses InnerRadius
	Defined     func(d T, i int) bool
	Curve       CurveFactory
}

// Path returns the radial area path data.
func (r RadialArea[T]) Path(data []T) string {
	p := NewPath()
	r.Draw(p, data)
	return p.String()
}

// Draw writes the radial area into ctx.
func (r RadialArea[T]) Draw(ctx Context, data []T) {
	area := Area[T]{
		X0:      r.Angle,
		X1:      r.EndAngle,
		Y0:      r.InnerRadius,
		Y1:      r.OuterRadius,
		Defined: r.Defined,
	}
	area.drawWith(&radialCurve{curve: curveOf(r.Curve)(ctx)}, data)
}

type radialCurve struct {
	curve Curve
}

func (c *radialCurve) AreaStart() { c.curve.AreaStart() }
func (c *radialCurve) AreaEnd()   { c.curve.AreaEnd() }
func (c *radialCurve) LineStart() { c.curve.LineStart() }
func (c *radialCurve) LineEnd()   { c.curve.LineEnd() }

func (c *radialCurve) Point(a, r float64) {
	p := Polar(r, a)
	c.curve.Point(p.X, p.Y)
}

func curveOf(f CurveFactory) CurveFactory {
	if f == nil {
		return Linear()
	}
	return f
}
