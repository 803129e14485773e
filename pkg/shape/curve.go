package shape

import "math"

// Curve interpolates a sequence of points into path commands.
//
// Generators call LineStart, then Point for each vertex, then LineEnd. Area
// generators bracket two lines (top and baseline) with AreaStart/AreaEnd so
// the second line continues the first and the outline closes.
type Curve interface {
	AreaStart()
	AreaEnd()
	LineStart()
	LineEnd()
	Point(x, y float64)
}

// CurveFactory binds a curve to a drawing context.
type CurveFactory func(ctx Context) Curve

// lineState tracks whether the current line continues an area outline.
// area is -1 outside areas, 0 for the first line and 1 for the second.
type lineState struct {
	area int
}

func (s *lineState) areaStart() { s.area = 0 }
func (s *lineState) areaEnd()   { s.area = -1 }

// continues reports whether the first point should connect with a line
// rather than start a new subpath.
func (s *lineState) continues() bool { return s.area == 1 }

// finish closes the outline after the second area line, or a single-point
// line outside an area, then flips the area line counter.
func (s *lineState) finish(ctx Context, point int) {
	if s.area == 1 || (s.area != 0 && point == 1) {
		ctx.ClosePath()
	}
	if s.area >= 0 {
		s.area = 1 - s.area
	}
}

// Linear connects points with straight segments.
func Linear() CurveFactory {
	return func(ctx Context) Curve { return &linearCurve{ctx: ctx, lineState: lineState{area: -1}} }
}

type linearCurve struct {
	lineState
	ctx   Context
	point int
}

func (c *linearCurve) AreaStart() { c.areaStart() }
func (c *linearCurve) AreaEnd()   { c.areaEnd() }
func (c *linearCurve) LineStart() { c.point = 0 }
func (c *linearCurve) LineEnd()   { c.finish(c.ctx, c.point) }

func (c *linearCurve) Point(x, y float64) {
	switch c.point {
	case 0:
		c.point = 1
		if c.continues() {
			c.ctx.LineTo(x, y)
		} else {
			c.ctx.MoveTo(x, y)
		}
	default:
		c.point = 2
		c.ctx.LineTo(x, y)
	}
}

// Cardinal interpolates with a cardinal spline. Tension 0 gives the uniform
// Catmull-Rom spline; tension 1 gives straight segments.
func Cardinal(tension float64) CurveFactory {
	k := (1 - tension) / 6
	return func(ctx Context) Curve { return &cardinalCurve{ctx: ctx, k: k, lineState: lineState{area: -1}} }
}

type cardinalCurve struct {
	lineState
	ctx        Context
	k          float64
	point      int
	x0, x1, x2 float64
	y0, y1, y2 float64
}

func (c *cardinalCurve) AreaStart() { c.areaStart() }
func (c *cardinalCurve) AreaEnd()   { c.areaEnd() }

func (c *cardinalCurve) LineStart() {
	nan := math.NaN()
	c.x0, c.x1, c.x2 = nan, nan, nan
	c.y0, c.y1, c.y2 = nan, nan, nan
	c.point = 0
}

func (c *cardinalCurve) LineEnd() {
	switch c.point {
	case 2:
		c.ctx.LineTo(c.x2, c.y2)
	case 3:
		c.segment(c.x1, c.y1)
	}
	c.finish(c.ctx, c.point)
}

func (c *cardinalCurve) Point(x, y float64) {
	switch c.point {
	case 0:
		c.point = 1
		if c.continues() {
			c.ctx.LineTo(x, y)
		} else {
			c.ctx.MoveTo(x, y)
		}
	case 1:
		c.point = 2
		c.x1, c.y1 = x, y
	case 2:
		c.point = 3
		c.segment(x, y)
	default:
		c.segment(x, y)
	}
	c.x0, c.x1, c.x2 = c.x1, c.x2, x
	c.y0, c.y1, c.y2 = c.y1, c.y2, y
}

// segment draws the Bezier from (x1, y1) to (x2, y2) using the neighbours
// (x0, y0) and (x, y) for tangents.
func (c *cardinalCurve) segment(x, y float64) {
	c.ctx.BezierCurveTo(
		c.x1+c.k*(c.x2-c.x0),
		c.y1+c.k*(c.y2-c.y0),
		c.x2+c.k*(c.x1-x),
		c.y2+c.k*(c.y1-y),
		c.x2,
		c.y2,
	)
}

// CatmullRom interpolates with a Catmull-Rom spline parameterized by alpha:
// 0 is uniform, 0.5 centripetal and 1 chordal. Alpha 0 is delegated to
// [Cardinal] with tension 0.
func CatmullRom(alpha float64) CurveFactory {
	if alpha == 0 {
		return Cardinal(0)
	}
	return func(ctx Context) Curve {
		return &catmullRomCurve{ctx: ctx, alpha: alpha, lineState: lineState{area: -1}}
	}
}

type catmullRomCurve struct {
	lineState
	ctx        Context
	alpha      float64
	point      int
	x0, x1, x2 float64
	y0, y1, y2 float64

	l01a, l12a, l23a    float64
	l01a2, l12a2, l23a2 float64
}

func (c *catmullRomCurve) AreaStart() { c.areaStart() }
func (c *catmullRomCurve) AreaEnd()   { c.areaEnd() }

func (c *catmullRomCurve) LineStart() {
	nan := math.NaN()
	c.x0, c.x1, c.x2 = nan, nan, nan
	c.y0, c.y1, c.y2 = nan, nan, nan
	c.l01a, c.l12a, c.l23a = 0, 0, 0
	c.l01a2, c.l12a2, c.l23a2 = 0, 0, 0
	c.point = 0
}

func (c *catmullRomCurve) LineEnd() {
	switch c.point {
	case 2:
		c.ctx.LineTo(c.x2, c.y2)
	case 3:
		c.Point(c.x2, c.y2)
	}
	c.finish(c.ctx, c.point)
}

func (c *catmullRomCurve) Point(x, y float64) {
	if c.point > 0 {
		dx, dy := c.x2-x, c.y2-y
		c.l23a2 = math.Pow(dx*dx+dy*dy, c.alpha)
		c.l23a = math.Sqrt(c.l23a2)
	}

	switch c.point {
	case 0:
		c.point = 1
		if c.continues() {
			c.ctx.LineTo(x, y)
		} else {
			c.ctx.MoveTo(x, y)
		}
	case 1:
		c.point = 2
	case 2:
		c.point = 3
		c.segment(x, y)
	default:
		c.segment(x, y)
	}

	c.l01a, c.l12a = c.l12a, c.l23a
	c.l01a2, c.l12a2 = c.l12a2, c.l23a2
	c.x0, c.x1, c.x2 = c.x1, c.x2, x
	c.y0, c.y1, c.y2 = c.y1, c.y2, y
}

func (c *catmullRomCurve) segment(x, y float64) {
	x1, y1, x2, y2 := c.x1, c.y1, c.x2, c.y2

	if c.l01a > epsilon {
		a := 2*c.l01a2 + 3*c.l01a*c.l12a + c.l12a2
		n := 3 * c.l01a * (c.l01a + c.l12a)
		x1 = (x1*a - c.x0*c.l12a2 + c.x2*c.l01a2) / n
		y1 = (y1*a - c.y0*c.l12a2 + c.y2*c.l01a2) / n
	}
	if c.l23a > epsilon {
		b := 2*c.l23a2 + 3*c.l23a*c.l12a + c.l12a2
		m := 3 * c.l23a * (c.l23a + c.l12a)
		x2 = (x2*b + c.x1*c.l23a2 - x*c.l12a2) / m
		y2 = (y2*b + c.y1*c.l23a2 - y*c.l12a2) / m
	}

	c.ctx.BezierCurveTo(x1, y1, x2, y2, c.x2, c.y2)
}
