package shape

import (
	"math"
	"strconv"
	"strings"
)

const (
	epsilon    = 1e-6
	tau        = 2 * math.Pi
	tauEpsilon = tau - epsilon
)

// Context receives drawing commands. [*Path] is the only implementation in
// this package; curves draw into a Context so they can be wrapped.
type Context interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	BezierCurveTo(x1, y1, x2, y2, x, y float64)
	ClosePath()
}

// Path accumulates SVG path data.
type Path struct {
	buf      strings.Builder
	x0, y0   float64 // start of the current subpath
	x1, y1   float64 // current point
	hasPoint bool
	digits   int
}

// NewPath returns an empty path that rounds coordinates to 3 decimals.
func NewPath() *Path {
	return &Path{digits: 3}
}

// WithDigits sets the number of decimals written for each coordinate.
// A negative value writes the shortest exact representation.
func (p *Path) WithDigits(digits int) *Path {
	p.digits = digits
	return p
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.x0, p.y0, p.x1, p.y1 = x, y, x, y
	p.hasPoint = true
	p.cmd('M', x, y)
}

// LineTo draws a straight line to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.x1, p.y1 = x, y
	p.hasPoint = true
	p.cmd('L', x, y)
}

// QuadraticCurveTo draws a quadratic Bezier to (x, y) with control (cx, cy).
func (p *Path) QuadraticCurveTo(cx, cy, x, y float64) {
	p.x1, p.y1 = x, y
	p.hasPoint = true
	p.cmd('Q', cx, cy, x, y)
}

// BezierCurveTo draws a cubic Bezier to (x, y) with controls (x1, y1) and (x2, y2).
func (p *Path) BezierCurveTo(x1, y1, x2, y2, x, y float64) {
	p.x1, p.y1 = x, y
	p.hasPoint = true
	p.cmd('C', x1, y1, x2, y2, x, y)
}

// ClosePath closes the current subpath. It is a no-op on an empty path.
func (p *Path) ClosePath() {
	if !p.hasPoint {
		return
	}
	p.x1, p.y1 = p.x0, p.y0
	p.buf.WriteByte('Z')
}

// Arc draws a circular arc centred on (x, y) with radius r from angle a0 to
// a1. Angles here are canvas angles: 0 at 3 o'clock, clockwise. If the path
// has a current point, a line is drawn to the arc start first. Spans of a
// full turn or more draw a complete circle.
func (p *Path) Arc(x, y, r, a0, a1 float64, ccw bool) {
	if r < 0 {
		r = 0
	}
	dx, dy := r*math.Cos(a0), r*math.Sin(a0)
	sx, sy := x+dx, y+dy
	sweep := 1
	da := a1 - a0
	if ccw {
		sweep = 0
		da = a0 - a1
	}

	if !p.hasPoint {
		p.MoveTo(sx, sy)
	} else if math.Abs(p.x1-sx) > epsilon || math.Abs(p.y1-sy) > epsilon {
		p.LineTo(sx, sy)
	}
	if r == 0 {
		return
	}

	if da < 0 {
		da = math.Mod(da, tau) + tau
	}
	switch {
	case da > tauEpsilon:
		p.arcCmd(r, 1, sweep, x-dx, y-dy)
		p.arcCmd(r, 1, sweep, sx, sy)
		p.x1, p.y1 = sx, sy
	case da > epsilon:
		large := 0
		if da >= math.Pi {
			large = 1
		}
		ex, ey := x+r*math.Cos(a1), y+r*math.Sin(a1)
		p.arcCmd(r, large, sweep, ex, ey)
		p.x1, p.y1 = ex, ey
	}
}

// Empty reports whether nothing has been drawn.
func (p *Path) Empty() bool { return p.buf.Len() == 0 }

// String returns the accumulated path data.
func (p *Path) String() string { return p.buf.String() }

func (p *Path) cmd(c byte, coords ...float64) {
	p.buf.WriteByte(c)
	for i, v := range coords {
		if i > 0 {
			p.buf.WriteByte(',')
		}
		p.buf.WriteString(p.num(v))
	}
}

func (p *Path) arcCmd(r float64, large, sweep int, x, y float64) {
	p.buf.WriteByte('A')
	p.buf.WriteString(p.num(r))
	p.buf.WriteByte(',')
	p.buf.WriteString(p.num(r))
	p.buf.WriteString(",0,")
	p.buf.WriteString(strconv.Itoa(large))
	p.buf.WriteByte(',')
	p.buf.WriteString(strconv.Itoa(sweep))
	p.buf.WriteByte(',')
	p.buf.WriteString(p.num(x))
	p.buf.WriteByte(',')
	p.buf.WriteString(p.num(y))
}

func (p *Path) num(v float64) string {
	return FormatNumber(v, p.digits)
}

// FormatNumber formats v rounded to digits decimals without trailing zeros.
// Negative zero is written as "0".
func FormatNumber(v float64, digits int) string {
	if digits >= 0 {
		k := math.Pow(10, float64(digits))
		v = math.Round(v*k) / k
	}
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
