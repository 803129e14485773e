package scale

import "math"

// Linear is a continuous linear mapping from a domain interval to a range interval.
//
// The zero value is not useful; build one with [NewLinear]. Linear values are
// immutable: WithClamp returns a copy.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
	clamp  bool
}

// NewLinear returns a linear scale mapping [d0, d1] onto [r0, r1].
// Either interval may be descending.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// WithClamp returns a copy of the scale that clamps outputs to the range.
func (s Linear) WithClamp(clamp bool) Linear {
	s.clamp = clamp
	return s
}

// Domain returns the domain endpoints.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range endpoints.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Apply maps x from the domain into the range.
// A degenerate domain (d0 == d1) maps every input to the middle of the range.
func (s Linear) Apply(x float64) float64 {
	t := normalize(s.d0, s.d1, x)
	if s.clamp {
		t = clamp01(t)
	}
	return interpolate(s.r0, s.r1, t)
}

// Invert maps y from the range back into the domain.
// A degenerate range maps every input to the middle of the domain.
func (s Linear) Invert(y float64) float64 {
	t := normalize(s.r0, s.r1, y)
	if s.clamp {
		t = clamp01(t)
	}
	return interpolate(s.d0, s.d1, t)
}

// Span returns the distance in range units covered by one domain unit.
// It is the pixel width of one band when the domain indexes categories.
func (s Linear) Span() float64 {
	return s.Apply(1) - s.Apply(0)
}

func normalize(a, b, x float64) float64 {
	if d := b - a; d != 0 {
		return (x - a) / d
	}
	if math.IsNaN(b) {
		return math.NaN()
	}
	return 0.5
}

func interpolate(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// Extent returns the minimum and maximum of values.
// It returns (0, 0) for an empty slice and ignores NaN entries.
func Extent(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}
