// Package shape generates SVG path data for chart geometry.
//
// The generators follow the conventions of the classic web charting
// toolkits so that charts drawn here line up with their browser
// counterparts:
//
//   - Angles are in radians, 0 at 12 o'clock, increasing clockwise.
//   - [Area] draws the top line forward and the baseline backward, closed.
//   - [RadialArea] is an [Area] in polar space.
//   - [Arc] draws annular sectors centred on the origin.
//   - Curves ([Linear], [Cardinal], [CatmullRom]) interpolate between points.
//
// All generators write to a [Path], which renders compact path data with
// coordinates rounded to three decimals:
//
//	area := shape.Area[survey.YOEMetric]{
//	    X0:    func(survey.YOEMetric, int) float64 { return 0 },
//	    X1:    func(m survey.YOEMetric, _ int) float64 { return -xc.Apply(m.PctVolume) },
//	    Y0:    func(m survey.YOEMetric, _ int) float64 { return y.Apply(m.YOE) },
//	    Curve: shape.CatmullRom(0),
//	}
//	d := area.Path(metrics)
package shape
