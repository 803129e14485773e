// Package scale maps continuous data domains onto pixel or angle ranges.
//
// Every chart in surveycharts is a handful of scales followed by shape
// generators. A scale is built once per draw from the dataset extents and the
// configured page geometry:
//
//	xRole := scale.NewLinear(-1, 5.5, 100, 700)
//	rRole := scale.NewLinear(0, 665, 28, 70)
//	volume := scale.NewSqrt(0, 1, 0, 30.8)
//
//	x := xRole.Apply(2)        // role 2 column
//	r := rRole.Apply(total)    // circle radius
//
// [Linear] is the workhorse; [Pow] (and [NewSqrt]) compresses volume data so
// that areas, not radii, track the value. [Ticks] produces the 1/2/5-step tick
// values used for grid lines.
package scale
