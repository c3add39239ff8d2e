package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TimeEpsilon absorbs float drift when accumulated frame deltas are compared
// against a threshold (0.1 summed ten times is not exactly 1.0).
const TimeEpsilon = 1e-9

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Reached reports whether an accumulated value has met a threshold.
func Reached(acc, threshold float64) bool {
	return acc >= threshold-TimeEpsilon
}

// Progress returns elapsed/duration clamped to [0,1]. A non-positive or NaN
// duration is complete immediately.
func Progress(elapsed, duration float64) float64 {
	if !(duration > 0) || Reached(elapsed, duration) {
		return 1
	}
	p := elapsed / duration
	if math.IsNaN(p) {
		return 0
	}
	return Clamp01(p)
}

// QuadBezier evaluates a quadratic bezier at t.
func QuadBezier(start, control, end cp.Vector, t float64) cp.Vector {
	t = Clamp01(t)
	u := 1 - t
	return start.Mult(u * u).Add(control.Mult(2 * u * t)).Add(end.Mult(t * t))
}

// Direction returns the unit vector from a to b, or zero when they coincide.
func Direction(from, to cp.Vector) cp.Vector {
	d := to.Sub(from)
	l := d.Length()
	if l < 1e-9 {
		return cp.Vector{}
	}
	return d.Mult(1 / l)
}

// ClampLength scales v down so its length does not exceed max.
func ClampLength(v cp.Vector, max float64) cp.Vector {
	if max <= 0 {
		return cp.Vector{}
	}
	l := v.Length()
	if l <= max {
		return v
	}
	return v.Mult(max / l)
}

// ClampToBounds keeps p inside bb shrunk by inset on every side.
func ClampToBounds(p cp.Vector, bb cp.BB, inset float64) cp.Vector {
	l, r := bb.L+inset, bb.R-inset
	b, t := bb.B+inset, bb.T-inset
	if l > r {
		l, r = (bb.L+bb.R)/2, (bb.L+bb.R)/2
	}
	if b > t {
		b, t = (bb.B+bb.T)/2, (bb.B+bb.T)/2
	}
	return cp.Vector{X: Clamp(p.X, l, r), Y: Clamp(p.Y, b, t)}
}

// InBounds reports whether p lies inside bb grown by margin.
func InBounds(p cp.Vector, bb cp.BB, margin float64) bool {
	return p.X >= bb.L-margin && p.X <= bb.R+margin && p.Y >= bb.B-margin && p.Y <= bb.T+margin
}

// Heading returns the vector for angle a (radians) scaled by length.
func Heading(a, length float64) cp.Vector {
	return cp.Vector{X: math.Cos(a) * length, Y: math.Sin(a) * length}
}

// Angle returns the angle of v in radians.
func Angle(v cp.Vector) float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate turns v by a radians.
func Rotate(v cp.Vector, a float64) cp.Vector {
	s, c := math.Sincos(a)
	return cp.Vector{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}
