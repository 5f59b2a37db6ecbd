package arc

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
)

// PointAt evaluates the arc at parameter t. t is clamped to [0,1];
// PointAt(0) is the start knot and PointAt(1) the end knot.
func (a *Arc) PointAt(t float64) mgl64.Vec3 {
	t = globetrip.Clamp01(t)
	return mgl64.QuadraticBezierCurve3D(t, a.start, a.control, a.end)
}

// TangentAt returns the normalized direction of travel at parameter t
// (clamped to [0,1]).
//
// The derivative of a quadratic Bézier curve is
//
//	B'(t) = 2(1-t)(c - s) + 2t(e - c)
//
// It vanishes only for degenerate arcs, where the chord direction is used.
// An arc with coinciding knots has no direction and yields the zero vector.
func (a *Arc) TangentAt(t float64) mgl64.Vec3 {
	t = globetrip.Clamp01(t)
	d := a.control.Sub(a.start).Mul(2 * (1 - t)).Add(a.end.Sub(a.control).Mul(2 * t))
	if globetrip.Is0(d.Len()) {
		d = a.end.Sub(a.start)
		if globetrip.Is0(d.Len()) {
			tracer().Errorf("arc %s has no direction at t=%g", a, t)
			return mgl64.Vec3{}
		}
	}
	return d.Normalize()
}

// Points samples the arc at n+1 evenly spaced parameters, including both
// knots. It is used to draw the path line of a leg.
func (a *Arc) Points(n int) []mgl64.Vec3 {
	if n < 1 {
		n = 1
	}
	pts := make([]mgl64.Vec3, n+1)
	for i := 0; i <= n; i++ {
		pts[i] = a.PointAt(float64(i) / float64(n))
	}
	return pts
}

// Length approximates the arc length by summing chords of n samples.
func (a *Arc) Length(n int) float64 {
	pts := a.Points(n)
	l := 0.0
	for i := 1; i < len(pts); i++ {
		l += pts[i].Sub(pts[i-1]).Len()
	}
	return l
}
