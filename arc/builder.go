package arc

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
)

// HeightFactor is the elevation of the control point above the globe for a
// chord of the given length. It is monotone in the chord length.
func HeightFactor(chord float64) float64 {
	return chord * Lift
}

// Between builds the arc from one geodetic position to another, on a globe of
// the given radius. Both knots are projected onto the surface (height 0).
//
// Identical inputs yield identical arcs. If the chord midpoint collapses into
// the globe's center, i.e. the knots are antipodal, the control point is
// lifted perpendicular to the start knot instead.
func Between(from, to globetrip.LatLng, radius float64) *Arc {
	a := &Arc{
		from:   from,
		to:     to,
		start:  from.Project(radius, 0),
		end:    to.Project(radius, 0),
		radius: radius,
	}
	mid := a.start.Add(a.end).Mul(0.5)
	a.height = HeightFactor(a.start.Sub(a.end).Len())
	dir := mid
	if globetrip.Is0(dir.Len()) {
		dir = perpendicular(a.start)
		tracer().Infof("antipodal arc %s -> %s, lifting along %s", from, to, globetrip.V(dir))
	}
	a.control = dir.Normalize().Mul(radius + a.height)
	tracer().Debugf("arc %s", a)
	return a
}

// perpendicular returns a unit vector perpendicular to v, preferring the
// direction closest to the north pole.
func perpendicular(v mgl64.Vec3) mgl64.Vec3 {
	up := mgl64.Vec3{0, 1, 0}
	if globetrip.Is0(v.Len()) {
		return up
	}
	n := v.Normalize()
	p := up.Sub(n.Mul(up.Dot(n)))
	if globetrip.Is0(p.Len()) { // v is polar
		x := mgl64.Vec3{1, 0, 0}
		p = x.Sub(n.Mul(x.Dot(n)))
	}
	return p.Normalize()
}
