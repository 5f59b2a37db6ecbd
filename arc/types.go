package arc

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'globetrip.arc'
func tracer() tracing.Trace {
	return tracing.Select("globetrip.arc")
}

// Lift is the ratio of control point elevation to chord length.
const Lift = 0.3

// Arc is the curved path geometry for a leg. It is created by Between and
// read-only thereafter.
type Arc struct {
	from, to globetrip.LatLng // geodetic knots
	start    mgl64.Vec3       // projected start knot
	end      mgl64.Vec3       // projected end knot
	control  mgl64.Vec3       // raised chord midpoint
	radius   float64          // globe radius
	height   float64          // control point elevation above the globe
}

// Start returns the projected start knot.
func (a *Arc) Start() mgl64.Vec3 {
	return a.start
}

// End returns the projected end knot.
func (a *Arc) End() mgl64.Vec3 {
	return a.end
}

// Control returns the Bézier control point.
func (a *Arc) Control() mgl64.Vec3 {
	return a.control
}

// Radius returns the radius of the globe the arc was built for.
func (a *Arc) Radius() float64 {
	return a.radius
}

// HeightFactor returns how far the control point has been lifted above the
// globe's surface.
func (a *Arc) HeightFactor() float64 {
	return a.height
}

// From returns the geodetic start position.
func (a *Arc) From() globetrip.LatLng {
	return a.from
}

// To returns the geodetic end position.
func (a *Arc) To() globetrip.LatLng {
	return a.to
}
