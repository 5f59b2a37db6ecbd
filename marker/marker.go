// Package marker places pulsing markers on the globe, one per waypoint, and
// finds the marker under a pointer ray.
package marker

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
	"github.com/npillmayer/globetrip/itinerary"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'globetrip.marker'
func tracer() tracing.Trace {
	return tracing.Select("globetrip.marker")
}

// Marker geometry and animation constants.
const (
	Height    = 0.01 // above the surface
	HitRadius = 0.03 // radius of the clickable sphere
	PulseStep = 0.05 // phase advance per frame
	Amplitude = 0.3  // of the scale pulse
	RingSpin  = 0.02 // ring rotation per frame, radians
)

// Marker is the visual representation of a waypoint on the globe.
type Marker struct {
	Waypoint itinerary.Waypoint
	Position mgl64.Vec3
	Phase    float64 // pulse phase
	Scale    float64 // current pulse scale
	Ring     float64 // rotation of the ring around the marker
}

// New creates a marker for w on a globe of the given radius, at height above
// the surface, starting its pulse at phase.
func New(w itinerary.Waypoint, radius, height, phase float64) *Marker {
	m := &Marker{
		Waypoint: w,
		Position: w.Project(radius, height),
		Phase:    phase,
	}
	m.Scale = 1 + Amplitude*math.Sin(phase)
	return m
}

// Place creates markers for all waypoints. Pulse phases are random, so the
// markers do not pulse in unison; rnd may be nil.
func Place(waypoints []itinerary.Waypoint, radius, height float64, rnd *rand.Rand) []*Marker {
	float := rand.Float64
	if rnd != nil {
		float = rnd.Float64
	}
	markers := make([]*Marker, len(waypoints))
	for i, w := range waypoints {
		markers[i] = New(w, radius, height, float()*2*math.Pi)
	}
	tracer().Debugf("placed %d markers", len(markers))
	return markers
}

// Pulse advances the animation of markers by one frame.
func Pulse(markers []*Marker) {
	for _, m := range markers {
		m.Phase += PulseStep
		m.Scale = 1 + Amplitude*math.Sin(m.Phase)
		m.Ring += RingSpin
	}
}

// HitTest returns the waypoint of the marker nearest to the ray's origin
// among those the ray passes through. Markers are spheres of radius r.
func HitTest(ray globetrip.Ray, markers []*Marker, r float64) (itinerary.Waypoint, bool) {
	var hit *Marker
	nearest := math.Inf(1)
	for _, m := range markers {
		t, ok := ray.IntersectSphere(m.Position, r)
		if ok && t < nearest {
			hit, nearest = m, t
		}
	}
	if hit == nil {
		return itinerary.Waypoint{}, false
	}
	tracer().Debugf("ray hit marker %s at distance %.4f", hit.Waypoint.Short(), nearest)
	return hit.Waypoint, true
}
