// Package scene composes the globe, markers, journey and camera into a
// render-loop controller.
//
// A Scene is the single context object of a running globe. Frame performs
// all per-frame updates in a fixed order: globe spin, marker pulse, trail
// decay, journey tick, camera auto-rotation. Scenes share no state, any
// number of them may run side by side.
package scene

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/npillmayer/globetrip"
	"github.com/npillmayer/globetrip/camera"
	"github.com/npillmayer/globetrip/chat"
	"github.com/npillmayer/globetrip/config"
	"github.com/npillmayer/globetrip/itinerary"
	"github.com/npillmayer/globetrip/journey"
	"github.com/npillmayer/globetrip/marker"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'globetrip.scene'
func tracer() tracing.Trace {
	return tracing.Select("globetrip.scene")
}

// Globe spin per frame, radians.
const (
	SurfaceSpin    = 0.01 / 32
	AtmosphereSpin = 0.01 / 16
)

// Globe is the rotation state of the globe's layers.
type Globe struct {
	Surface    float64
	Atmosphere float64
}

// Spin rotates the globe by one frame.
func (g *Globe) Spin() {
	g.Surface += SurfaceSpin
	g.Atmosphere += AtmosphereSpin
}

// Scene is a running globe.
type Scene struct {
	settings  config.Settings
	itinerary *itinerary.Itinerary
	machine   *journey.Machine
	markers   []*marker.Marker
	camera    *camera.Camera
	globe     Globe
	frames    int
	rnd       *rand.Rand
	now       func() time.Time
	sink      journey.ParticleSink
	observers []journey.Observer
}

// Option configures a Scene.
type Option func(*Scene)

// WithCamera sets the camera, e.g. a manually stepped one.
func WithCamera(c *camera.Camera) Option {
	return func(sc *Scene) { sc.camera = c }
}

// WithRand sets the random source for marker phases and trail spawns.
func WithRand(rnd *rand.Rand) Option {
	return func(sc *Scene) { sc.rnd = rnd }
}

// WithClock sets the wall clock for cosmetic animation.
func WithClock(now func() time.Time) Option {
	return func(sc *Scene) { sc.now = now }
}

// WithSink sets the owner of trail particle resources.
func WithSink(s journey.ParticleSink) Option {
	return func(sc *Scene) { sc.sink = s }
}

// WithObserver subscribes an info display to the journey.
func WithObserver(o journey.Observer) Option {
	return func(sc *Scene) { sc.observers = append(sc.observers, o) }
}

// New creates a scene travelling along it. Itineraries of fewer than two
// waypoints are rejected with itinerary.ErrTooFewWaypoints.
func New(settings config.Settings, it *itinerary.Itinerary, opts ...Option) (*Scene, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	sc := &Scene{
		settings:  settings,
		itinerary: it,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(sc)
	}
	radius := settings.Globe.Radius
	legs, err := it.Legs(radius)
	if err != nil {
		return nil, fmt.Errorf("cannot set up scene: %w", err)
	}
	speed, err := journey.ParseSpeed(settings.Journey.Speed)
	if err != nil {
		return nil, err
	}
	trailOpts := []journey.TrailOption{
		journey.WithCapacity(settings.Trail.Capacity),
		journey.WithDecay(settings.Trail.Decay),
		journey.WithChance(settings.Trail.Chance),
	}
	if sc.rnd != nil {
		trailOpts = append(trailOpts, journey.WithSource(sc.rnd))
	}
	if sc.sink != nil {
		trailOpts = append(trailOpts, journey.WithSink(sc.sink))
	}
	if sc.camera == nil {
		sc.camera = camera.New(camera.WithClock(sc.now))
	}
	sc.camera.SetAutoRotation(settings.Camera.AutoRotate)
	sc.machine = journey.NewMachine(legs,
		journey.WithDwell(settings.Journey.Dwell),
		journey.WithStep(speed.Step()),
		journey.WithTrail(journey.NewTrail(trailOpts...)),
		journey.WithClock(sc.now),
		journey.WithDirector(journey.DirectorFunc(sc.flyTo)),
	)
	for _, o := range sc.observers {
		sc.machine.Subscribe(o)
	}
	sc.markers = marker.Place(it.Waypoints(), radius, settings.Globe.MarkerHeight, sc.rnd)
	tracer().Infof("scene for %q with %d legs", it.Name(), len(legs))
	return sc, nil
}

// flyTo frames a waypoint with the camera.
func (sc *Scene) flyTo(w itinerary.Waypoint) {
	target := camera.ViewFor(w.LatLng, sc.settings.Globe.Radius, sc.settings.Camera.Height)
	sc.camera.FlyTo(target, sc.settings.Camera.FlyDuration)
}

// Frame advances the scene by one frame of duration dt.
func (sc *Scene) Frame(dt time.Duration) {
	sc.frames++
	sc.globe.Spin()
	marker.Pulse(sc.markers)
	sc.machine.Trail().Decay()
	sc.machine.Tick(dt)
	sc.camera.AutoRotate()
}

// Advance advances the scene by one frame of the configured tick duration.
func (sc *Scene) Advance() {
	sc.Frame(sc.settings.Journey.Tick)
}

// --- Commands --------------------------------------------------------------

// Play starts or resumes the journey.
func (sc *Scene) Play() { sc.machine.Play() }

// Pause freezes the journey.
func (sc *Scene) Pause() { sc.machine.Pause() }

// Toggle switches between Play and Pause.
func (sc *Scene) Toggle() { sc.machine.Toggle() }

// Reset returns the journey to its start.
func (sc *Scene) Reset() { sc.machine.Reset() }

// SetSpeed selects a speed preset.
func (sc *Scene) SetSpeed(s journey.Speed) error {
	return sc.machine.SetSpeed(s)
}

// Click presents the waypoint whose marker ray hits, if any. The journey
// itself is not affected. Returns true for a hit.
func (sc *Scene) Click(ray globetrip.Ray) bool {
	w, ok := marker.HitTest(ray, sc.markers, sc.settings.Globe.HitRadius)
	if !ok {
		return false
	}
	tracer().Infof("marker of %s selected", w.Short())
	sc.machine.Announce(w)
	return true
}

// ClickAt is Click for a pointer position (x,y) in a viewport of size w×h.
func (sc *Scene) ClickAt(x, y float64, w, h int) (bool, error) {
	ray, err := sc.camera.PickRay(x, y, w, h)
	if err != nil {
		return false, err
	}
	return sc.Click(ray), nil
}

// --- Queries ---------------------------------------------------------------

// Current returns the waypoint currently on display, if any.
func (sc *Scene) Current() (itinerary.Waypoint, bool) {
	return sc.machine.Current()
}

// ChatPrompt returns the system prompt for the travel assistant, describing
// the itinerary and the waypoint on display.
func (sc *Scene) ChatPrompt() string {
	var current *itinerary.Waypoint
	if w, ok := sc.Current(); ok {
		current = &w
	}
	return chat.SystemPrompt(sc.itinerary.Waypoints(), current)
}

// State returns a snapshot of the journey state.
func (sc *Scene) State() journey.State { return sc.machine.State() }

// Stats returns the timeline summary of the journey.
func (sc *Scene) Stats() journey.Stats { return sc.machine.Stats() }

// Machine returns the journey state machine.
func (sc *Scene) Machine() *journey.Machine { return sc.machine }

// Camera returns the camera.
func (sc *Scene) Camera() *camera.Camera { return sc.camera }

// Markers returns the waypoint markers.
func (sc *Scene) Markers() []*marker.Marker { return sc.markers }

// Globe returns the rotation state of the globe.
func (sc *Scene) Globe() Globe { return sc.globe }

// Frames returns the number of frames rendered so far.
func (sc *Scene) Frames() int { return sc.frames }

// Itinerary returns the itinerary travelled.
func (sc *Scene) Itinerary() *itinerary.Itinerary { return sc.itinerary }
