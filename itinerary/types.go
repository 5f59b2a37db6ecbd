package itinerary

import (
	"errors"
	"strings"
	"time"

	"github.com/npillmayer/globetrip"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'globetrip.itinerary'
func tracer() tracing.Trace {
	return tracing.Select("globetrip.itinerary")
}

var (
	// ErrTooFewWaypoints indicates an itinerary without a single leg.
	ErrTooFewWaypoints = errors.New("itinerary needs at least 2 waypoints")
	// ErrInvalidWaypoint indicates a waypoint coordinate containing NaN/Inf.
	ErrInvalidWaypoint = errors.New("itinerary has invalid waypoint coordinate")
	// ErrDuplicateOrder indicates two waypoints claiming the same position.
	ErrDuplicateOrder = errors.New("itinerary has duplicate waypoint order")
)

// Waypoint is one stop of an itinerary. Waypoints are immutable once loaded.
type Waypoint struct {
	Name             string `yaml:"name"`
	globetrip.LatLng `yaml:",inline"`
	Order            int            `yaml:"order"` // position in the itinerary
	Dwell            time.Duration  `yaml:"dwell"` // 0 means engine default
	Info             map[string]any `yaml:"info"`  // opaque payload for info displays
}

// Short returns the name up to the first comma, e.g. "Seoul" for
// "Seoul, South Korea".
func (w Waypoint) Short() string {
	name, _, _ := strings.Cut(w.Name, ",")
	return strings.TrimSpace(name)
}

// String is a Stringer for waypoints.
func (w Waypoint) String() string {
	return w.Short() + " " + w.LatLng.String()
}

// Itinerary is the fixed, ordered sequence of waypoints of a journey.
// To construct one, start with New(name) and extend it with stops, or load it
// from YAML.
type Itinerary struct {
	name  string
	stops []Waypoint
}

// Name returns the name of the itinerary.
func (it *Itinerary) Name() string {
	return it.name
}

// N returns the number of waypoints.
func (it *Itinerary) N() int {
	return len(it.stops)
}

// Z returns the waypoint at position i.
func (it *Itinerary) Z(i int) Waypoint {
	return it.stops[i]
}

// Waypoints returns a copy of all waypoints, in order.
func (it *Itinerary) Waypoints() []Waypoint {
	w := make([]Waypoint, len(it.stops))
	copy(w, it.stops)
	return w
}

// Validate checks if an itinerary can be travelled.
func (it *Itinerary) Validate() error {
	return validate(it.stops)
}
