package itinerary

import (
	"fmt"

	"github.com/npillmayer/globetrip/arc"
)

// Leg is the directed travel segment between two consecutive waypoints.
type Leg struct {
	Index int      // position within the journey, 0 … N-2
	From  Waypoint // source waypoint
	To    Waypoint // destination waypoint
	Arc   *arc.Arc // path geometry, read-only
}

// String is a Stringer for legs, e.g. "#0 Seoul — Tokyo".
func (l Leg) String() string {
	return fmt.Sprintf("#%d %s — %s", l.Index, l.From.Short(), l.To.Short())
}

// BuildLegs creates one leg per consecutive pair of waypoints, on a globe of
// the given radius. The result has len(waypoints)-1 entries.
//
// It returns ErrTooFewWaypoints if fewer than 2 waypoints are given: a
// journey needs at least one leg.
func BuildLegs(waypoints []Waypoint, radius float64) ([]Leg, error) {
	if err := validate(waypoints); err != nil {
		return nil, err
	}
	legs := make([]Leg, 0, len(waypoints)-1)
	for i := 1; i < len(waypoints); i++ {
		legs = append(legs, makeLeg(waypoints, i-1, radius))
	}
	tracer().Infof("built %d legs from %d waypoints", len(legs), len(waypoints))
	return legs, nil
}

// Legs is BuildLegs for the waypoints of an itinerary.
func (it *Itinerary) Legs(radius float64) ([]Leg, error) {
	return BuildLegs(it.stops, radius)
}

// Create a leg between waypoints at positions i and i+1.
func makeLeg(waypoints []Waypoint, i int, radius float64) Leg {
	leg := Leg{
		Index: i,
		From:  waypoints[i],
		To:    waypoints[i+1],
		Arc:   arc.Between(waypoints[i].LatLng, waypoints[i+1].LatLng, radius),
	}
	tracer().Debugf("leg %s along %s", leg, leg.Arc)
	return leg
}

func validate(waypoints []Waypoint) error {
	if len(waypoints) < 2 {
		return fmt.Errorf("%w, got %d", ErrTooFewWaypoints, len(waypoints))
	}
	for i, w := range waypoints {
		if !w.IsValid() {
			return fmt.Errorf("%w at waypoint %d (%s)", ErrInvalidWaypoint, i, w.Name)
		}
	}
	return nil
}
