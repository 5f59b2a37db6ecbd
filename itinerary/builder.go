package itinerary

import (
	"time"

	"github.com/npillmayer/globetrip"
)

// New creates an empty itinerary, to be extended by subsequent builder
// calls. The following example builds an itinerary of three stops, pausing
// ten seconds in Tokyo:
//
//	it := New("east asia").
//	    Stop("Seoul", 37.5665, 126.9780).
//	    DwellStop("Tokyo", 35.6762, 139.6503, 10*time.Second).
//	    Stop("Bangkok", 13.7563, 100.5018).
//	    End()
func New(name string) *Itinerary {
	return &Itinerary{name: name}
}

// End finishes an itinerary. Part of builder functionality.
func (it *Itinerary) End() *Itinerary {
	return it
}

// Stop appends a waypoint with default dwell time. Part of builder functionality.
func (it *Itinerary) Stop(name string, lat, lng float64) *Itinerary {
	return it.DwellStop(name, lat, lng, 0)
}

// DwellStop appends a waypoint with a given dwell time.
// Part of builder functionality.
func (it *Itinerary) DwellStop(name string, lat, lng float64, dwell time.Duration) *Itinerary {
	if dwell < 0 {
		panic("dwell time must not be negative")
	}
	it.stops = append(it.stops, Waypoint{
		Name:   name,
		LatLng: globetrip.L(lat, lng),
		Order:  len(it.stops),
		Dwell:  dwell,
	})
	return it
}

// Waypoint appends a fully specified waypoint. Its order is overwritten with
// its position. Part of builder functionality.
func (it *Itinerary) Waypoint(w Waypoint) *Itinerary {
	w.Order = len(it.stops)
	it.stops = append(it.stops, w)
	return it
}

// WithInfo attaches a display payload to the most recently added waypoint.
// Part of builder functionality.
func (it *Itinerary) WithInfo(key string, value any) *Itinerary {
	if it.N() == 0 {
		panic("cannot add info to empty itinerary")
	}
	w := &it.stops[it.N()-1]
	if w.Info == nil {
		w.Info = make(map[string]any)
	}
	w.Info[key] = value
	return it
}
