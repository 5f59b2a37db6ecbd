/*
Package journey animates a vehicle along the legs of an itinerary.

A Machine advances the active leg's progress once per rendered frame, pauses
at every destination for a dwell time, and finally comes to rest. While
travelling it drives a Vehicle pose and a decaying Trail. Arrivals are
announced to Observers (info displays) and to a Director (the camera).

All types in this package are meant to be driven from a single render loop;
they are not safe for concurrent use.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package journey

import (
	"errors"
	"fmt"
	"time"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'globetrip.journey'
func tracer() tracing.Trace {
	return tracing.Select("globetrip.journey")
}

// DefaultDwell is the pause at a destination whose waypoint does not
// specify one.
const DefaultDwell = 5000 * time.Millisecond

// ErrInvalidSpeed flags a speed which would not move the vehicle forward.
var ErrInvalidSpeed = errors.New("speed must be a positive progress step")

// Phase is the coarse state of a journey.
type Phase int8

// Phases of a journey. Transitions are
//
//	Idle → Traveling → ArrivedPaused → Traveling … → Finished
//
// and back to Idle on reset.
const (
	Idle Phase = iota
	Traveling
	ArrivedPaused
	Finished
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Traveling:
		return "traveling"
	case ArrivedPaused:
		return "arrived"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Speed is a preset for the progress a vehicle makes per frame.
type Speed int8

// Speed presets, as offered by the settings panel.
const (
	Slow Speed = iota
	Normal
	Fast
)

// Step returns the progress per frame of a speed preset, or 0 for an
// unknown preset.
func (s Speed) Step() float64 {
	switch s {
	case Slow:
		return 0.001
	case Normal:
		return 0.002
	case Fast:
		return 0.004
	}
	return 0
}

func (s Speed) String() string {
	switch s {
	case Slow:
		return "slow"
	case Normal:
		return "normal"
	case Fast:
		return "fast"
	}
	return fmt.Sprintf("speed(%d)", int(s))
}

// ParseSpeed maps a preset name to a Speed.
func ParseSpeed(name string) (Speed, error) {
	for _, s := range []Speed{Slow, Normal, Fast} {
		if s.String() == name {
			return s, nil
		}
	}
	return Normal, fmt.Errorf("%w: unknown preset %q", ErrInvalidSpeed, name)
}

// State is a snapshot of a journey.
//
// Progress stays within [0,1]. Leg increases strictly during a traversal and
// equals the number of legs once the journey is finished.
type State struct {
	Leg           int           // index of the active leg
	Progress      float64       // position along the active leg's arc
	Phase         Phase         // coarse state
	PlayRequested bool          // false freezes all advancement and timers
	Speed         float64       // progress per tick
	PauseElapsed  time.Duration // time spent at the current destination
}

func (s State) String() string {
	return fmt.Sprintf("[%s leg=%d progress=%.4f play=%v pause=%v]",
		s.Phase, s.Leg, s.Progress, s.PlayRequested, s.PauseElapsed)
}
