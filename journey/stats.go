package journey

import "fmt"

// Stats summarizes a journey for a timeline display.
type Stats struct {
	Route   string  // "Seoul — Tokyo", or "Ready" before the start
	Step    int     // 1-based number of the active leg
	Stops   int     // number of waypoints
	Percent float64 // share of legs started
}

func (s Stats) String() string {
	return fmt.Sprintf("%s  %d / %d  (%.0f%%)", s.Route, s.Step, s.Stops, s.Percent)
}

// Stats returns the timeline summary of the journey.
func (m *Machine) Stats() Stats {
	n := len(m.legs)
	st := Stats{Route: "Ready"}
	if n == 0 {
		return st
	}
	st.Stops = n + 1
	if m.state.Phase == Idle {
		return st
	}
	i := m.state.Leg
	if i >= n {
		i = n - 1
	}
	leg := m.legs[i]
	st.Route = fmt.Sprintf("%s — %s", leg.From.Short(), leg.To.Short())
	st.Step = i + 1
	st.Percent = float64(i+1) / float64(n) * 100
	return st
}
