package journey

import (
	"fmt"
	"time"

	"github.com/npillmayer/globetrip/itinerary"
)

// Observer is an info display following the journey.
type Observer interface {
	OnArrive(itinerary.Waypoint) // a destination has been reached or selected
	OnClear()                    // the journey has been reset
}

// Director steers the camera towards a waypoint.
type Director interface {
	FlyTo(itinerary.Waypoint)
}

// DirectorFunc adapts a plain function to the Director interface.
type DirectorFunc func(itinerary.Waypoint)

// FlyTo calls f(w).
func (f DirectorFunc) FlyTo(w itinerary.Waypoint) {
	f(w)
}

// Machine is the journey state machine. It is the single owner of the
// journey's State.
type Machine struct {
	legs      []itinerary.Leg
	state     State
	dwell     time.Duration
	observers []Observer
	director  Director
	vehicle   *Vehicle
	trail     *Trail
	now       func() time.Time
	current   *itinerary.Waypoint // waypoint on display, if any
}

// Option configures a Machine.
type Option func(*Machine)

// WithDwell sets the pause for destinations without their own dwell time.
func WithDwell(d time.Duration) Option {
	return func(m *Machine) { m.dwell = d }
}

// WithDirector sets the camera collaborator.
func WithDirector(d Director) Option {
	return func(m *Machine) { m.director = d }
}

// WithTrail sets the trail fed while travelling.
func WithTrail(t *Trail) Option {
	return func(m *Machine) { m.trail = t }
}

// WithVehicle sets the vehicle posed while travelling.
func WithVehicle(v *Vehicle) Option {
	return func(m *Machine) { m.vehicle = v }
}

// WithClock sets the wall clock used for cosmetic animation.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithStep sets the initial progress per tick.
func WithStep(step float64) Option {
	return func(m *Machine) {
		if step > 0 {
			m.state.Speed = step
		}
	}
}

// NewMachine creates an idle journey over legs.
func NewMachine(legs []itinerary.Leg, opts ...Option) *Machine {
	m := &Machine{
		legs:  legs,
		dwell: DefaultDwell,
		now:   time.Now,
		state: State{Phase: Idle, Speed: Normal.Step()},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.vehicle == nil {
		m.vehicle = NewVehicle()
	}
	if m.trail == nil {
		m.trail = NewTrail()
	}
	return m
}

// Subscribe adds an observer. Observers are notified in subscription order.
func (m *Machine) Subscribe(o Observer) {
	m.observers = append(m.observers, o)
}

// State returns a snapshot of the journey state.
func (m *Machine) State() State {
	return m.state
}

// Legs returns the legs of the journey.
func (m *Machine) Legs() []itinerary.Leg {
	return m.legs
}

// Vehicle returns the vehicle driven by the journey.
func (m *Machine) Vehicle() *Vehicle {
	return m.vehicle
}

// Trail returns the trail fed by the journey.
func (m *Machine) Trail() *Trail {
	return m.trail
}

// Current returns the waypoint currently on display, if any.
func (m *Machine) Current() (itinerary.Waypoint, bool) {
	if m.current == nil {
		return itinerary.Waypoint{}, false
	}
	return *m.current, true
}

// ActiveLeg returns the leg being travelled or dwelt at.
func (m *Machine) ActiveLeg() (itinerary.Leg, bool) {
	if m.state.Leg < 0 || m.state.Leg >= len(m.legs) {
		return itinerary.Leg{}, false
	}
	return m.legs[m.state.Leg], true
}

// --- Commands --------------------------------------------------------------

// Play starts or resumes the journey. An idle or finished journey starts over
// at the first leg. Without legs, Play does nothing.
func (m *Machine) Play() {
	if len(m.legs) == 0 {
		tracer().Infof("play requested for empty journey, ignoring")
		return
	}
	switch m.state.Phase {
	case Finished:
		m.trail.Clear()
		fallthrough
	case Idle:
		m.state.Leg = 0
		m.state.Progress = 0
		m.state.PauseElapsed = 0
		m.transition(Traveling)
	}
	m.state.PlayRequested = true
}

// Pause freezes the journey without losing its position.
func (m *Machine) Pause() {
	m.state.PlayRequested = false
}

// Resume continues a paused journey. It is Play for idle journeys.
func (m *Machine) Resume() {
	m.Play()
}

// Toggle switches between Play and Pause, like the settings panel's button.
func (m *Machine) Toggle() {
	if m.state.PlayRequested {
		m.Pause()
	} else {
		m.Play()
	}
}

// Reset returns to the idle state at the first leg, clears the trail, hides
// the vehicle and asks observers to clear. Resetting twice equals resetting
// once.
func (m *Machine) Reset() {
	m.state.Leg = 0
	m.state.Progress = 0
	m.state.PauseElapsed = 0
	m.state.PlayRequested = false
	m.transition(Idle)
	m.trail.Clear()
	m.vehicle.Hide()
	m.current = nil
	for _, o := range m.observers {
		o.OnClear()
	}
}

// SetSpeed selects a speed preset. It takes effect with the next tick.
func (m *Machine) SetSpeed(s Speed) error {
	step := s.Step()
	if step <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSpeed, s)
	}
	m.state.Speed = step
	return nil
}

// SetStep sets the progress per tick directly. It takes effect with the next
// tick.
func (m *Machine) SetStep(step float64) error {
	if !(step > 0) {
		return fmt.Errorf("%w: %g", ErrInvalidSpeed, step)
	}
	m.state.Speed = step
	return nil
}

// Announce presents a waypoint out of band, e.g. after a click on its
// marker: observers and director are notified, the journey state is left
// untouched.
func (m *Machine) Announce(w itinerary.Waypoint) {
	m.current = &w
	for _, o := range m.observers {
		o.OnArrive(w)
	}
	if m.director != nil {
		m.director.FlyTo(w)
	}
}

// --- Ticks -----------------------------------------------------------------

// Tick advances the journey by one frame of duration dt. While play is not
// requested nothing happens, dwell timers included.
func (m *Machine) Tick(dt time.Duration) {
	if !m.state.PlayRequested {
		return
	}
	switch m.state.Phase {
	case Traveling:
		m.travel()
	case ArrivedPaused:
		m.rest(dt)
	}
}

func (m *Machine) travel() {
	leg := m.legs[m.state.Leg]
	m.state.Progress += m.state.Speed
	if m.state.Progress >= 1 {
		m.arrive(leg)
		return
	}
	m.vehicle.Update(leg.Arc, m.state.Progress, m.now())
	m.trail.Emit(m.vehicle.Position)
}

func (m *Machine) arrive(leg itinerary.Leg) {
	m.state.Progress = 1
	m.state.PauseElapsed = 0
	m.vehicle.Hide()
	m.transition(ArrivedPaused)
	tracer().Infof("arrived at %s", leg.To)
	m.Announce(leg.To)
}

func (m *Machine) rest(dt time.Duration) {
	m.state.PauseElapsed += dt
	if m.state.PauseElapsed < m.dwellAt(m.legs[m.state.Leg].To) {
		return
	}
	m.state.PauseElapsed = 0
	m.state.Progress = 0
	m.state.Leg++
	if m.state.Leg >= len(m.legs) {
		m.state.PlayRequested = false
		m.vehicle.Hide()
		m.transition(Finished)
		return
	}
	m.transition(Traveling)
}

func (m *Machine) dwellAt(w itinerary.Waypoint) time.Duration {
	if w.Dwell > 0 {
		return w.Dwell
	}
	return m.dwell
}

func (m *Machine) transition(to Phase) {
	if m.state.Phase != to {
		tracer().Debugf("journey %s → %s at leg %d", m.state.Phase, to, m.state.Leg)
	}
	m.state.Phase = to
}
