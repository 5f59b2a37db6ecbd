package scene

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/npillmayer/globetrip"
	"github.com/npillmayer/globetrip/camera"
	"github.com/npillmayer/globetrip/config"
	"github.com/npillmayer/globetrip/itinerary"
	"github.com/npillmayer/globetrip/journey"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type display struct {
	shown   []string
	cleared int
}

func (d *display) OnArrive(w itinerary.Waypoint) { d.shown = append(d.shown, w.Short()) }
func (d *display) OnClear()                      { d.cleared++ }

func settings(t *testing.T) config.Settings {
	s, err := config.Default()
	require.NoError(t, err)
	s.Journey.Speed = "fast"
	s.Journey.Dwell = 100 * time.Millisecond
	return s
}

func asia() *itinerary.Itinerary {
	return itinerary.New("asia").
		Stop("Seoul, South Korea", 37.5665, 126.978).
		WithInfo("tips", "get a T-money card").
		Stop("Tokyo, Japan", 35.6762, 139.6503).
		Stop("Bangkok, Thailand", 13.7563, 100.5018).
		End()
}

func newScene(t *testing.T, d *display) *Scene {
	sc, err := New(settings(t), asia(),
		WithCamera(camera.New(camera.Manual())),
		WithRand(rand.New(rand.NewPCG(3, 4))),
		WithObserver(d))
	require.NoError(t, err)
	return sc
}

func TestTooFewWaypoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	it := itinerary.New("lonely").Stop("Seoul", 37.5665, 126.978).End()
	_, err := New(settings(t), it)
	assert.ErrorIs(t, err, itinerary.ErrTooFewWaypoints)
}

func TestInvalidSpeed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := settings(t)
	s.Journey.Speed = "warp"
	_, err := New(s, asia())
	assert.ErrorIs(t, err, journey.ErrInvalidSpeed)
}

func TestSceneSetup(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := newScene(t, &display{})
	assert.Len(t, sc.Markers(), 3)
	assert.Len(t, sc.Machine().Legs(), 2)
	assert.Equal(t, journey.Idle, sc.State().Phase)
	assert.Equal(t, journey.Fast.Step(), sc.State().Speed)
	assert.True(t, sc.Camera().AutoRotating())
}

func TestFrameWhileIdle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := newScene(t, &display{})
	phase := sc.Markers()[0].Phase
	pos := sc.Camera().Position()
	for i := 0; i < 10; i++ {
		sc.Advance()
	}
	assert.Equal(t, 10, sc.Frames())
	assert.InDelta(t, 10*SurfaceSpin, sc.Globe().Surface, 1e-12)
	assert.InDelta(t, 10*AtmosphereSpin, sc.Globe().Atmosphere, 1e-12)
	assert.InDelta(t, phase+0.5, sc.Markers()[0].Phase, 1e-9)
	assert.NotEqual(t, pos, sc.Camera().Position(), "camera should orbit")
	assert.Equal(t, journey.Idle, sc.State().Phase)
	assert.Equal(t, 0, sc.Machine().Trail().Len())
}

func TestJourneyThroughScene(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	d := &display{}
	sc := newScene(t, d)
	sc.Play()
	frames := 0
	for sc.State().Phase == journey.Traveling && frames < 1000 {
		sc.Advance()
		frames++
		require.LessOrEqual(t, sc.Machine().Trail().Len(), 20)
	}
	require.Equal(t, journey.ArrivedPaused, sc.State().Phase)
	assert.InDelta(t, 250, frames, 1, "fast speed needs about 250 ticks per leg")
	assert.Equal(t, []string{"Tokyo"}, d.shown)
	assert.True(t, sc.Camera().Flying(), "arrival should fly the camera")
	assert.False(t, sc.Camera().AutoRotating())
	w, ok := sc.Current()
	require.True(t, ok)
	assert.Equal(t, "Tokyo", w.Short())
	assert.Contains(t, sc.ChatPrompt(), "currently viewing: Tokyo, Japan")

	for sc.State().Phase != journey.Finished && frames < 2000 {
		sc.Advance()
		frames++
	}
	require.Equal(t, journey.Finished, sc.State().Phase)
	assert.Equal(t, []string{"Tokyo", "Bangkok"}, d.shown)
	assert.Equal(t, "Tokyo — Bangkok  2 / 3  (100%)", sc.Stats().String())

	sc.Reset()
	assert.Equal(t, journey.Idle, sc.State().Phase)
	assert.Equal(t, 1, d.cleared)
	assert.Equal(t, 0, sc.Machine().Trail().Len())
}

func TestPauseThroughScene(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := newScene(t, &display{})
	sc.Play()
	for i := 0; i < 10; i++ {
		sc.Advance()
	}
	sc.Toggle()
	st := sc.State()
	for i := 0; i < 10; i++ {
		sc.Advance()
	}
	assert.Equal(t, st, sc.State())
	sc.Toggle()
	sc.Advance()
	assert.Greater(t, sc.State().Progress, st.Progress)
	require.NoError(t, sc.SetSpeed(journey.Slow))
	assert.Equal(t, journey.Slow.Step(), sc.State().Speed)
}

func TestClickMarker(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	d := &display{}
	sc := newScene(t, d)
	seoul := sc.Markers()[0].Position
	ray, ok := globetrip.NewRay(seoul.Mul(5), seoul)
	require.True(t, ok)
	require.True(t, sc.Click(ray))
	assert.Equal(t, []string{"Seoul"}, d.shown)
	assert.True(t, sc.Camera().Flying())
	assert.Equal(t, journey.Idle, sc.State().Phase, "clicks do not move the journey")
	assert.Contains(t, sc.ChatPrompt(), "Tips: get a T-money card")

	miss, _ := globetrip.NewRay(seoul.Mul(5), seoul.Mul(5).Add(seoul))
	assert.False(t, sc.Click(miss))
	assert.Len(t, d.shown, 1)
}

func TestClickAt(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sc := newScene(t, &display{})
	hit, err := sc.ClickAt(0, 0, 800, 600)
	require.NoError(t, err)
	assert.False(t, hit)
	_, err = sc.ClickAt(0, 0, 0, 0)
	assert.ErrorIs(t, err, camera.ErrViewport)
}

func TestIndependentScenes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := newScene(t, &display{})
	b := newScene(t, &display{})
	a.Play()
	a.Advance()
	assert.Equal(t, journey.Traveling, a.State().Phase)
	assert.Equal(t, journey.Idle, b.State().Phase)
}
