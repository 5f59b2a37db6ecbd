package marker

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
	"github.com/npillmayer/globetrip/itinerary"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stops() []itinerary.Waypoint {
	return itinerary.New("asia").
		Stop("Seoul, South Korea", 37.5665, 126.978).
		Stop("Tokyo, Japan", 35.6762, 139.6503).
		Stop("Bangkok, Thailand", 13.7563, 100.5018).
		End().Waypoints()
}

func TestPlace(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	markers := Place(stops(), 0.5, Height, rand.New(rand.NewPCG(1, 2)))
	require.Len(t, markers, 3)
	for _, m := range markers {
		assert.InDelta(t, 0.51, m.Position.Len(), 1e-12)
		assert.GreaterOrEqual(t, m.Phase, 0.0)
		assert.Less(t, m.Phase, 2*math.Pi)
	}
	assert.Equal(t, "Tokyo", markers[1].Waypoint.Short())
	assert.NotEqual(t, markers[0].Phase, markers[1].Phase, "markers should not pulse in unison")
}

func TestPulse(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := New(stops()[0], 0.5, Height, 0)
	assert.Equal(t, 1.0, m.Scale)
	Pulse([]*Marker{m})
	assert.InDelta(t, 0.05, m.Phase, 1e-12)
	assert.InDelta(t, 1+0.3*math.Sin(0.05), m.Scale, 1e-12)
	assert.InDelta(t, 0.02, m.Ring, 1e-12)
	for i := 0; i < 1000; i++ {
		Pulse([]*Marker{m})
		require.True(t, m.Scale >= 0.7-globetrip.Epsilon && m.Scale <= 1.3+globetrip.Epsilon)
	}
}

func TestHitTest(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	markers := Place(stops(), 0.5, Height, nil)
	tokyo := markers[1].Position
	ray, ok := globetrip.NewRay(tokyo.Mul(4), tokyo)
	require.True(t, ok)
	w, hit := HitTest(ray, markers, HitRadius)
	require.True(t, hit)
	assert.Equal(t, "Tokyo", w.Short())
	// slightly off, but still within the hit sphere
	ray, _ = globetrip.NewRay(tokyo.Mul(4), tokyo.Add(mgl64.Vec3{0, 0.02, 0}))
	w, hit = HitTest(ray, markers, HitRadius)
	require.True(t, hit)
	assert.Equal(t, "Tokyo", w.Short())
}

func TestHitTestMiss(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	markers := Place(stops(), 0.5, Height, nil)
	ray, _ := globetrip.NewRay(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 5, 5})
	_, hit := HitTest(ray, markers, HitRadius)
	assert.False(t, hit)
	_, hit = HitTest(ray, nil, HitRadius)
	assert.False(t, hit)
}

func TestHitTestNearest(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := itinerary.Waypoint{Name: "Near", LatLng: globetrip.L(0, 0)}
	b := itinerary.Waypoint{Name: "Far", LatLng: globetrip.L(0, 0)}
	near := New(a, 0.5, 0.2, 0)
	far := New(b, 0.5, 0, 0)
	origin := near.Position.Mul(3)
	ray, _ := globetrip.NewRay(origin, mgl64.Vec3{})
	w, hit := HitTest(ray, []*Marker{far, near}, HitRadius)
	require.True(t, hit)
	assert.Equal(t, "Near", w.Name)
}
