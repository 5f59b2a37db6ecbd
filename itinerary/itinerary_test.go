package itinerary

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func worldTour() *Itinerary {
	return New("world tour").
		Stop("Seoul, South Korea", 37.5665, 126.9780).
		Stop("Tokyo, Japan", 35.6762, 139.6503).
		Stop("Bangkok, Thailand", 13.7563, 100.5018).
		Stop("Dubai, UAE", 25.2048, 55.2708).
		Stop("Paris, France", 48.8566, 2.3522).
		Stop("Rome, Italy", 41.9028, 12.4964).
		Stop("Barcelona, Spain", 41.3851, 2.1734).
		Stop("London, UK", 51.5074, -0.1278).
		Stop("New York, USA", 40.7128, -74.0060).
		Stop("San Francisco, USA", 37.7749, -122.4194).
		Stop("Los Angeles, USA", 34.0522, -118.2437).
		Stop("Sydney, Australia", -33.8688, 151.2093).
		End()
}

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	it := New("x").Stop("A", 1, 2).DwellStop("B", 3, 4, 2*time.Second).WithInfo("title", "Bee").End()
	if it.N() != 2 {
		t.Fail()
	}
	assert.Equal(t, 1, it.Z(1).Order)
	assert.Equal(t, 2*time.Second, it.Z(1).Dwell)
	assert.Equal(t, "Bee", it.Z(1).Info["title"])
	assert.Panics(t, func() { New("empty").WithInfo("k", "v") })
	assert.Panics(t, func() { New("neg").DwellStop("A", 0, 0, -time.Second) })
}

func TestTwelveStopsMakeElevenLegs(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	it := worldTour()
	legs, err := it.Legs(0.5)
	require.NoError(t, err)
	require.Len(t, legs, 11)
	for i, leg := range legs {
		assert.Equal(t, i, leg.Index)
		assert.Equal(t, it.Z(i).Name, leg.From.Name)
		assert.Equal(t, it.Z(i+1).Name, leg.To.Name)
		assert.True(t, leg.Arc.PointAt(0).ApproxEqual(it.Z(i).Project(0.5, 0)))
	}
	assert.Equal(t, "#0 Seoul — Tokyo", legs[0].String())
}

func TestTooFewWaypoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, it := range []*Itinerary{New("none").End(), New("one").Stop("A", 0, 0).End()} {
		legs, err := it.Legs(0.5)
		assert.Nil(t, legs)
		assert.True(t, errors.Is(err, ErrTooFewWaypoints), "got %v", err)
	}
}

func TestInvalidWaypoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	it := New("nan").Stop("A", 0, 0).Stop("B", math.NaN(), 0).End()
	_, err := it.Legs(0.5)
	assert.ErrorIs(t, err, ErrInvalidWaypoint)
	// out of range is fine
	_, err = New("odd").Stop("A", 95, 0).Stop("B", 0, 270).End().Legs(0.5)
	assert.NoError(t, err)
}

func TestShortName(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, "San Francisco", Waypoint{Name: "San Francisco, USA"}.Short())
	assert.Equal(t, "Nowhere", Waypoint{Name: "Nowhere"}.Short())
}

const tourYAML = `
name: short tour
stops:
  - name: Seoul, South Korea
    lat: 37.5665
    lng: 126.9780
    info:
      title: 서울, 대한민국
      foods: [비빔밥, 삼겹살]
  - name: Tokyo, Japan
    lat: 35.6762
    lng: 139.6503
    dwell: 7s
  - name: Bangkok, Thailand
    lat: 13.7563
    lng: 100.5018
`

func TestLoadYAML(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	it, err := Load(strings.NewReader(tourYAML))
	require.NoError(t, err)
	assert.Equal(t, "short tour", it.Name())
	require.Equal(t, 3, it.N())
	assert.InDelta(t, 35.6762, it.Z(1).Lat, 1e-12)
	assert.Equal(t, 7*time.Second, it.Z(1).Dwell)
	assert.Equal(t, time.Duration(0), it.Z(0).Dwell)
	assert.Equal(t, "서울, 대한민국", it.Z(0).Info["title"])
	assert.Equal(t, 2, it.Z(2).Order)
}

func TestLoadExplicitOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := `
stops:
  - {name: C, lat: 3, lng: 3, order: 3}
  - {name: A, lat: 1, lng: 1, order: 1}
  - {name: B, lat: 2, lng: 2, order: 2}
`
	it, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "A", it.Z(0).Name)
	assert.Equal(t, "B", it.Z(1).Name)
	assert.Equal(t, "C", it.Z(2).Name)
	dup := `
stops:
  - {name: A, lat: 1, lng: 1, order: 1}
  - {name: B, lat: 2, lng: 2, order: 1}
`
	_, err = Load(strings.NewReader(dup))
	assert.ErrorIs(t, err, ErrDuplicateOrder)
}

func TestLoadErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Load(strings.NewReader("stops:\n  - {name: A, lat: 1, lng: 1}\n"))
	assert.ErrorIs(t, err, ErrTooFewWaypoints)
	_, err = Load(strings.NewReader("stops: [[[\n"))
	assert.Error(t, err)
	_, err = LoadFile("/nonexistent/itinerary.yaml")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tourYAML), 0644))
	it, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, it.N())
}
