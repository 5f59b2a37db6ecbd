package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/globetrip/itinerary"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedTour(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	it, err := loadItinerary("")
	require.NoError(t, err)
	assert.Equal(t, 12, it.N())
	assert.Equal(t, "Seoul", it.Z(0).Short())
	assert.Equal(t, "Sydney", it.Z(11).Short())
	legs, err := it.Legs(0.5)
	require.NoError(t, err)
	assert.Len(t, legs, 11)
}

func TestRunShortJourney(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := filepath.Join(t.TempDir(), "hop.yaml")
	doc := `name: hop
stops:
  - name: Seoul
    lat: 37.5665
    lng: 126.978
  - name: Tokyo
    lat: 35.6762
    lng: 139.6503
    dwell: 100ms
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	assert.NoError(t, run("", path, "fast", 10_000, false, "", ""))
}

func TestRunTooFewWaypoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := filepath.Join(t.TempDir(), "lonely.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: lonely\nstops:\n  - name: Seoul\n    lat: 37.5\n    lng: 127\n"), 0644))
	err := run("", path, "", 10, false, "", "")
	assert.ErrorIs(t, err, itinerary.ErrTooFewWaypoints)
}

func TestRunBadSpeed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Error(t, run("", "", "warp", 10, false, "", ""))
}
