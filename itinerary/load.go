package itinerary

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// document is the YAML layout of an itinerary file:
//
//	name: around the world
//	stops:
//	  - name: Seoul, South Korea
//	    lat: 37.5665
//	    lng: 126.9780
//	    dwell: 5s
//	    info:
//	      title: 서울, 대한민국
type document struct {
	Name  string     `yaml:"name"`
	Stops []Waypoint `yaml:"stops"`
}

// Load reads an itinerary from YAML.
//
// Stops are travelled in document order, unless they carry explicit order
// values; then they are sorted by them. Order values must be unique.
func Load(r io.Reader) (*Itinerary, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode itinerary: %w", err)
	}
	stops, err := arrange(doc.Stops)
	if err != nil {
		return nil, err
	}
	it := &Itinerary{name: doc.Name, stops: stops}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	tracer().Infof("loaded itinerary %q with %d stops", it.name, it.N())
	return it, nil
}

// LoadFile reads an itinerary from a YAML file.
func LoadFile(path string) (*Itinerary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open itinerary: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// arrange puts stops into travel order and numbers them.
func arrange(stops []Waypoint) ([]Waypoint, error) {
	explicit := false
	for _, w := range stops {
		if w.Order != 0 {
			explicit = true
			break
		}
	}
	if !explicit {
		for i := range stops {
			stops[i].Order = i
		}
		return stops, nil
	}
	seen := make(map[int]string, len(stops))
	for _, w := range stops {
		if other, dup := seen[w.Order]; dup {
			return nil, fmt.Errorf("%w: %d used by %q and %q", ErrDuplicateOrder, w.Order, other, w.Name)
		}
		seen[w.Order] = w.Name
	}
	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].Order < stops[j].Order
	})
	return stops, nil
}
