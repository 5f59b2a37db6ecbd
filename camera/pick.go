package camera

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
)

// ErrViewport is returned for pointer positions outside a usable viewport.
var ErrViewport = errors.New("invalid viewport")

// PickRay returns the world-space ray through pointer position (x,y) of a
// viewport of size w×h. Pointer coordinates have their origin at the top
// left corner, as with browser and window-system events.
func (c *Camera) PickRay(x, y float64, w, h int) (globetrip.Ray, error) {
	if w <= 0 || h <= 0 {
		return globetrip.Ray{}, fmt.Errorf("%w: %d×%d", ErrViewport, w, h)
	}
	view := c.View()
	proj := c.Projection(float64(w) / float64(h))
	winY := float64(h) - y
	near, err := mgl64.UnProject(mgl64.Vec3{x, winY, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return globetrip.Ray{}, fmt.Errorf("%w: %v", ErrViewport, err)
	}
	far, err := mgl64.UnProject(mgl64.Vec3{x, winY, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return globetrip.Ray{}, fmt.Errorf("%w: %v", ErrViewport, err)
	}
	ray, ok := globetrip.NewRay(near, far)
	if !ok {
		return globetrip.Ray{}, fmt.Errorf("%w: degenerate ray at (%g,%g)", ErrViewport, x, y)
	}
	tracer().Debugf("pick (%g,%g) → ray from %s along %s", x, y, globetrip.V(ray.Origin), globetrip.V(ray.Dir))
	return ray, nil
}

// ViewFor returns the camera position for looking at a location on a globe
// of the given radius from height above its surface.
func ViewFor(ll globetrip.LatLng, radius, height float64) mgl64.Vec3 {
	return ll.Project(radius, height)
}
