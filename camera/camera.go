// Package camera models the viewer's camera around the globe: automatic
// orbiting, timed fly-to transitions, and pick rays for pointer input.
//
// A fly-to runs on its own goroutine, independent of the render loop's frame
// rate. Camera state is guarded by a mutex, so the render loop may read the
// camera while a transition moves it.
package camera

import (
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
	"github.com/npillmayer/globetrip/ease"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'globetrip.camera'
func tracer() tracing.Trace {
	return tracing.Select("globetrip.camera")
}

// Defaults for a camera looking at a globe of radius 0.5.
const (
	FovY          = 45.0 // degrees
	Near          = 0.1
	Far           = 1500.0
	OrbitDistance = 2.0
	RotationSpeed = 0.001 // radians per frame
	FrameInterval = 16 * time.Millisecond
)

// Camera is a perspective camera aimed at a fixed target.
type Camera struct {
	mu         sync.Mutex
	position   mgl64.Vec3
	target     mgl64.Vec3
	up         mgl64.Vec3
	autoRotate bool
	rotation   float64
	speed      float64
	flight     *flight // active transition, if any
	now        func() time.Time
	interval   time.Duration
	manual     bool // no goroutine, transitions are stepped by the caller
	curve      ease.Curve
}

// Option configures a Camera.
type Option func(*Camera)

// WithClock sets the wall clock transitions are timed with.
func WithClock(now func() time.Time) Option {
	return func(c *Camera) { c.now = now }
}

// WithInterval sets the step interval of fly-to goroutines.
func WithInterval(d time.Duration) Option {
	return func(c *Camera) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithEasing sets the curve shaping transition progress.
func WithEasing(curve ease.Curve) Option {
	return func(c *Camera) { c.curve = curve }
}

// WithPosition sets the initial camera position.
func WithPosition(p mgl64.Vec3) Option {
	return func(c *Camera) { c.position = p }
}

// WithRotationSpeed sets the auto-rotation speed in radians per frame.
func WithRotationSpeed(s float64) Option {
	return func(c *Camera) { c.speed = s }
}

// Manual makes transitions passive: nothing moves the camera until the
// caller invokes Step.
func Manual() Option {
	return func(c *Camera) { c.manual = true }
}

// New creates an auto-rotating camera at (1,1,1), looking at the origin.
func New(opts ...Option) *Camera {
	c := &Camera{
		position:   mgl64.Vec3{1, 1, 1},
		up:         mgl64.Vec3{0, 1, 0},
		autoRotate: true,
		speed:      RotationSpeed,
		now:        time.Now,
		interval:   FrameInterval,
		curve:      ease.OutQuad,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Position returns the live camera position.
func (c *Camera) Position() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// Target returns the point the camera looks at.
func (c *Camera) Target() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Forward returns the normalized viewing direction.
func (c *Camera) Forward() mgl64.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.target.Sub(c.position)
	if globetrip.Is0(d.Len()) {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// View returns the view matrix.
func (c *Camera) View() mgl64.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl64.LookAtV(c.position, c.target, c.up)
}

// Projection returns the perspective projection for a viewport aspect ratio.
func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(FovY), aspect, Near, Far)
}

// AutoRotating is a predicate: does the camera orbit on its own?
func (c *Camera) AutoRotating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoRotate
}

// SetAutoRotation switches automatic orbiting on or off. Switched off, the
// user controls the camera (orbit controls).
func (c *Camera) SetAutoRotation(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoRotate = on
}

// SetRotationSpeed sets the auto-rotation speed in radians per frame.
func (c *Camera) SetRotationSpeed(s float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = s
}

// AutoRotate advances the automatic orbit by one frame: the camera circles
// the target in the equatorial plane at OrbitDistance. It does nothing while
// auto-rotation is off or a fly-to is in progress. Returns true if the camera
// moved.
func (c *Camera) AutoRotate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.autoRotate || c.flight != nil {
		return false
	}
	c.rotation += c.speed
	c.position = mgl64.Vec3{
		OrbitDistance * math.Sin(c.rotation),
		0,
		OrbitDistance * math.Cos(c.rotation),
	}
	return true
}
