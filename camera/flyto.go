package camera

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
	"github.com/npillmayer/globetrip/ease"
)

// DefaultFlight is the duration of a fly-to.
const DefaultFlight = 1500 * time.Millisecond

// Transition is a timed camera move.
type Transition struct {
	From     mgl64.Vec3
	To       mgl64.Vec3
	Start    time.Time
	Duration time.Duration
}

// Progress returns the unshaped progress at time now, within [0,1].
func (tr Transition) Progress(now time.Time) float64 {
	if tr.Duration <= 0 {
		return 1
	}
	return globetrip.Clamp01(float64(now.Sub(tr.Start)) / float64(tr.Duration))
}

// At returns the camera position at time now, shaping progress with curve.
func (tr Transition) At(now time.Time, curve ease.Curve) mgl64.Vec3 {
	p := tr.Progress(now)
	if p >= 1 {
		return tr.To
	}
	return ease.Along(curve, tr.From, tr.To, p)
}

type flight struct {
	Transition
	cancel context.CancelFunc
	done   chan struct{}
}

// FlyTo moves the camera from its live position to target within duration.
// The camera keeps looking at its target point while it moves. A fly-to
// switches auto-rotation off.
//
// An unfinished fly-to is abandoned; the new one starts wherever the camera
// is right now.
func (c *Camera) FlyTo(target mgl64.Vec3, duration time.Duration) Transition {
	c.mu.Lock()
	if c.flight != nil {
		c.flight.cancel()
		tracer().Debugf("fly-to towards %s superseded", globetrip.V(c.flight.To))
	}
	ctx, cancel := context.WithCancel(context.Background())
	f := &flight{
		Transition: Transition{
			From:     c.position,
			To:       target,
			Start:    c.now(),
			Duration: duration,
		},
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.flight = f
	c.autoRotate = false
	manual := c.manual
	c.mu.Unlock()
	tracer().Infof("fly-to %s → %s in %v", globetrip.V(f.From), globetrip.V(f.To), duration)
	if manual {
		close(f.done)
		return f.Transition
	}
	c.advance(f, f.Start)
	go c.fly(ctx, f)
	return f.Transition
}

// Step advances the active transition to time now. It returns true while a
// transition is still in progress.
func (c *Camera) Step(now time.Time) bool {
	c.mu.Lock()
	f := c.flight
	c.mu.Unlock()
	if f == nil {
		return false
	}
	return !c.advance(f, now)
}

// Flying is a predicate: is a fly-to in progress?
func (c *Camera) Flying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flight != nil
}

// Wait blocks until the current fly-to has ended or ctx is done.
func (c *Camera) Wait(ctx context.Context) error {
	c.mu.Lock()
	f := c.flight
	c.mu.Unlock()
	if f == nil || c.manual {
		return nil
	}
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Camera) fly(ctx context.Context, f *flight) {
	defer close(f.done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.advance(f, c.now()) {
				return
			}
		}
	}
}

// advance moves the camera along f. It returns true if f has ended, either
// by completion or because another flight superseded it.
func (c *Camera) advance(f *flight, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.flight != f {
		return true
	}
	c.position = f.At(now, c.curve)
	if f.Progress(now) < 1 {
		return false
	}
	c.flight = nil
	f.cancel()
	tracer().Debugf("fly-to reached %s", globetrip.V(c.position))
	return true
}
