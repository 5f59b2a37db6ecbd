package ease

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
)

// Curve shapes normalized progress. Implementations map 0 to 0 and 1 to 1.
type Curve interface {
	Ease(x float64) float64
}

// CurveFunc adapts a plain function to the Curve interface.
type CurveFunc func(float64) float64

// Ease calls f with x clamped to [0,1].
func (f CurveFunc) Ease(x float64) float64 {
	return f(globetrip.Clamp01(x))
}

var (
	// Linear is the identity curve t.
	Linear = Must(New(0, X{1, 1}))
	// InQuad starts slow: t².
	InQuad = Must(New(0, X{2, 1}))
	// OutQuad decelerates towards the end: t(2-t) = 2t - t².
	OutQuad = Must(New(0, X{1, 2}, X{2, -1}))
)

// Lerp interpolates linearly between a and b, with p clamped to [0,1].
func Lerp(a, b mgl64.Vec3, p float64) mgl64.Vec3 {
	p = globetrip.Clamp01(p)
	return a.Add(b.Sub(a).Mul(p))
}

// Along interpolates between a and b, shaping progress p with curve c.
func Along(c Curve, a, b mgl64.Vec3, p float64) mgl64.Vec3 {
	if c == nil {
		tracer().Debugf("no easing curve given, interpolating linearly")
		c = Linear
	}
	return Lerp(a, b, c.Ease(p))
}
