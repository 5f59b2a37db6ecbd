/*
Package globetrip implements the geometry shared by the journey engine:
geodetic coordinates, their projection onto a globe, rays, and a few
numeric helpers.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package globetrip

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'globetrip'
func tracer() tracing.Trace {
	return tracing.Select("globetrip")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Clamp01 restricts n to the unit interval [0,1].
func Clamp01(n float64) float64 {
	return mgl64.Clamp(n, 0, 1)
}

// === Geodetic Coordinates ==================================================

// LatLng is a geodetic position in degrees.
type LatLng struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

// L is a quick notation for constructing a LatLng.
func L(lat, lng float64) LatLng {
	return LatLng{Lat: lat, Lng: lng}
}

// Pretty Stringer for geodetic positions.
func (ll LatLng) String() string {
	return fmt.Sprintf("(%.4f°,%.4f°)", ll.Lat, ll.Lng)
}

// IsValid is a predicate: are both coordinates finite numbers?
// Out-of-range values are valid, they are simply wrapped by trigonometry.
func (ll LatLng) IsValid() bool {
	return !(math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) ||
		math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0))
}

// Project maps ll onto a sphere of the given radius, lifted by height.
func (ll LatLng) Project(radius, height float64) mgl64.Vec3 {
	return Project(ll.Lat, ll.Lng, radius, height)
}

// Project converts latitude and longitude (degrees) into a point on (or above)
// a sphere centered at the origin. Y points to the north pole.
//
// Longitude is offset by 180°: the globe's texture seam sits on the reference
// meridian, and markers must line up with the sphere's UV mapping.
// Coordinates are not clamped.
func Project(lat, lng, radius, height float64) mgl64.Vec3 {
	phi := lat * math.Pi / 180
	theta := (lng - 180) * math.Pi / 180
	r := radius + height
	x := -r * math.Cos(phi) * math.Cos(theta)
	y := r * math.Sin(phi)
	z := r * math.Cos(phi) * math.Sin(theta)
	return mgl64.Vec3{x, y, z}
}

// === Rays ==================================================================

// Ray is a half-line in world space. Dir is expected to be normalized.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// NewRay creates a ray from origin through a second point.
// Returns false if both points coincide.
func NewRay(origin, through mgl64.Vec3) (Ray, bool) {
	d := through.Sub(origin)
	if Is0(d.Len()) {
		tracer().Errorf("cannot create ray through its own origin %s", V(origin))
		return Ray{Origin: origin}, false
	}
	return Ray{Origin: origin, Dir: d.Normalize()}, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IntersectSphere returns the smallest non-negative distance at which r enters
// a sphere, if it does.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq // origin inside the sphere
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// === Formatting ============================================================

// V formats a vector for tracing, rounded to 4 decimals.
func V(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.4f,%.4f,%.4f)", Round4(v[0]), Round4(v[1]), Round4(v[2]))
}

// Round4 rounds x to 4 decimals.
func Round4(x float64) float64 {
	if x >= 0 {
		return float64(int64(x*10000.0+0.5)) / 10000.0
	}
	return float64(int64(x*10000.0-0.5)) / 10000.0
}
