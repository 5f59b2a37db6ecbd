package journey

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/npillmayer/globetrip"
	"github.com/npillmayer/globetrip/arc"
)

// Forward is the vehicle model's nose direction in model space.
var Forward = mgl64.Vec3{0, 0, 1}

// Roll returns the cosmetic banking angle (radians) at a wall-clock time.
// It oscillates by ±0.1 rad with a period of 2π seconds.
func Roll(now time.Time) float64 {
	return math.Sin(float64(now.UnixMilli())*0.001) * 0.1
}

// Vehicle is the transform of the travelling vehicle.
type Vehicle struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Visible     bool
}

// NewVehicle creates a hidden vehicle at the origin.
func NewVehicle() *Vehicle {
	return &Vehicle{Orientation: mgl64.QuatIdent()}
}

// Update places the vehicle on arc a at the given progress and turns its nose
// along the direction of travel. The orientation is the minimal rotation
// from Forward onto the arc's tangent, rolled about the nose by Roll(now).
func (v *Vehicle) Update(a *arc.Arc, progress float64, now time.Time) {
	v.Position = a.PointAt(progress)
	v.Visible = true
	tangent := a.TangentAt(progress)
	if globetrip.Is0(tangent.Len()) {
		return // keep previous heading
	}
	align := mgl64.QuatBetweenVectors(Forward, tangent)
	roll := mgl64.QuatRotate(Roll(now), Forward)
	v.Orientation = align.Mul(roll).Normalize()
}

// Hide makes the vehicle invisible, keeping its transform.
func (v *Vehicle) Hide() {
	v.Visible = false
}

// Heading returns the world-space direction of the vehicle's nose.
func (v *Vehicle) Heading() mgl64.Vec3 {
	return v.Orientation.Rotate(Forward)
}
