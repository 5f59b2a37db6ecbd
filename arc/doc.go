// Package arc constructs the curved flight paths between two stops on a globe.
/*

An arc is a quadratic Bézier curve in 3D. Its knots are the projections of
two geodetic positions onto the globe's surface; its single control point is
the midpoint of the chord between them, pushed outward from the globe's
center. The push is proportional to the chord length, so short hops stay close
to the surface while intercontinental legs bulge visibly:

   heightFactor = |end - start| ⋅ 0.3
   control      = normalize((start + end) / 2) ⋅ (radius + heightFactor)

Usage

Clients build an arc once per leg and evaluate it continuously while a
vehicle travels along it (package qualifiers omitted for brevity):

   a := Between(L(37.5665, 126.9780), L(35.6762, 139.6503), 0.5)
   p := a.PointAt(0.25)
   t := a.TangentAt(0.25)

Arcs are immutable. Building an arc twice from identical inputs yields an
identical curve.

The String() notation borrows from MetaPost's path syntax:

   (x0,y0,z0) .. controls (cx,cy,cz) .. (x1,y1,z1)


BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package arc

import (
	"fmt"

	"github.com/npillmayer/globetrip"
)

// String returns an arc as a (debugging) string, including its control point.
func (a *Arc) String() string {
	if a == nil {
		return "<nil arc>"
	}
	return fmt.Sprintf("%s .. controls %s .. %s", globetrip.V(a.start),
		globetrip.V(a.control), globetrip.V(a.end))
}
