// Package collision holds the stateless intersection tests shared by the
// combat systems. Nothing here keeps state between calls.
package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/arena/common"
)

// Circle is a position and radius pair.
type Circle struct {
	Center cp.Vector
	Radius float64
}

// Collides reports whether two circles overlap. Touching circles do not.
func Collides(posA cp.Vector, radiusA float64, posB cp.Vector, radiusB float64) bool {
	r := radiusA + radiusB
	if r <= 0 {
		return false
	}
	return posA.DistanceSq(posB) < r*r
}

// CirclesCollide is Collides for Circle values.
func CirclesCollide(a, b Circle) bool {
	return Collides(a.Center, a.Radius, b.Center, b.Radius)
}

// ClosestPointOnSegment projects p onto the ray origin+dir*s and clamps s to
// [0, length]. dir does not need to be normalized; a zero dir collapses the
// segment to origin.
func ClosestPointOnSegment(p, origin, dir cp.Vector, length float64) cp.Vector {
	d := dir.Length()
	if d < 1e-12 || length <= 0 {
		return origin
	}
	unit := dir.Mult(1 / d)
	s := common.Clamp(p.Sub(origin).Dot(unit), 0, length)
	return origin.Add(unit.Mult(s))
}

// SegmentHit reports whether a circle target touches a beam of the given
// half width running from origin along dir for length units.
func SegmentHit(origin, dir cp.Vector, length, halfWidth float64, target cp.Vector, targetRadius float64) bool {
	if length <= 0 {
		return false
	}
	closest := ClosestPointOnSegment(target, origin, dir, length)
	reach := targetRadius + halfWidth
	return target.DistanceSq(closest) < reach*reach
}
