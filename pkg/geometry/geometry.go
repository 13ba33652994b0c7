package geometry

import "math"

const eps = 1e-9

// Cosine returns the cosine of the angle between u and v.
// Neither vector may have zero length.
func Cosine(u, v Vector) float64 {
	return u.Dot(v) / (u.Mag() * v.Mag())
}

// AcuteAngle returns the smaller of the two angles formed by lines along u
// and v, in radians within [0, π/2].
// Parallel vectors yield exactly 0.
func AcuteAngle(u, v Vector) float64 {
	return math.Atan2(math.Abs(u.Cross(v)), math.Abs(u.Dot(v)))
}

// MoveAlong returns the point reached by travelling length units from
// origin in the direction of v. Only the direction of v matters.
func MoveAlong(v, origin Vector, length float64) Vector {
	return origin.Add(v.Normalize().Scale(length))
}

// LegLength returns the leg adjacent to angle in a right triangle whose leg
// opposite to angle is leg. For angle == π/2 the result is 0.
func LegLength(leg, angle float64) float64 {
	if math.Abs(angle-math.Pi/2) < eps {
		return 0
	}
	return leg / math.Tan(angle)
}

// HypotenuseLength returns the hypotenuse of a right triangle whose leg
// opposite to angle is leg.
func HypotenuseLength(leg, angle float64) float64 {
	return leg / math.Sin(angle)
}

// Intersect returns the intersection point of the infinite line through p1
// and p2 with the infinite line through q1 and q2. ok is false when the lines
// are parallel or either pair of points coincides.
func Intersect(p1, p2, q1, q2 Vector) (point Vector, ok bool) {
	r := p2.Sub(p1)
	s := q2.Sub(q1)
	rxs := r.Cross(s)
	if math.Abs(rxs) < eps {
		return Vector{}, false
	}
	t := q1.Sub(p1).Cross(s) / rxs
	return p1.Add(r.Scale(t)), true
}
