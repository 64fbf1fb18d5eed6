package types

// A ray is defined by an origin and a direction that does not need to be
// normalized. Points along the ray are evaluated as origin + t * direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// Create a new ray.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Get the point at parameter t.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
