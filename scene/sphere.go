package scene

import (
	"math"

	"github.com/achilleasa/raycast/types"
)

type Sphere struct {
	Center   types.Vec3
	Radius   float64
	Material Material

	bbox types.AABB
}

// Create new sphere primitive. Negative radii are clamped to zero.
func NewSphere(center types.Vec3, radius float64, material Material) *Sphere {
	radius = math.Max(0, radius)
	r := types.XYZ(radius, radius, radius)
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
		bbox:     types.NewAABBFromPoints(center.Sub(r), center.Add(r)).PadToMinimums(minBoxThickness),
	}
}

// Solve |O + tD - C|^2 = r^2 and keep the nearest root inside rayT.
// Zero-radius spheres have no surface and are never hit.
func (s *Sphere) Hit(ray types.Ray, rayT types.Interval, rec *HitRecord) bool {
	rec.IntersectionTests++
	if s.Radius <= 0 {
		return false
	}

	oc := s.Center.Sub(ray.Origin)
	a := ray.Direction.LenSq()
	h := ray.Direction.Dot(oc)
	c := oc.LenSq() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)
	root := (h - sqrtD) / a
	if !rayT.Contains(root) {
		root = (h + sqrtD) / a
		if !rayT.Contains(root) {
			return false
		}
	}

	rec.T = root
	rec.Point = ray.At(root)
	rec.Material = s.Material
	rec.Primitive = s

	rec.SetFaceNormal(ray, rec.Point.Sub(s.Center).Div(s.Radius))
	return true
}

func (s *Sphere) BBox() types.AABB {
	return s.bbox
}
