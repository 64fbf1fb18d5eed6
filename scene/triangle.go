package scene

import (
	"math"

	"github.com/achilleasa/raycast/types"
)

// Rays whose direction is this close to lying in the triangle plane are
// treated as parallel.
const parallelEpsilon = 1e-8

// A triangle stored as a corner point Q and the two edge vectors u and v
// spanning it. Plane data is precomputed at construction time.
type Triangle struct {
	Q, U, V  types.Vec3
	Material Material

	// Unit plane normal, plane constant (normal . Q) and n / (n . n) which
	// is used to project hit points onto the edge basis.
	normal types.Vec3
	d      float64
	w      types.Vec3

	degenerate bool
	bbox       types.AABB
}

// Create new triangle primitive from a corner point and two edge vectors.
func NewTriangle(q, u, v types.Vec3, material Material) *Triangle {
	tri := &Triangle{
		Q:        q,
		U:        u,
		V:        v,
		Material: material,
	}

	n := u.Cross(v)
	nn := n.Dot(n)
	if nn == 0 {
		// Zero area; keep a valid box but never report hits.
		tri.degenerate = true
	} else {
		tri.normal = n.Div(math.Sqrt(nn))
		tri.d = tri.normal.Dot(q)
		tri.w = n.Div(nn)
	}

	p1 := q.Add(u)
	p2 := q.Add(v)
	tri.bbox = types.NewAABBFromPoints(
		types.MinVec3(q, types.MinVec3(p1, p2)),
		types.MaxVec3(q, types.MaxVec3(p1, p2)),
	).PadToMinimums(minBoxThickness)

	return tri
}

// Create new triangle primitive from its three vertices.
func NewTriangleFromVertices(v0, v1, v2 types.Vec3, material Material) *Triangle {
	return NewTriangle(v0, v1.Sub(v0), v2.Sub(v0), material)
}

// Get the triangle vertices.
func (tri *Triangle) Vertices() [3]types.Vec3 {
	return [3]types.Vec3{tri.Q, tri.Q.Add(tri.U), tri.Q.Add(tri.V)}
}

// Get the unit plane normal. Degenerate triangles return the zero vector.
func (tri *Triangle) Normal() types.Vec3 {
	return tri.normal
}

// Returns true if the triangle has zero area.
func (tri *Triangle) Degenerate() bool {
	return tri.degenerate
}

// Intersect the triangle plane and accept the point if its edge-basis
// coordinates (a, b) satisfy a >= 0, b >= 0 and a + b <= 1. Points on the
// edges count as inside.
func (tri *Triangle) Hit(ray types.Ray, rayT types.Interval, rec *HitRecord) bool {
	rec.IntersectionTests++
	if tri.degenerate {
		return false
	}

	denom := tri.normal.Dot(ray.Direction)
	if math.Abs(denom) < parallelEpsilon {
		return false
	}

	t := (tri.d - tri.normal.Dot(ray.Origin)) / denom
	if !rayT.Contains(t) {
		return false
	}

	point := ray.At(t)
	planar := point.Sub(tri.Q)
	a := tri.w.Dot(planar.Cross(tri.V))
	b := tri.w.Dot(tri.U.Cross(planar))
	if a < 0 || b < 0 || a+b > 1 {
		return false
	}

	rec.T = t
	rec.Point = point
	rec.Material = tri.Material
	rec.Primitive = tri
	rec.SetFaceNormal(ray, tri.normal)
	return true
}

func (tri *Triangle) BBox() types.AABB {
	return tri.bbox
}
