package scene

import "github.com/achilleasa/raycast/types"

// Leaf primitives pad flat bounding boxes to at least this thickness so that
// the strict slab test still reports hits for axis-aligned surfaces.
const minBoxThickness = 1e-4

// A Material is attached to each primitive and handed back through the hit
// record. Its contents are never inspected while resolving ray queries.
type Material interface{}

// The Primitive interface is implemented by leaf shapes (spheres, triangles)
// as well as by acceleration structures and scene containers, which allows
// them to be nested.
type Primitive interface {
	// Test the ray against the primitive for t values inside rayT. On a hit
	// the record is overwritten and true is returned; on a miss the record
	// is left untouched except for its counters.
	Hit(ray types.Ray, rayT types.Interval, rec *HitRecord) bool

	// Get the primitive bounding box. Containers with no content return
	// types.EmptyAABB.
	BBox() types.AABB
}

// HitRecord describes the closest intersection found so far.
type HitRecord struct {
	// Intersection point and the unit normal facing against the ray.
	Point  types.Vec3
	Normal types.Vec3

	// The ray parameter at the intersection.
	T float64

	// True if the ray hit the side the outward normal points to.
	FrontFace bool

	// The material of the hit primitive.
	Material Material

	// The leaf primitive that produced the hit.
	Primitive Primitive

	// Number of leaf primitive tests and visited structure nodes (BVH
	// nodes, kd-tree leaves or grid voxels) spent on the query.
	IntersectionTests int
	TraversalSteps    int
}

// Orient the normal so it points against the incoming ray and record which
// side was hit.
func (rec *HitRecord) SetFaceNormal(ray types.Ray, outwardNormal types.Vec3) {
	rec.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if rec.FrontFace {
		rec.Normal = outwardNormal
	} else {
		rec.Normal = outwardNormal.Neg()
	}
}
