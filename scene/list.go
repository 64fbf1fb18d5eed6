package scene

import "github.com/achilleasa/raycast/types"

// List is a flat primitive container that answers queries by testing every
// primitive. It serves as the reference result for the acceleration
// structures.
type List []Primitive

// Find the closest hit among all list primitives.
func (l List) Hit(ray types.Ray, rayT types.Interval, rec *HitRecord) bool {
	hitAnything := false
	closestSoFar := rayT.Max

	for _, prim := range l {
		if prim.Hit(ray, types.Interval{Min: rayT.Min, Max: closestSoFar}, rec) {
			hitAnything = true
			closestSoFar = rec.T
		}
	}

	return hitAnything
}

// Get the union of all primitive bounding boxes.
func (l List) BBox() types.AABB {
	bbox := types.EmptyAABB
	for _, prim := range l {
		bbox = bbox.Union(prim.BBox())
	}
	return bbox
}
