package types

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// AABB is an axis-aligned bounding box defined as the product of three
// intervals, one per axis.
type AABB struct {
	X, Y, Z Interval
}

// A box that contains nothing and is never hit.
var EmptyAABB = AABB{X: EmptyInterval, Y: EmptyInterval, Z: EmptyInterval}

// Create a box from three axis intervals.
func NewAABB(x, y, z Interval) AABB {
	return AABB{X: x, Y: y, Z: z}
}

// Create a box with a and b as opposite corners. The points do not need to
// be ordered.
func NewAABBFromPoints(a, b Vec3) AABB {
	min := MinVec3(a, b)
	max := MaxVec3(a, b)
	return AABB{
		X: Interval{min[0], max[0]},
		Y: Interval{min[1], max[1]},
		Z: Interval{min[2], max[2]},
	}
}

// Get the interval for the given axis.
func (b AABB) Axis(axis Axis) Interval {
	switch axis {
	case YAxis:
		return b.Y
	case ZAxis:
		return b.Z
	}
	return b.X
}

// Return a copy of the box with the interval for axis replaced.
func (b AABB) WithAxis(axis Axis, in Interval) AABB {
	switch axis {
	case XAxis:
		b.X = in
	case YAxis:
		b.Y = in
	case ZAxis:
		b.Z = in
	}
	return b
}

// Get the min corner.
func (b AABB) Min() Vec3 {
	return Vec3{b.X.Min, b.Y.Min, b.Z.Min}
}

// Get the max corner.
func (b AABB) Max() Vec3 {
	return Vec3{b.X.Max, b.Y.Max, b.Z.Max}
}

// Get the box extents along each axis.
func (b AABB) Size() Vec3 {
	return Vec3{b.X.Size(), b.Y.Size(), b.Z.Size()}
}

// Get the box center.
func (b AABB) Center() Vec3 {
	return Vec3{b.X.Mid(), b.Y.Mid(), b.Z.Mid()}
}

// Returns true if any of the axis intervals is empty.
func (b AABB) IsEmpty() bool {
	return b.X.IsEmpty() || b.Y.IsEmpty() || b.Z.IsEmpty()
}

// Get the smallest box enclosing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		X: b.X.Union(other.X),
		Y: b.Y.Union(other.Y),
		Z: b.Z.Union(other.Z),
	}
}

// Returns true if the boxes overlap on all three axes. Boxes that only
// touch along a face are considered overlapping.
func (b AABB) Overlaps(other AABB) bool {
	return b.X.Overlaps(other.X) && b.Y.Overlaps(other.Y) && b.Z.Overlaps(other.Z)
}

// Returns true if other lies entirely inside this box.
func (b AABB) Encloses(other AABB) bool {
	return b.X.Min <= other.X.Min && other.X.Max <= b.X.Max &&
		b.Y.Min <= other.Y.Min && other.Y.Max <= b.Y.Max &&
		b.Z.Min <= other.Z.Min && other.Z.Max <= b.Z.Max
}

// Returns true if point p lies inside the box or on its boundary.
func (b AABB) Contains(p Vec3) bool {
	return b.X.Contains(p[0]) && b.Y.Contains(p[1]) && b.Z.Contains(p[2])
}

// Clamp point p so that it lies inside the box.
func (b AABB) ClampPoint(p Vec3) Vec3 {
	return Vec3{b.X.Clamp(p[0]), b.Y.Clamp(p[1]), b.Z.Clamp(p[2])}
}

// Get the axis with the largest extent. Ties resolve to the lower axis.
func (b AABB) LongestAxis() Axis {
	size := b.Size()
	if size[0] >= size[1] && size[0] >= size[2] {
		return XAxis
	}
	if size[1] >= size[2] {
		return YAxis
	}
	return ZAxis
}

// Bisect the box along axis at its midpoint. The two halves share the split
// plane and the remaining two axes are copied unchanged.
func (b AABB) Split(axis Axis) (left, right AABB) {
	in := b.Axis(axis)
	mid := in.Mid()
	left = b.WithAxis(axis, Interval{in.Min, mid})
	right = b.WithAxis(axis, Interval{mid, in.Max})
	return left, right
}

// Grow any axis whose extent is smaller than delta so that flat boxes
// still register ray hits.
func (b AABB) PadToMinimums(delta float64) AABB {
	if b.IsEmpty() {
		return b
	}
	if b.X.Size() < delta {
		b.X = b.X.Expand(delta)
	}
	if b.Y.Size() < delta {
		b.Y = b.Y.Expand(delta)
	}
	if b.Z.Size() < delta {
		b.Z = b.Z.Expand(delta)
	}
	return b
}

// Hit tests whether the ray overlaps the box for some t inside rayT.
func (b AABB) Hit(ray Ray, rayT Interval) bool {
	_, hit := b.Intersect(ray, rayT)
	return hit
}

// Intersect clips rayT against the three slabs of the box and returns the
// parametric interval spent inside the box. Zero direction components
// produce infinite slab distances through IEEE division; a slab distance
// that evaluates to NaN (origin on a plane of a parallel slab) does not
// constrain the interval.
func (b AABB) Intersect(ray Ray, rayT Interval) (Interval, bool) {
	for axis := XAxis; axis <= ZAxis; axis++ {
		slab := b.Axis(axis)
		invD := 1.0 / ray.Direction[axis]
		t0 := (slab.Min - ray.Origin[axis]) * invD
		t1 := (slab.Max - ray.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > rayT.Min {
			rayT.Min = t0
		}
		if t1 < rayT.Max {
			rayT.Max = t1
		}

		if rayT.Max <= rayT.Min {
			return rayT, false
		}
	}

	return rayT, true
}

// BoxRayIntersection returns the world-space points where the ray enters
// and leaves the box while t lies inside rayT.
func (b AABB) BoxRayIntersection(ray Ray, rayT Interval) (entry, exit Vec3, ok bool) {
	span, ok := b.Intersect(ray, rayT)
	if !ok {
		return Vec3{}, Vec3{}, false
	}
	return ray.At(span.Min), ray.At(span.Max), true
}
