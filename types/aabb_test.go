package types

import (
	"math"
	"testing"
)

func unitBox() AABB {
	return NewAABBFromPoints(XYZ(0, 0, 0), XYZ(1, 1, 1))
}

func TestAABBSlabHit(t *testing.T) {
	// Enters the unit box at t=1 and leaves at t=3.
	ray := NewRay(XYZ(-0.5, 0.5, 0.5), XYZ(0.5, 0, 0))
	box := unitBox()

	type spec struct {
		rayT   Interval
		expHit bool
	}
	specs := []spec{
		{Interval{0, 10}, true},
		{Interval{0, 2}, true},
		{Interval{1.5, 2.5}, true},
		{Interval{2.5, 100}, true},
		{Interval{0, 0.99}, false},
		{Interval{3.01, 10}, false},
		{Interval{-10, -1}, false},
		{EmptyInterval, false},
	}

	for index, s := range specs {
		if got := box.Hit(ray, s.rayT); got != s.expHit {
			t.Fatalf("[spec %d] expected hit for interval %v to be %t; got %t", index, s.rayT, s.expHit, got)
		}
	}

	span, ok := box.Intersect(ray, UniverseInterval)
	if !ok {
		t.Fatal("expected ray to intersect box")
	}
	if math.Abs(span.Min-1) > 1e-12 || math.Abs(span.Max-3) > 1e-12 {
		t.Fatalf("expected span [1, 3]; got %v", span)
	}
}

func TestAABBParallelRays(t *testing.T) {
	box := unitBox()

	type spec struct {
		ray    Ray
		expHit bool
	}
	specs := []spec{
		// Inside the y and z slabs, moving along +x.
		{NewRay(XYZ(-1, 0.5, 0.5), XYZ(1, 0, 0)), true},
		// Outside the y slab while parallel to it.
		{NewRay(XYZ(-1, 2, 0.5), XYZ(1, 0, 0)), false},
		{NewRay(XYZ(-1, -0.1, 0.5), XYZ(1, 0, 0)), false},
		// Negative zero direction components behave like positive ones.
		{NewRay(XYZ(0.5, 0.5, 2), XYZ(math.Copysign(0, -1), 0, -1)), true},
		// Origin exactly on a slab plane of a parallel axis.
		{NewRay(XYZ(-1, 0, 0.5), XYZ(1, 0, 0)), true},
		// Zero direction: only hits when the origin is inside.
		{NewRay(XYZ(0.5, 0.5, 0.5), XYZ(0, 0, 0)), true},
		{NewRay(XYZ(1.5, 0.5, 0.5), XYZ(0, 0, 0)), false},
	}

	for index, s := range specs {
		if got := box.Hit(s.ray, Interval{-100, 100}); got != s.expHit {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", index, s.expHit, got)
		}
	}
}

func TestAABBBoxRayIntersection(t *testing.T) {
	box := unitBox()
	ray := NewRay(XYZ(0.5, 0.5, -1), XYZ(0, 0, 1))

	entry, exit, ok := box.BoxRayIntersection(ray, Interval{0, math.Inf(1)})
	if !ok {
		t.Fatal("expected intersection")
	}
	if entry != XYZ(0.5, 0.5, 0) {
		t.Fatalf("expected entry point (0.5, 0.5, 0); got %v", entry)
	}
	if exit != XYZ(0.5, 0.5, 1) {
		t.Fatalf("expected exit point (0.5, 0.5, 1); got %v", exit)
	}

	if _, _, ok = box.BoxRayIntersection(ray, Interval{0, 0.5}); ok {
		t.Fatal("expected no intersection when the interval ends before the box")
	}
}

func TestAABBEmptyBoxNeverHit(t *testing.T) {
	rays := []Ray{
		NewRay(XYZ(0, 0, 0), XYZ(1, 0, 0)),
		NewRay(XYZ(0, 0, 0), XYZ(-1, -1, -1)),
		NewRay(XYZ(0, 0, 0), XYZ(0, 0, 0)),
	}
	for index, ray := range rays {
		if EmptyAABB.Hit(ray, UniverseInterval) {
			t.Fatalf("[ray %d] expected empty box to never be hit", index)
		}
	}
}

func TestAABBUnionAndEncloses(t *testing.T) {
	a := NewAABBFromPoints(XYZ(0, 0, 0), XYZ(1, 1, 1))
	b := NewAABBFromPoints(XYZ(2, -1, 0.5), XYZ(3, 0.5, 4))
	u := a.Union(b)

	if !u.Encloses(a) || !u.Encloses(b) {
		t.Fatalf("expected union %v to enclose both boxes", u)
	}
	if exp := NewAABBFromPoints(XYZ(0, -1, 0), XYZ(3, 1, 4)); u != exp {
		t.Fatalf("expected union %v; got %v", exp, u)
	}
	if u = EmptyAABB.Union(a); u != a {
		t.Fatalf("expected union with empty box to be %v; got %v", a, u)
	}
}

func TestAABBOverlapsRequiresAllAxes(t *testing.T) {
	a := unitBox()

	type spec struct {
		other AABB
		exp   bool
	}
	specs := []spec{
		{NewAABBFromPoints(XYZ(0.5, 0.5, 0.5), XYZ(2, 2, 2)), true},
		// Touching faces count as overlap.
		{NewAABBFromPoints(XYZ(1, 0, 0), XYZ(2, 1, 1)), true},
		// Overlaps on x and y but not z.
		{NewAABBFromPoints(XYZ(0, 0, 2), XYZ(1, 1, 3)), false},
		{NewAABBFromPoints(XYZ(5, 5, 5), XYZ(6, 6, 6)), false},
	}

	for index, s := range specs {
		if got := a.Overlaps(s.other); got != s.exp {
			t.Fatalf("[spec %d] expected overlap to be %t; got %t", index, s.exp, got)
		}
		if got := s.other.Overlaps(a); got != s.exp {
			t.Fatalf("[spec %d] expected symmetric overlap to be %t; got %t", index, s.exp, got)
		}
	}
}

func TestAABBSplit(t *testing.T) {
	box := NewAABBFromPoints(XYZ(-2, 0, 4), XYZ(6, 1, 5))

	for axis := XAxis; axis <= ZAxis; axis++ {
		left, right := box.Split(axis)
		if left.Union(right) != box {
			t.Fatalf("[axis %d] expected halves to reconstruct the box", axis)
		}
		if left.Axis(axis).Max != right.Axis(axis).Min {
			t.Fatalf("[axis %d] expected halves to share the split plane", axis)
		}
		if exp := box.Axis(axis).Mid(); left.Axis(axis).Max != exp {
			t.Fatalf("[axis %d] expected split at %f; got %f", axis, exp, left.Axis(axis).Max)
		}
		for other := XAxis; other <= ZAxis; other++ {
			if other == axis {
				continue
			}
			if left.Axis(other) != box.Axis(other) || right.Axis(other) != box.Axis(other) {
				t.Fatalf("[axis %d] expected axis %d to be unchanged", axis, other)
			}
		}
	}
}

func TestAABBLongestAxis(t *testing.T) {
	type spec struct {
		box     AABB
		expAxis Axis
	}
	specs := []spec{
		{NewAABBFromPoints(XYZ(0, 0, 0), XYZ(3, 1, 1)), XAxis},
		{NewAABBFromPoints(XYZ(0, 0, 0), XYZ(1, 3, 1)), YAxis},
		{NewAABBFromPoints(XYZ(0, 0, 0), XYZ(1, 1, 3)), ZAxis},
		{NewAABBFromPoints(XYZ(0, 0, 0), XYZ(1, 1, 1)), XAxis},
		{NewAABBFromPoints(XYZ(0, 0, 0), XYZ(1, 2, 2)), YAxis},
	}
	for index, s := range specs {
		if got := s.box.LongestAxis(); got != s.expAxis {
			t.Fatalf("[spec %d] expected longest axis %d; got %d", index, s.expAxis, got)
		}
	}
}

func TestAABBPadToMinimums(t *testing.T) {
	flat := NewAABBFromPoints(XYZ(0, 0, 2), XYZ(1, 1, 2))
	padded := flat.PadToMinimums(1e-4)

	if padded.X != flat.X || padded.Y != flat.Y {
		t.Fatal("expected non-degenerate axes to be left untouched")
	}
	if padded.Z.Size() < 1e-4-1e-12 || !padded.Z.Contains(2) {
		t.Fatalf("expected z axis to be padded around 2; got %v", padded.Z)
	}

	ray := NewRay(XYZ(0.5, 0.5, 0), XYZ(0, 0, 1))
	if flat.Hit(ray, UniverseInterval) {
		t.Fatal("expected zero-thickness box to be rejected by the strict slab test")
	}
	if !padded.Hit(ray, UniverseInterval) {
		t.Fatal("expected padded box to be hit")
	}
}
