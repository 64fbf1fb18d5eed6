package scene

import (
	"math"
	"math/rand"

	"github.com/achilleasa/raycast/types"
)

// RandomOptions controls the contents of a generated primitive soup.
type RandomOptions struct {
	Spheres   int
	Triangles int

	// Primitive centers are placed uniformly inside this box.
	Bounds types.AABB

	// Sphere radius range.
	MinRadius, MaxRadius float64

	// Max length of a triangle edge vector component.
	MaxEdge float64
}

// Default options for generating random scenes.
func DefaultRandomOptions() RandomOptions {
	return RandomOptions{
		Spheres:   64,
		Triangles: 64,
		Bounds:    types.NewAABBFromPoints(types.XYZ(-10, -10, -10), types.XYZ(10, 10, 10)),
		MinRadius: 0.1,
		MaxRadius: 1.0,
		MaxEdge:   2.0,
	}
}

// Generate a deterministic soup of spheres and triangles. Each primitive
// gets its creation index as its material so results can be traced back.
func RandomScene(rng *rand.Rand, opts RandomOptions) List {
	list := make(List, 0, opts.Spheres+opts.Triangles)

	for i := 0; i < opts.Spheres; i++ {
		radius := opts.MinRadius + rng.Float64()*(opts.MaxRadius-opts.MinRadius)
		list = append(list, NewSphere(RandomPoint(rng, opts.Bounds), radius, len(list)))
	}

	for i := 0; i < opts.Triangles; i++ {
		q := RandomPoint(rng, opts.Bounds)
		u := randomVec(rng, opts.MaxEdge)
		v := randomVec(rng, opts.MaxEdge)
		list = append(list, NewTriangle(q, u, v, len(list)))
	}

	return list
}

// Generate a random ray whose origin lies inside bounds (grown by 50% on
// every side) and whose direction is uniformly distributed on the sphere.
func RandomRay(rng *rand.Rand, bounds types.AABB) types.Ray {
	grown := types.NewAABB(
		bounds.X.Expand(bounds.X.Size()),
		bounds.Y.Expand(bounds.Y.Size()),
		bounds.Z.Expand(bounds.Z.Size()),
	)

	z := 2*rng.Float64() - 1
	phi := 2 * math.Pi * rng.Float64()
	r := math.Sqrt(1 - z*z)
	dir := types.XYZ(r*math.Cos(phi), r*math.Sin(phi), z)

	return types.NewRay(RandomPoint(rng, grown), dir)
}

// Get a uniformly distributed point inside the box.
func RandomPoint(rng *rand.Rand, bounds types.AABB) types.Vec3 {
	return types.XYZ(
		bounds.X.Min+rng.Float64()*bounds.X.Size(),
		bounds.Y.Min+rng.Float64()*bounds.Y.Size(),
		bounds.Z.Min+rng.Float64()*bounds.Z.Size(),
	)
}

func randomVec(rng *rand.Rand, extent float64) types.Vec3 {
	return types.XYZ(
		(2*rng.Float64()-1)*extent,
		(2*rng.Float64()-1)*extent,
		(2*rng.Float64()-1)*extent,
	)
}
