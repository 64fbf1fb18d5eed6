// Package acceltest contains checks shared by the acceleration structure
// tests.
package acceltest

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/raycast/accel"
	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

// Closest hit t values must agree with the brute force scan within this
// tolerance.
const Tolerance = 1e-9

// The query interval used by the checks.
var RayT = types.Interval{Min: 0.001, Max: math.Inf(1)}

// Build a deterministic random scene.
func RandomScene(seed int64, spheres, triangles int) scene.List {
	opts := scene.DefaultRandomOptions()
	opts.Spheres = spheres
	opts.Triangles = triangles
	return scene.RandomScene(rand.New(rand.NewSource(seed)), opts)
}

// Trace numRays random rays through the structure and the brute force list
// and require that both report the same closest hit. The primitive that
// produced the hit must also be part of the candidate set, which may not
// contain duplicates.
func CheckGroundTruth(t *testing.T, target accel.Structure, list scene.List, seed int64, numRays int) {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	bounds := list.BBox()
	hits := 0
	for i := 0; i < numRays; i++ {
		ray := scene.RandomRay(rng, bounds)
		CheckRay(t, target, list, ray, RayT)

		var rec scene.HitRecord
		if list.Hit(ray, RayT, &rec) {
			hits++
		}
	}

	// A useful check needs a decent share of rays to hit something.
	if len(list) > 0 {
		assert.NotZero(t, hits, "expected some of the random rays to hit")
	}
}

// Compare a single ray query against the brute force list.
func CheckRay(t *testing.T, target accel.Structure, list scene.List, ray types.Ray, rayT types.Interval) {
	t.Helper()

	var expRec, rec scene.HitRecord
	expHit := list.Hit(ray, rayT, &expRec)
	hit := target.Hit(ray, rayT, &rec)
	require.Equal(t, expHit, hit, "hit mismatch for ray %+v", ray)

	candidates := target.Candidates(ray, rayT)
	CheckUnique(t, candidates)
	if !expHit {
		return
	}

	require.InDelta(t, expRec.T, rec.T, Tolerance, "closest t mismatch for ray %+v", ray)
	require.True(t, expRec.Primitive == rec.Primitive, "expected primitive %v; got %v for ray %+v", expRec.Material, rec.Material, ray)
	require.Contains(t, candidates, rec.Primitive, "hit primitive missing from candidates for ray %+v", ray)
}

// Require that no primitive appears twice in the candidate set.
func CheckUnique(t *testing.T, candidates []scene.Primitive) {
	t.Helper()

	seen := make(map[scene.Primitive]struct{}, len(candidates))
	for _, prim := range candidates {
		_, dup := seen[prim]
		require.False(t, dup, "primitive %v appears more than once in candidate set", prim)
		seen[prim] = struct{}{}
	}
}

// Two triangles forming the unit square [0,1]x[0,1] at z=0. They share the
// diagonal from (1,0,0) to (0,1,0).
func SharedEdgeTriangles() (scene.List, *scene.Triangle, *scene.Triangle) {
	lower := scene.NewTriangleFromVertices(types.XYZ(0, 0, 0), types.XYZ(1, 0, 0), types.XYZ(0, 1, 0), "lower")
	upper := scene.NewTriangleFromVertices(types.XYZ(1, 1, 0), types.XYZ(0, 1, 0), types.XYZ(1, 0, 0), "upper")
	return scene.List{lower, upper}, lower, upper
}
