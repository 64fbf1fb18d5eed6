package tracer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/raycast/accel/acceltest"
	"github.com/achilleasa/raycast/accel/bvh"
	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

func randomRays(seed int64, bounds types.AABB, count int) []types.Ray {
	rng := rand.New(rand.NewSource(seed))
	rays := make([]types.Ray, count)
	for index := range rays {
		rays[index] = scene.RandomRay(rng, bounds)
	}
	return rays
}

func TestPoolMatchesBruteForce(t *testing.T) {
	list := acceltest.RandomScene(11, 60, 60)
	tree := bvh.Build(list)
	rays := randomRays(3, list.BBox(), 1000)

	pool := NewPool(4, nil)
	defer pool.Close()

	// Run a few batches so the perfect scheduler switches to timing feedback
	for batch := 0; batch < 3; batch++ {
		results, stats, err := pool.Trace(tree, rays, acceltest.RayT)
		require.NoError(t, err)
		require.Len(t, results, len(rays))

		var hits uint32
		var tests uint64
		for index, ray := range rays {
			var expRec scene.HitRecord
			expHit := list.Hit(ray, acceltest.RayT, &expRec)
			if results[index].Hit != expHit {
				t.Fatalf("[batch %d] expected ray %d hit to be %t; got %t", batch, index, expHit, results[index].Hit)
			}
			if expHit {
				hits++
				assert.InDelta(t, expRec.T, results[index].Record.T, acceltest.Tolerance)
			}
			tests += uint64(results[index].Record.IntersectionTests)
		}

		assert.Equal(t, uint32(len(rays)), stats.Rays)
		assert.Equal(t, hits, stats.Hits)
		assert.Equal(t, tests, stats.IntersectionTests)
		assert.Len(t, stats.Tracers, 4)

		var assigned uint32
		for _, trStat := range stats.Tracers {
			assigned += trStat.BlockLen
		}
		assert.Equal(t, uint32(len(rays)), assigned)
	}
}

func TestPoolWithFewerRaysThanTracers(t *testing.T) {
	sphere := scene.NewSphere(types.XYZ(0, 0, -1), 0.5, nil)
	rays := []types.Ray{
		types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1)),
		types.NewRay(types.XYZ(0, 0, 0), types.XYZ(0, 0, 1)),
	}

	pool := NewPool(4, NaiveScheduler())
	defer pool.Close()

	results, stats, err := pool.Trace(sphere, rays, acceltest.RayT)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Hit)
	assert.InDelta(t, 0.5, results[0].Record.T, acceltest.Tolerance)
	assert.False(t, results[1].Hit)
	assert.Equal(t, uint32(1), stats.Hits)

	results, _, err = pool.Trace(sphere, nil, acceltest.RayT)
	require.NoError(t, err)
	assert.Len(t, results, 0)
}

func TestPoolErrors(t *testing.T) {
	pool := NewPoolWithTracers(nil)
	if _, _, err := pool.Trace(scene.List{}, nil, acceltest.RayT); err != ErrNoTracers {
		t.Fatalf("expected to get %v; got %v", ErrNoTracers, err)
	}

	tr := NewCPUTracer("closed", 0)
	tr.Close()
	tr.Close()
	if tr.Speed() != 1 {
		t.Fatalf("expected default speed 1; got %d", tr.Speed())
	}

	pool = NewPoolWithTracers(NaiveScheduler(), tr)
	rays := randomRays(1, types.NewAABBFromPoints(types.XYZ(-1, -1, -1), types.XYZ(1, 1, 1)), 10)
	if _, _, err := pool.Trace(scene.List{}, rays, acceltest.RayT); err != ErrTracerClosed {
		t.Fatalf("expected to get %v; got %v", ErrTracerClosed, err)
	}
}
