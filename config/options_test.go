package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/raycast/accel"
)

func TestDefaultsAreValid(t *testing.T) {
	opts := Default()
	if err := opts.Validate(); err != nil {
		t.Fatalf("expected default options to be valid; got %v", err)
	}
	if opts.Structure != accel.BVH {
		t.Fatalf("expected default structure to be bvh; got %s", opts.Structure)
	}
	if !math.IsInf(opts.Query.Interval().Max, 1) {
		t.Fatalf("expected default query interval to be unbounded; got %+v", opts.Query.Interval())
	}
}

func TestValidate(t *testing.T) {
	type spec struct {
		mutate func(*Options)
		expErr error
	}
	specs := []spec{
		{func(o *Options) { o.Structure = accel.Kind(42) }, ErrUnknownStructure},
		{func(o *Options) { o.Grid.CellsX = 0 }, ErrInvalidGridCells},
		{func(o *Options) { o.Grid.MaxCellsPerAxis = -1 }, ErrInvalidGridCells},
		{func(o *Options) { o.KdTree.MaxDepth = -1 }, ErrInvalidKdDepth},
		{func(o *Options) { o.KdTree.MaxDepth = MaxKdDepth + 1 }, ErrInvalidKdDepth},
		{func(o *Options) { o.KdTree.MinLeafSize = -1 }, ErrInvalidKdLeafSize},
		{func(o *Options) { o.KdTree.Axis = AxisPolicy(9) }, ErrInvalidKdAxis},
		{func(o *Options) { o.KdTree.Universe = UniversePolicy(9) }, ErrInvalidKdUniverse},
		{func(o *Options) { o.KdTree.Universe = FixedUniverse; o.KdTree.UniverseHalfSize = 0 }, ErrInvalidKdUniverse},
		{func(o *Options) { o.KdTree.Epsilon = 0 }, ErrInvalidKdEpsilon},
		{func(o *Options) { o.Query.TMin = 2; o.Query.TMax = 1 }, ErrInvalidInterval},
		{func(o *Options) { o.Query.TMin = math.NaN() }, ErrInvalidInterval},
		{func(o *Options) { o.KdTree.MaxDepth = 0; o.KdTree.MinLeafSize = 0 }, nil},
	}

	for index, s := range specs {
		opts := Default()
		s.mutate(&opts)
		if err := opts.Validate(); err != s.expErr {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}
}

func TestParse(t *testing.T) {
	opts, err := Parse(`
[structure]
kind = kdtree

[grid]
cellsx = 32

[kdtree]
maxdepth = 14
axis = round-robin
universe = fixed
universehalfsize = 500

[query]
tmin = 0.5
tmax = 100
`)
	require.NoError(t, err)

	exp := Default()
	exp.Structure = accel.KdTree
	exp.Grid.CellsX = 32
	exp.KdTree.MaxDepth = 14
	exp.KdTree.Axis = RoundRobinAxis
	exp.KdTree.Universe = FixedUniverse
	exp.KdTree.UniverseHalfSize = 500
	exp.Query.TMin = 0.5
	exp.Query.TMax = 100
	assert.Equal(t, exp, opts)
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	opts, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestParseErrors(t *testing.T) {
	type spec struct {
		cfg    string
		expErr error
	}
	specs := []spec{
		{"[structure]\nkind = octree\n", ErrUnknownStructure},
		{"[kdtree]\naxis = diagonal\n", ErrInvalidKdAxis},
		{"[kdtree]\nuniverse = galaxy\n", ErrInvalidKdUniverse},
		{"[kdtree]\nmaxdepth = 64\n", ErrInvalidKdDepth},
		{"[grid]\ncellsx = 0\n", ErrInvalidGridCells},
	}

	for index, s := range specs {
		_, err := Parse(s.cfg)
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}

	if _, err := Parse("[grid]\ncellsx = lots\n"); err == nil {
		t.Fatal("expected a syntax error for a non-numeric cell count")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raycast.cfg")
	require.NoError(t, os.WriteFile(path, []byte("[structure]\nkind = grid\n[grid]\ncellsx = 8\n"), 0644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, accel.Grid, opts.Structure)
	assert.Equal(t, 8, opts.Grid.CellsX)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cfg"))
	assert.Error(t, err)
}
