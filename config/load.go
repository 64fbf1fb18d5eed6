package config

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/achilleasa/raycast/accel"
)

// The on-disk layout of a configuration file:
//
//	[structure]
//	kind = kdtree
//
//	[grid]
//	cellsx = 32
//	maxcellsperaxis = 128
//
//	[kdtree]
//	maxdepth = 14
//	minleafsize = 2
//	axis = round-robin
//	universe = fixed
//	universehalfsize = 500
//	epsilon = 1e-9
//
//	[query]
//	tmin = 0.001
//	tmax = 1e30
//
// Missing sections and variables keep their default values.
type fileConfig struct {
	Structure struct {
		Kind string
	}
	Grid struct {
		CellsX          int
		MaxCellsPerAxis int
	}
	KdTree struct {
		MaxDepth         int
		MinLeafSize      int
		Axis             string
		Universe         string
		UniverseHalfSize float64
		Epsilon          float64
	}
	Query struct {
		TMin float64
		TMax float64
	}
}

func newFileConfig(opts Options) fileConfig {
	var fc fileConfig
	fc.Structure.Kind = opts.Structure.String()
	fc.Grid.CellsX = opts.Grid.CellsX
	fc.Grid.MaxCellsPerAxis = opts.Grid.MaxCellsPerAxis
	fc.KdTree.MaxDepth = opts.KdTree.MaxDepth
	fc.KdTree.MinLeafSize = opts.KdTree.MinLeafSize
	fc.KdTree.Axis = opts.KdTree.Axis.String()
	fc.KdTree.Universe = opts.KdTree.Universe.String()
	fc.KdTree.UniverseHalfSize = opts.KdTree.UniverseHalfSize
	fc.KdTree.Epsilon = opts.KdTree.Epsilon
	fc.Query.TMin = opts.Query.TMin
	fc.Query.TMax = opts.Query.TMax
	return fc
}

func (fc fileConfig) options() (Options, error) {
	var err error
	opts := Options{
		Grid: GridOptions{
			CellsX:          fc.Grid.CellsX,
			MaxCellsPerAxis: fc.Grid.MaxCellsPerAxis,
		},
		KdTree: KdTreeOptions{
			MaxDepth:         fc.KdTree.MaxDepth,
			MinLeafSize:      fc.KdTree.MinLeafSize,
			UniverseHalfSize: fc.KdTree.UniverseHalfSize,
			Epsilon:          fc.KdTree.Epsilon,
		},
		Query: QueryOptions{
			TMin: fc.Query.TMin,
			TMax: fc.Query.TMax,
		},
	}

	if opts.Structure, err = accel.ParseKind(fc.Structure.Kind); err != nil {
		return opts, fmt.Errorf("%w: %q", ErrUnknownStructure, fc.Structure.Kind)
	}
	if opts.KdTree.Axis, err = ParseAxisPolicy(fc.KdTree.Axis); err != nil {
		return opts, err
	}
	if opts.KdTree.Universe, err = ParseUniversePolicy(fc.KdTree.Universe); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

// Load options from a configuration file. Values that are not present in
// the file keep their defaults.
func Load(path string) (Options, error) {
	fc := newFileConfig(Default())
	if err := gcfg.ReadFileInto(&fc, path); err != nil {
		return Options{}, fmt.Errorf("config: %s: %s", path, err.Error())
	}
	return fc.options()
}

// Parse options from a configuration string. Values that are not present in
// the string keep their defaults.
func Parse(cfg string) (Options, error) {
	fc := newFileConfig(Default())
	if err := gcfg.ReadStringInto(&fc, cfg); err != nil {
		return Options{}, fmt.Errorf("config: %s", err.Error())
	}
	return fc.options()
}
