package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/achilleasa/raycast/accel"
	"github.com/achilleasa/raycast/types"
)

// The max allowed kd-tree depth.
const MaxKdDepth = 32

// The policy for picking the kd-tree split axis.
type AxisPolicy uint8

const (
	// Split along depth % 3.
	RoundRobinAxis AxisPolicy = iota

	// Split along the longest axis of the node box.
	LongestAxis
)

var axisPolicyNames = map[AxisPolicy]string{
	RoundRobinAxis: "round-robin",
	LongestAxis:    "longest",
}

func (p AxisPolicy) String() string {
	if name, ok := axisPolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("axis(%d)", uint8(p))
}

// Parse an axis policy name.
func ParseAxisPolicy(name string) (AxisPolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for policy, policyName := range axisPolicyNames {
		if policyName == name {
			return policy, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKdAxis, name)
}

// The policy for selecting the box partitioned by the kd-tree root.
type UniversePolicy uint8

const (
	// The union of the primitive bounding boxes.
	SceneUniverse UniversePolicy = iota

	// A cube centered at the origin; see KdTreeOptions.UniverseHalfSize.
	FixedUniverse
)

var universePolicyNames = map[UniversePolicy]string{
	SceneUniverse: "scene",
	FixedUniverse: "fixed",
}

func (p UniversePolicy) String() string {
	if name, ok := universePolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("universe(%d)", uint8(p))
}

// Parse a universe policy name.
func ParseUniversePolicy(name string) (UniversePolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for policy, policyName := range universePolicyNames {
		if policyName == name {
			return policy, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKdUniverse, name)
}

type GridOptions struct {
	// Number of cells along the X axis. The Y/Z counts are derived so
	// that cells are approximately cubic.
	CellsX int

	// Upper bound for the derived cell counts.
	MaxCellsPerAxis int
}

type KdTreeOptions struct {
	// Nodes at this depth become leafs.
	MaxDepth int

	// Nodes with this many primitives or fewer become leafs.
	MinLeafSize int

	Axis     AxisPolicy
	Universe UniversePolicy

	// Half the side length of the fixed universe cube.
	UniverseHalfSize float64

	// Relative distance used to step past a leaf exit while traversing.
	Epsilon float64
}

type QueryOptions struct {
	TMin float64
	TMax float64
}

// Get the query interval.
func (q QueryOptions) Interval() types.Interval {
	return types.Interval{Min: q.TMin, Max: q.TMax}
}

// Options controls how a world builds its acceleration structure and the
// default query interval. A copy is handed to each structure constructor.
type Options struct {
	// The structure to build.
	Structure accel.Kind

	Grid   GridOptions
	KdTree KdTreeOptions
	Query  QueryOptions
}

// Get the default options.
func Default() Options {
	return Options{
		Structure: accel.BVH,
		Grid: GridOptions{
			CellsX:          16,
			MaxCellsPerAxis: 256,
		},
		KdTree: KdTreeOptions{
			MaxDepth:         12,
			MinLeafSize:      4,
			Axis:             LongestAxis,
			Universe:         SceneUniverse,
			UniverseHalfSize: 1e4,
			Epsilon:          1e-9,
		},
		Query: QueryOptions{
			TMin: 0.001,
			TMax: math.Inf(1),
		},
	}
}

// Validate the options and return the first violated constraint.
func (opts Options) Validate() error {
	if _, ok := kindSet()[opts.Structure]; !ok {
		return ErrUnknownStructure
	}

	if opts.Grid.CellsX < 1 || opts.Grid.MaxCellsPerAxis < 1 {
		return ErrInvalidGridCells
	}

	kd := opts.KdTree
	switch {
	case kd.MaxDepth < 0 || kd.MaxDepth > MaxKdDepth:
		return ErrInvalidKdDepth
	case kd.MinLeafSize < 0:
		return ErrInvalidKdLeafSize
	case kd.Axis != RoundRobinAxis && kd.Axis != LongestAxis:
		return ErrInvalidKdAxis
	case kd.Universe != SceneUniverse && kd.Universe != FixedUniverse:
		return ErrInvalidKdUniverse
	case kd.Universe == FixedUniverse && !(kd.UniverseHalfSize > 0 && !math.IsInf(kd.UniverseHalfSize, 1)):
		return ErrInvalidKdUniverse
	case !(kd.Epsilon > 0):
		return ErrInvalidKdEpsilon
	}

	if math.IsNaN(opts.Query.TMin) || math.IsNaN(opts.Query.TMax) || opts.Query.TMin > opts.Query.TMax {
		return ErrInvalidInterval
	}

	return nil
}

func kindSet() map[accel.Kind]struct{} {
	set := make(map[accel.Kind]struct{})
	for _, kind := range accel.Kinds() {
		set[kind] = struct{}{}
	}
	return set
}
