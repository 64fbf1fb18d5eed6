package accel

import (
	"fmt"
	"strings"
	"time"

	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

type Kind uint8

const (
	Linear Kind = iota
	BVH
	KdTree
	Grid
)

var kindNames = map[Kind]string{
	Linear: "linear",
	BVH:    "bvh",
	KdTree: "kdtree",
	Grid:   "grid",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Get the structure kind for the given name.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("accel: unknown structure kind %q", name)
}

// All structure kinds in display order.
func Kinds() []Kind {
	return []Kind{Linear, BVH, KdTree, Grid}
}

// A Structure is a spatial index over a fixed primitive set. Structures are
// immutable once built and safe for concurrent queries.
type Structure interface {
	scene.Primitive

	// Get the primitives that the structure would consider for the closest
	// hit along the ray. Each primitive appears at most once.
	Candidates(ray types.Ray, rayT types.Interval) []scene.Primitive

	// Get build statistics.
	Stats() Stats
}

// Stats describes the shape of a built structure.
type Stats struct {
	Kind Kind

	// Number of indexed primitives.
	Primitives int

	// Node (or voxel) counts. EmptyLeaves counts leaves or voxels without
	// primitives.
	Nodes       int
	Leaves      int
	EmptyLeaves int

	// Total primitive references stored in leaves; larger than Primitives
	// when structures duplicate primitives across cells.
	References int

	MaxDepth  int
	BuildTime time.Duration
}
