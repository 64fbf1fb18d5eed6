package kdtree

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/achilleasa/raycast/accel"
	"github.com/achilleasa/raycast/config"
	"github.com/achilleasa/raycast/log"
	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

// Kd-tree nodes are stored in a contiguous list with the root at index 0.
// Inner nodes split their box at the midpoint of Axis; Left and Right
// point to the child nodes and are -1 for leafs. Parent is a non-owning
// back reference and is -1 for the root.
type Node struct {
	BBox types.AABB

	Left, Right int32
	Parent      int32

	// Indices of the primitives whose bbox overlaps the node box.
	Prims []uint32

	Leaf  bool
	Depth int
	Axis  types.Axis
}

type builder struct {
	logger log.Logger
	opts   config.KdTreeOptions
	prims  []scene.Primitive
	nodes  []Node
	stats  accel.Stats
}

// Tree partitions a fixed universe box into nested sub-boxes. Primitives
// are referenced by every leaf whose box their bbox overlaps.
type Tree struct {
	Nodes []Node

	logger  log.Logger
	prims   []scene.Primitive
	epsilon float64
	stats   accel.Stats

	// Number of queries that could not locate a leaf for a point inside
	// the root box.
	faults uint64
}

// Construct a kd-tree over a copy of the given primitives.
func Build(prims []scene.Primitive, opts config.KdTreeOptions) *Tree {
	b := &builder{
		logger: log.New("kdtree"),
		opts:   opts,
		prims:  append([]scene.Primitive(nil), prims...),
	}

	var universe types.AABB
	switch opts.Universe {
	case config.FixedUniverse:
		h := opts.UniverseHalfSize
		universe = types.NewAABBFromPoints(types.XYZ(-h, -h, -h), types.XYZ(h, h, h))
		if sceneBox := scene.List(b.prims).BBox(); !sceneBox.IsEmpty() && !universe.Encloses(sceneBox) {
			b.logger.Warningf("universe %v does not enclose scene bounds %v; primitives outside it are unreachable", universe, sceneBox)
		}
	default:
		universe = scene.List(b.prims).BBox()
	}

	all := make([]uint32, len(b.prims))
	for index := range all {
		all[index] = uint32(index)
	}

	start := time.Now()
	b.partition(universe, all, 0, -1)
	buildTime := time.Since(start)

	b.stats.Kind = accel.KdTree
	b.stats.Primitives = len(b.prims)
	b.stats.Nodes = len(b.nodes)
	b.stats.BuildTime = buildTime

	b.logger.Debugf(
		"kd-tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d, empty leafs: %d, refs: %d",
		buildTime.Nanoseconds()/1e6,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leaves, b.stats.EmptyLeaves, b.stats.References,
	)

	return &Tree{
		Nodes:   b.nodes,
		logger:  b.logger,
		prims:   b.prims,
		epsilon: opts.Epsilon,
		stats:   b.stats,
	}
}

// Partition the box and return node index.
func (b *builder) partition(box types.AABB, prims []uint32, depth int, parent int32) int32 {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, Node{
		BBox:   box,
		Left:   -1,
		Right:  -1,
		Parent: parent,
		Prims:  prims,
		Depth:  depth,
	})

	if depth >= b.opts.MaxDepth || len(prims) == 0 || len(prims) <= b.opts.MinLeafSize {
		b.nodes[nodeIndex].Leaf = true
		b.stats.Leaves++
		b.stats.References += len(prims)
		if len(prims) == 0 {
			b.stats.EmptyLeaves++
		}
		return nodeIndex
	}

	var axis types.Axis
	switch b.opts.Axis {
	case config.RoundRobinAxis:
		axis = types.Axis(depth % 3)
	default:
		axis = box.LongestAxis()
	}

	leftBox, rightBox := box.Split(axis)
	leftPrims := b.overlapping(leftBox, prims)
	rightPrims := b.overlapping(rightBox, prims)

	b.nodes[nodeIndex].Axis = axis
	b.nodes[nodeIndex].Prims = nil

	left := b.partition(leftBox, leftPrims, depth+1, nodeIndex)
	right := b.partition(rightBox, rightPrims, depth+1, nodeIndex)
	b.nodes[nodeIndex].Left = left
	b.nodes[nodeIndex].Right = right

	return nodeIndex
}

// Select the primitives whose bbox overlaps the given box.
func (b *builder) overlapping(box types.AABB, prims []uint32) []uint32 {
	out := make([]uint32, 0, len(prims))
	for _, index := range prims {
		if b.prims[index].BBox().Overlaps(box) {
			out = append(out, index)
		}
	}
	return out
}

// Find the closest hit by hopping from leaf to leaf along the ray.
//
// A hit found inside a leaf is only accepted if it does not lie past the
// leaf exit; otherwise a primitive in a following leaf may still be closer.
// On a miss the record is left untouched except for its counters.
func (t *Tree) Hit(ray types.Ray, rayT types.Interval, rec *scene.HitRecord) bool {
	local := *rec
	found, ok := t.walk(ray, rayT, &local, nil)
	if found && ok {
		*rec = local
		return true
	}

	rec.IntersectionTests = local.IntersectionTests
	rec.TraversalSteps = local.TraversalSteps
	return false
}

// Get the primitives of every leaf visited while searching for the closest
// hit, up to and including the leaf where the hit was accepted.
func (t *Tree) Candidates(ray types.Ray, rayT types.Interval) []scene.Primitive {
	var out []scene.Primitive
	seen := make(map[uint32]struct{})
	visit := func(leaf *Node) {
		for _, index := range leaf.Prims {
			if _, ok := seen[index]; ok {
				continue
			}
			seen[index] = struct{}{}
			out = append(out, t.prims[index])
		}
	}

	var rec scene.HitRecord
	if _, ok := t.walk(ray, rayT, &rec, visit); !ok {
		return nil
	}
	return out
}

// Walk the leafs pierced by the ray in order. The walk restarts from the
// root for each leaf: the point just past the previous leaf exit is located
// by descending through the child boxes that contain it. Returns false
// as the second value if no leaf contains the point.
func (t *Tree) walk(ray types.Ray, rayT types.Interval, rec *scene.HitRecord, visit func(*Node)) (found, ok bool) {
	if len(t.Nodes) == 0 {
		return false, true
	}

	root := &t.Nodes[0]
	span, hit := root.BBox.Intersect(ray, rayT)
	if !hit {
		return false, true
	}

	closest := rayT.Max
	prevLeaf := int32(-1)
	stepScale := 1.0
	for cur := span.Min; ; {
		point := root.BBox.ClampPoint(ray.At(cur))
		leafIndex := t.locate(point)
		if leafIndex < 0 {
			atomic.AddUint64(&t.faults, 1)
			t.logger.Warningf("no leaf contains point %v (t = %g); treating ray as a miss", point, cur)
			return false, false
		}

		leaf := &t.Nodes[leafIndex]
		if leafIndex != prevLeaf {
			rec.TraversalSteps++
			stepScale = 1
			if visit != nil {
				visit(leaf)
			}
			for _, index := range leaf.Prims {
				if t.prims[index].Hit(ray, types.Interval{Min: rayT.Min, Max: closest}, rec) {
					found = true
					closest = rec.T
				}
			}
		} else {
			// Roundoff placed us back in the same leaf.
			stepScale *= 2
		}
		prevLeaf = leafIndex

		exit := exitT(leaf.BBox, ray)
		if found && closest <= exit {
			return true, true
		}
		if exit >= span.Max {
			return found, true
		}

		next := exit + t.epsilon*math.Max(1, math.Abs(exit))*stepScale
		if !(next > cur) {
			next = math.Nextafter(cur, math.Inf(1))
		}
		if next > span.Max {
			return found, true
		}
		cur = next
	}
}

// Descend from the root to the leaf containing point. Points on a split
// plane resolve to the left child. Returns -1 if neither child of an inner
// node contains the point.
func (t *Tree) locate(point types.Vec3) int32 {
	index := int32(0)
	for {
		node := &t.Nodes[index]
		if node.Leaf {
			return index
		}

		switch {
		case t.Nodes[node.Left].BBox.Contains(point):
			index = node.Left
		case t.Nodes[node.Right].BBox.Contains(point):
			index = node.Right
		default:
			return -1
		}
	}
}

// Get the ray parameter where the ray leaves the box through one of the
// planes it is heading towards.
func exitT(box types.AABB, ray types.Ray) float64 {
	exit := math.Inf(1)
	for axis := types.XAxis; axis <= types.ZAxis; axis++ {
		var bound float64
		d := ray.Direction[axis]
		switch {
		case d > 0:
			bound = box.Axis(axis).Max
		case d < 0:
			bound = box.Axis(axis).Min
		default:
			continue
		}

		if t := (bound - ray.Origin[axis]) / d; t < exit {
			exit = t
		}
	}
	return exit
}

// Get the universe box.
func (t *Tree) BBox() types.AABB {
	if len(t.Nodes) == 0 {
		return types.EmptyAABB
	}
	return t.Nodes[0].BBox
}

// Get the parent index of a node; -1 for the root.
func (t *Tree) Parent(index int32) int32 {
	return t.Nodes[index].Parent
}

// Get the number of queries that failed to locate a leaf.
func (t *Tree) Faults() uint64 {
	return atomic.LoadUint64(&t.faults)
}

func (t *Tree) Stats() accel.Stats {
	return t.stats
}
