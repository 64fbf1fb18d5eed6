package bvh

import (
	"sort"
	"time"

	"github.com/achilleasa/raycast/accel"
	"github.com/achilleasa/raycast/log"
	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

// Bvh nodes are stored in a contiguous list. The meaning of the Left and
// Right indices depends on the node type:
//
// - For inner nodes they point to the left/right child nodes.
// - For leafs they point to primitives. A leaf built from a single
//   primitive stores the same primitive index twice.
type Node struct {
	BBox types.AABB

	Left, Right uint32

	Leaf bool
}

// Set left and right child node indices.
func (n *Node) SetChildNodes(left, right uint32) {
	n.Left = left
	n.Right = right
	n.Leaf = false
}

// Set left and right primitive indices.
func (n *Node) SetPrimitives(left, right uint32) {
	n.Left = left
	n.Right = right
	n.Leaf = true
}

type stats struct {
	nodes    int
	leafs    int
	maxDepth int
}

type builder struct {
	logger log.Logger

	// Bvh nodes stored as a contiguous list
	nodes []Node

	// The primitives being partitioned; sorted in place while building.
	prims []scene.Primitive

	// Stats
	stats stats
}

// Tree is a bounding volume hierarchy over a fixed primitive set. The root
// is stored at index 0.
type Tree struct {
	Nodes []Node

	prims []scene.Primitive
	stats accel.Stats
}

// Construct a BVH over a copy of the given primitives.
//
// Each node splits its primitive range at the median after sorting the range
// by the bbox minimum along the longest axis of the node bbox. Ranges with
// one or two primitives become leafs.
func Build(prims []scene.Primitive) *Tree {
	b := &builder{
		logger: log.New("bvh"),
		nodes:  make([]Node, 0, 2*len(prims)),
		prims:  append([]scene.Primitive(nil), prims...),
	}

	start := time.Now()
	if len(b.prims) > 0 {
		b.partition(0, len(b.prims), 0)
	}
	buildTime := time.Since(start)

	b.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		buildTime.Nanoseconds()/1e6,
		b.stats.maxDepth, b.stats.nodes+b.stats.leafs, b.stats.leafs,
	)

	return &Tree{
		Nodes: b.nodes,
		prims: b.prims,
		stats: accel.Stats{
			Kind:       accel.BVH,
			Primitives: len(b.prims),
			Nodes:      len(b.nodes),
			Leaves:     b.stats.leafs,
			References: len(b.prims),
			MaxDepth:   b.stats.maxDepth,
			BuildTime:  buildTime,
		},
	}
}

// Partition prims[start:end] and return node index.
func (b *builder) partition(start, end, depth int) uint32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	// Calculate bounding box for node
	var node Node
	node.BBox = types.EmptyAABB
	for _, prim := range b.prims[start:end] {
		node.BBox = node.BBox.Union(prim.BBox())
	}

	span := end - start
	switch span {
	case 1:
		return b.createLeaf(&node, uint32(start), uint32(start))
	case 2:
		return b.createLeaf(&node, uint32(start), uint32(start+1))
	}

	axis := node.BBox.LongestAxis()
	workList := b.prims[start:end]
	sort.SliceStable(workList, func(i, j int) bool {
		return workList[i].BBox().Axis(axis).Min < workList[j].BBox().Axis(axis).Min
	})

	// Add node to list
	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, node)
	b.stats.nodes++

	// Partition children and update node indices
	mid := start + span/2
	leftNodeIndex := b.partition(start, mid, depth+1)
	rightNodeIndex := b.partition(mid, end, depth+1)
	b.nodes[nodeIndex].SetChildNodes(leftNodeIndex, rightNodeIndex)

	return uint32(nodeIndex)
}

// Setup the given node as a leaf pointing to the left and right primitives.
// Returns the index to the node in the bvh node array.
func (b *builder) createLeaf(node *Node, left, right uint32) uint32 {
	node.SetPrimitives(left, right)

	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, *node)
	b.stats.leafs++

	return uint32(nodeIndex)
}

// Find the closest hit. The right subtree is searched with the interval
// narrowed to the best hit found in the left subtree.
func (t *Tree) Hit(ray types.Ray, rayT types.Interval, rec *scene.HitRecord) bool {
	if len(t.Nodes) == 0 {
		return false
	}
	return t.hitNode(0, ray, rayT, rec)
}

func (t *Tree) hitNode(index uint32, ray types.Ray, rayT types.Interval, rec *scene.HitRecord) bool {
	node := &t.Nodes[index]
	rec.TraversalSteps++
	if !node.BBox.Hit(ray, rayT) {
		return false
	}

	if node.Leaf {
		hitLeft := t.prims[node.Left].Hit(ray, rayT, rec)
		if node.Right == node.Left {
			return hitLeft
		}
		if hitLeft {
			rayT.Max = rec.T
		}
		hitRight := t.prims[node.Right].Hit(ray, rayT, rec)
		return hitLeft || hitRight
	}

	hitLeft := t.hitNode(node.Left, ray, rayT, rec)
	if hitLeft {
		rayT.Max = rec.T
	}
	hitRight := t.hitNode(node.Right, ray, rayT, rec)
	return hitLeft || hitRight
}

// Get the root bounding box.
func (t *Tree) BBox() types.AABB {
	if len(t.Nodes) == 0 {
		return types.EmptyAABB
	}
	return t.Nodes[0].BBox
}

// Get the primitives of every leaf whose box is hit by the ray.
func (t *Tree) Candidates(ray types.Ray, rayT types.Interval) []scene.Primitive {
	if len(t.Nodes) == 0 {
		return nil
	}

	var out []scene.Primitive
	seen := make(map[uint32]struct{})
	add := func(index uint32) {
		if _, ok := seen[index]; ok {
			return
		}
		seen[index] = struct{}{}
		out = append(out, t.prims[index])
	}

	stack := []uint32{0}
	for len(stack) > 0 {
		node := &t.Nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]
		if !node.BBox.Hit(ray, rayT) {
			continue
		}
		if node.Leaf {
			add(node.Left)
			add(node.Right)
			continue
		}
		stack = append(stack, node.Right, node.Left)
	}
	return out
}

// Get the primitives in the order the tree references them.
func (t *Tree) Primitives() []scene.Primitive {
	return t.prims
}

func (t *Tree) Stats() accel.Stats {
	return t.stats
}
