package grid

import (
	"math"
	"time"

	"github.com/achilleasa/raycast/accel"
	"github.com/achilleasa/raycast/config"
	"github.com/achilleasa/raycast/log"
	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

// Bounds thinner than this along an axis are padded.
const minBoundsSize = 1e-4

// A Voxel lists the indices of the primitives whose bbox overlaps it.
type Voxel struct {
	Prims []uint32
}

// A Cell describes a voxel visited by Walk together with the ray parameter
// range spent inside it.
type Cell struct {
	X, Y, Z int

	// Index into the voxel array.
	Index int

	Entry, Exit float64
}

// Grid is a uniform voxel partition of the primitive bounds.
type Grid struct {
	logger log.Logger

	bounds   types.AABB
	dims     [3]int
	cellSize types.Vec3

	// Voxels are indexed as x + nx*(y + ny*z).
	voxels []Voxel

	prims []scene.Primitive
	stats accel.Stats
}

// Construct a grid over a copy of the given primitives.
//
// The X axis is split into opts.CellsX cells; the Y and Z cell counts are
// derived from the bounds aspect ratio so that cells are roughly cubic and
// are capped to opts.MaxCellsPerAxis. Each primitive is registered with
// every voxel its bbox overlaps.
func Build(prims []scene.Primitive, opts config.GridOptions) *Grid {
	g := &Grid{
		logger: log.New("grid"),
		prims:  append([]scene.Primitive(nil), prims...),
		dims:   [3]int{1, 1, 1},
	}

	start := time.Now()
	g.bounds = scene.List(g.prims).BBox().PadToMinimums(minBoundsSize)
	if !g.bounds.IsEmpty() {
		g.setupCells(opts)
	} else {
		g.cellSize = types.Vec3{1, 1, 1}
	}

	g.voxels = make([]Voxel, g.dims[0]*g.dims[1]*g.dims[2])
	for primIndex, prim := range g.prims {
		g.register(uint32(primIndex), prim.BBox())
	}
	buildTime := time.Since(start)

	g.stats = accel.Stats{
		Kind:       accel.Grid,
		Primitives: len(g.prims),
		Nodes:      len(g.voxels),
		Leaves:     len(g.voxels),
		BuildTime:  buildTime,
	}
	for _, voxel := range g.voxels {
		g.stats.References += len(voxel.Prims)
		if len(voxel.Prims) == 0 {
			g.stats.EmptyLeaves++
		}
	}

	g.logger.Debugf(
		"grid build time: %d ms, dims: %dx%dx%d, empty voxels: %d, refs: %d",
		buildTime.Nanoseconds()/1e6,
		g.dims[0], g.dims[1], g.dims[2], g.stats.EmptyLeaves, g.stats.References,
	)
	return g
}

func (g *Grid) setupCells(opts config.GridOptions) {
	size := g.bounds.Size()

	// Use the longest axis for the cell size if the X axis is flat. Flat
	// bounds have been padded, so anything up to twice the padding counts.
	baseAxis := types.XAxis
	if size[0] <= 2*minBoundsSize {
		baseAxis = g.bounds.LongestAxis()
	}
	cell := size[baseAxis] / float64(opts.CellsX)

	for axis := types.XAxis; axis <= types.ZAxis; axis++ {
		n := opts.CellsX
		if axis != baseAxis {
			n = int(math.Ceil(size[axis] / cell))
		}
		if n < 1 {
			n = 1
		}
		if n > opts.MaxCellsPerAxis {
			n = opts.MaxCellsPerAxis
		}
		g.dims[axis] = n
		g.cellSize[axis] = size[axis] / float64(n)
	}
}

// Push the primitive index into every voxel of the inclusive, clamped
// voxel range covered by bbox.
func (g *Grid) register(primIndex uint32, bbox types.AABB) {
	if bbox.IsEmpty() {
		return
	}

	lo := g.cellCoords(bbox.Min())
	hi := g.cellCoords(bbox.Max())
	for z := lo[2]; z <= hi[2]; z++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for x := lo[0]; x <= hi[0]; x++ {
				voxel := &g.voxels[g.index(x, y, z)]
				voxel.Prims = append(voxel.Prims, primIndex)
			}
		}
	}
}

// Get the clamped cell coordinates of a point.
func (g *Grid) cellCoords(p types.Vec3) [3]int {
	min := g.bounds.Min()
	var out [3]int
	for axis := 0; axis < 3; axis++ {
		out[axis] = clampIndex((p[axis]-min[axis])/g.cellSize[axis], g.dims[axis])
	}
	return out
}

func clampIndex(v float64, n int) int {
	if !(v >= 0) {
		return 0
	}
	if v >= float64(n) {
		return n - 1
	}
	return int(v)
}

func (g *Grid) index(x, y, z int) int {
	return x + g.dims[0]*(y+g.dims[1]*z)
}

// Walk the voxels pierced by the ray in order using a 3D-DDA and invoke
// visit for each one until it returns false.
//
// Axes with a zero direction component are never stepped. When the next
// boundary is crossed on several axes at once the step is taken along x,
// then y, then z.
func (g *Grid) Walk(ray types.Ray, rayT types.Interval, visit func(Cell) bool) {
	span, ok := g.bounds.Intersect(ray, rayT)
	if !ok {
		return
	}

	min := g.bounds.Min()
	cur := span.Min
	coords := g.cellCoords(ray.At(cur))

	var step [3]int
	var tMax, tDelta [3]float64
	for axis := 0; axis < 3; axis++ {
		d := ray.Direction[axis]
		switch {
		case d > 0:
			step[axis] = 1
			boundary := min[axis] + float64(coords[axis]+1)*g.cellSize[axis]
			tMax[axis] = (boundary - ray.Origin[axis]) / d
			tDelta[axis] = g.cellSize[axis] / d
		case d < 0:
			step[axis] = -1
			boundary := min[axis] + float64(coords[axis])*g.cellSize[axis]
			tMax[axis] = (boundary - ray.Origin[axis]) / d
			tDelta[axis] = -g.cellSize[axis] / d
		default:
			tMax[axis] = math.Inf(1)
			tDelta[axis] = math.Inf(1)
		}
	}

	for {
		cellExit := math.Min(tMax[0], math.Min(tMax[1], tMax[2]))
		cell := Cell{
			X:     coords[0],
			Y:     coords[1],
			Z:     coords[2],
			Index: g.index(coords[0], coords[1], coords[2]),
			Entry: cur,
			Exit:  math.Min(cellExit, span.Max),
		}
		if !visit(cell) || cellExit >= span.Max {
			return
		}

		var axis int
		switch {
		case tMax[0] <= tMax[1] && tMax[0] <= tMax[2]:
			axis = 0
		case tMax[1] <= tMax[2]:
			axis = 1
		default:
			axis = 2
		}

		coords[axis] += step[axis]
		if coords[axis] < 0 || coords[axis] >= g.dims[axis] {
			return
		}
		cur = tMax[axis]
		tMax[axis] += tDelta[axis]
	}
}

// Find the closest hit by walking the voxels along the ray. The walk stops
// at the first voxel whose exit lies at or past the best hit so far.
func (g *Grid) Hit(ray types.Ray, rayT types.Interval, rec *scene.HitRecord) bool {
	found := false
	closest := rayT.Max
	g.Walk(ray, rayT, func(cell Cell) bool {
		rec.TraversalSteps++
		for _, primIndex := range g.voxels[cell.Index].Prims {
			if g.prims[primIndex].Hit(ray, types.Interval{Min: rayT.Min, Max: closest}, rec) {
				found = true
				closest = rec.T
			}
		}
		return !(found && closest <= cell.Exit)
	})
	return found
}

// Get the primitives registered with the voxels that Hit would visit.
func (g *Grid) Candidates(ray types.Ray, rayT types.Interval) []scene.Primitive {
	var out []scene.Primitive
	seen := make(map[uint32]struct{})

	var rec scene.HitRecord
	found := false
	closest := rayT.Max
	g.Walk(ray, rayT, func(cell Cell) bool {
		for _, primIndex := range g.voxels[cell.Index].Prims {
			if _, ok := seen[primIndex]; !ok {
				seen[primIndex] = struct{}{}
				out = append(out, g.prims[primIndex])
			}
			if g.prims[primIndex].Hit(ray, types.Interval{Min: rayT.Min, Max: closest}, &rec) {
				found = true
				closest = rec.T
			}
		}
		return !(found && closest <= cell.Exit)
	})
	return out
}

// Get the grid bounds.
func (g *Grid) BBox() types.AABB {
	return g.bounds
}

// Get the grid bounds.
func (g *Grid) Bounds() types.AABB {
	return g.bounds
}

// Get the number of cells along each axis.
func (g *Grid) Dims() [3]int {
	return g.dims
}

// Get the cell dimensions.
func (g *Grid) CellSize() types.Vec3 {
	return g.cellSize
}

// Get the voxel at the given cell coordinates.
func (g *Grid) Voxel(x, y, z int) Voxel {
	return g.voxels[g.index(x, y, z)]
}

func (g *Grid) Stats() accel.Stats {
	return g.stats
}
