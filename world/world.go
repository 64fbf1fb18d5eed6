package world

import (
	"fmt"

	"github.com/achilleasa/raycast/accel"
	"github.com/achilleasa/raycast/accel/bvh"
	"github.com/achilleasa/raycast/accel/grid"
	"github.com/achilleasa/raycast/accel/kdtree"
	"github.com/achilleasa/raycast/config"
	"github.com/achilleasa/raycast/log"
	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

// World owns a primitive list and the acceleration structure built over it.
// Until Build is called (and after any Add) queries fall back to a brute
// force scan of the primitive list.
//
// A built world is read-only and safe for concurrent queries. Add and Build
// must not run concurrently with queries.
type World struct {
	logger log.Logger
	opts   config.Options

	objects   scene.List
	structure accel.Structure
}

// Create an empty world.
func New(opts config.Options) *World {
	return &World{
		logger: log.New("world"),
		opts:   opts,
	}
}

// Append primitives to the world. Any previously built structure is
// discarded.
func (w *World) Add(prims ...scene.Primitive) {
	w.objects = append(w.objects, prims...)
	w.structure = nil
}

// Get the world primitives.
func (w *World) Objects() scene.List {
	return w.objects
}

// Get the world options.
func (w *World) Options() config.Options {
	return w.opts
}

// Build the configured acceleration structure over the world primitives.
func (w *World) Build() error {
	structure, err := BuildStructure(w.opts.Structure, w.objects, w.opts)
	if err != nil {
		return err
	}

	st := structure.Stats()
	w.logger.Infof(
		"built %s over %d primitives in %s (nodes: %d, leafs: %d, refs: %d, max depth: %d)",
		st.Kind, st.Primitives, st.BuildTime, st.Nodes, st.Leaves, st.References, st.MaxDepth,
	)
	w.structure = structure
	return nil
}

// Get the built acceleration structure.
func (w *World) Structure() (accel.Structure, error) {
	if w.structure == nil {
		return nil, ErrNotBuilt
	}
	return w.structure, nil
}

// Find the closest hit among the world primitives.
func (w *World) Hit(ray types.Ray, rayT types.Interval, rec *scene.HitRecord) bool {
	if w.structure != nil {
		return w.structure.Hit(ray, rayT, rec)
	}
	return w.objects.Hit(ray, rayT, rec)
}

// Get the union of the world primitive bounding boxes.
func (w *World) BBox() types.AABB {
	if w.structure != nil {
		return w.structure.BBox()
	}
	return w.objects.BBox()
}

// Get the primitives the structure would consider for the ray. Without a
// built structure every primitive is a candidate.
func (w *World) Candidates(ray types.Ray, rayT types.Interval) []scene.Primitive {
	if w.structure != nil {
		return w.structure.Candidates(ray, rayT)
	}
	return append([]scene.Primitive(nil), w.objects...)
}

// Get the stats of the built structure. Without a built structure the
// stats describe a brute force scan.
func (w *World) Stats() accel.Stats {
	if w.structure != nil {
		return w.structure.Stats()
	}
	return accel.Stats{
		Kind:       accel.Linear,
		Primitives: len(w.objects),
		References: len(w.objects),
	}
}

// Run a closest hit query. Returns nil and false if nothing was hit.
func (w *World) Query(ray types.Ray, rayT types.Interval) (*scene.HitRecord, bool) {
	rec := &scene.HitRecord{}
	if !w.Hit(ray, rayT, rec) {
		return nil, false
	}
	return rec, true
}

// Build an acceleration structure of the given kind.
func BuildStructure(kind accel.Kind, prims []scene.Primitive, opts config.Options) (accel.Structure, error) {
	opts.Structure = kind
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	switch kind {
	case accel.Linear:
		return newLinear(prims), nil
	case accel.BVH:
		return bvh.Build(prims), nil
	case accel.KdTree:
		return kdtree.Build(prims, opts.KdTree), nil
	case accel.Grid:
		return grid.Build(prims, opts.Grid), nil
	}
	return nil, fmt.Errorf("%w: %s", config.ErrUnknownStructure, kind)
}
