package world

import (
	"time"

	"github.com/achilleasa/raycast/accel"
	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
)

// A structure that tests every primitive.
type linear struct {
	list  scene.List
	stats accel.Stats
}

func newLinear(prims []scene.Primitive) *linear {
	start := time.Now()
	l := &linear{list: append(scene.List(nil), prims...)}
	l.stats = accel.Stats{
		Kind:       accel.Linear,
		Primitives: len(l.list),
		Nodes:      1,
		Leaves:     1,
		References: len(l.list),
		BuildTime:  time.Since(start),
	}
	if len(l.list) == 0 {
		l.stats.EmptyLeaves = 1
	}
	return l
}

func (l *linear) Hit(ray types.Ray, rayT types.Interval, rec *scene.HitRecord) bool {
	rec.TraversalSteps++
	return l.list.Hit(ray, rayT, rec)
}

func (l *linear) BBox() types.AABB {
	return l.list.BBox()
}

// Every primitive is a candidate.
func (l *linear) Candidates(ray types.Ray, rayT types.Interval) []scene.Primitive {
	return append([]scene.Primitive(nil), l.list...)
}

func (l *linear) Stats() accel.Stats {
	return l.stats
}
