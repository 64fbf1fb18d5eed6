package cmd

import (
	"errors"

	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/types"
	"github.com/achilleasa/raycast/world"
	"github.com/urfave/cli"
)

// Trace a single ray through the configured structure and report the
// closest hit.
func Probe(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := loadOptions(ctx)
	if err != nil {
		return err
	}
	origin, err := parseVec3(ctx.String("origin"))
	if err != nil {
		return err
	}
	dir, err := parseVec3(ctx.String("dir"))
	if err != nil {
		return err
	}
	if dir.LenSq() == 0 {
		return errors.New("probe direction must not be the zero vector")
	}

	list, err := loadScene(ctx)
	if err != nil {
		return err
	}

	w := world.New(opts)
	w.Add(list...)
	if err = w.Build(); err != nil {
		return err
	}

	var rec scene.HitRecord
	if !w.Hit(types.NewRay(origin, dir), opts.Query.Interval(), &rec) {
		logger.Noticef("ray missed all %d primitives (tests: %d, steps: %d)", len(list), rec.IntersectionTests, rec.TraversalSteps)
		return nil
	}

	logger.Noticef(
		"hit at t=%g point=%v normal=%v front=%t material=%v (tests: %d, steps: %d)",
		rec.T, rec.Point, rec.Normal, rec.FrontFace, rec.Material, rec.IntersectionTests, rec.TraversalSteps,
	)
	return nil
}
