package cmd

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"

	"github.com/achilleasa/raycast/scene"
	"github.com/achilleasa/raycast/tracer"
	"github.com/achilleasa/raycast/types"
	"github.com/achilleasa/raycast/world"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Hit distances closer than this are considered equal when comparing
// against the brute force results.
const benchTolerance = 1e-9

type benchRow struct {
	name       string
	buildTime  string
	stats      tracer.BatchStats
	mismatches int
}

// Trace a batch of random rays through each selected structure and compare
// the results against a brute force scan of the scene.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := loadOptions(ctx)
	if err != nil {
		return err
	}
	kinds, err := parseKinds(ctx.String("structures"))
	if err != nil {
		return err
	}
	list, err := loadScene(ctx)
	if err != nil {
		return err
	}

	rays, err := benchRays(ctx, list.BBox())
	if err != nil {
		return err
	}

	pool := tracer.NewPool(ctx.Int("workers"), tracer.PerfectScheduler())
	defer pool.Close()

	rayT := opts.Query.Interval()
	expResults, _, err := pool.Trace(list, rays, rayT)
	if err != nil {
		return err
	}

	rows := make([]benchRow, 0, len(kinds))
	for _, kind := range kinds {
		structure, err := world.BuildStructure(kind, list, opts)
		if err != nil {
			return err
		}

		results, stats, err := pool.Trace(structure, rays, rayT)
		if err != nil {
			return err
		}

		row := benchRow{
			name:      kind.String(),
			buildTime: structure.Stats().BuildTime.String(),
			stats:     stats,
		}
		for index, res := range results {
			exp := expResults[index]
			if res.Hit != exp.Hit || (res.Hit && math.Abs(res.Record.T-exp.Record.T) > benchTolerance) {
				row.mismatches++
			}
		}
		if row.mismatches != 0 {
			logger.Warningf("structure %s disagrees with brute force for %d rays", kind, row.mismatches)
		}
		rows = append(rows, row)
	}

	displayBenchStats(len(rays), rows)
	return nil
}

// Generate the primary rays of a camera frame if a camera position is
// specified; otherwise generate random rays that start inside the scene bounds.
func benchRays(ctx *cli.Context, bounds types.AABB) ([]types.Ray, error) {
	if ctx.IsSet("camera") {
		pos, err := parseVec3(ctx.String("camera"))
		if err != nil {
			return nil, err
		}
		cam := scene.NewCamera(ctx.Float64("fov"))
		cam.Position = pos
		cam.LookAt = bounds.Center()
		return cam.Rays(ctx.Int("width"), ctx.Int("height")), nil
	}

	rng := rand.New(rand.NewSource(ctx.Int64("seed")))
	rays := make([]types.Ray, ctx.Int("rays"))
	for index := range rays {
		rays[index] = scene.RandomRay(rng, bounds)
	}
	return rays, nil
}

func displayBenchStats(numRays int, rows []benchRow) {
	perRay := func(v uint64) string {
		if numRays == 0 {
			return "0"
		}
		return fmt.Sprintf("%.2f", float64(v)/float64(numRays))
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader([]string{"Structure", "Hits", "Mismatches", "Tests/ray", "Steps/ray", "Build time", "Trace time"})
	for _, row := range rows {
		table.Append([]string{
			row.name,
			fmt.Sprintf("%d", row.stats.Hits),
			fmt.Sprintf("%d", row.mismatches),
			perRay(row.stats.IntersectionTests),
			perRay(row.stats.TraversalSteps),
			row.buildTime,
			row.stats.TraceTime.String(),
		})
	}
	table.Render()
	logger.Noticef("traced %d rays\n%s", numRays, buf.String())
}
