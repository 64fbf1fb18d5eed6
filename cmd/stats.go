package cmd

import (
	"bytes"

	"github.com/achilleasa/raycast/accel"
	"github.com/achilleasa/raycast/world"
	"github.com/urfave/cli"
)

// Build the selected acceleration structures over a scene and display
// their statistics.
func BuildStats(ctx *cli.Context) error {
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

	stats := make([]accel.Stats, 0, len(kinds))
	for _, kind := range kinds {
		structure, err := world.BuildStructure(kind, list, opts)
		if err != nil {
			return err
		}
		stats = append(stats, structure.Stats())
	}

	var buf bytes.Buffer
	accel.StatsTable(&buf, stats...)
	logger.Noticef("structure statistics\n%s", buf.String())
	return nil
}
