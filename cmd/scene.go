package cmd

import (
	"math/rand"

	"github.com/achilleasa/raycast/asset/reader"
	"github.com/achilleasa/raycast/scene"
	"github.com/urfave/cli"
)

// Get the flags shared by all commands that operate on a scene.
func SceneFlags() []cli.Flag {
	return []cli.Flag{
		cli.Int64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "random seed for generated scenes and rays",
		},
		cli.IntFlag{
			Name:  "spheres",
			Value: 500,
			Usage: "number of spheres in a generated scene",
		},
		cli.IntFlag{
			Name:  "triangles",
			Value: 500,
			Usage: "number of triangles in a generated scene",
		},
		cli.Float64Flag{
			Name:  "scale",
			Value: 1.0,
			Usage: "scale applied to vertices of loaded models",
		},
	}
}

// Load the primitives of all obj files passed as arguments. If no files are
// specified a random scene is generated instead.
func loadScene(ctx *cli.Context) (scene.List, error) {
	if ctx.NArg() == 0 {
		opts := scene.DefaultRandomOptions()
		opts.Spheres = ctx.Int("spheres")
		opts.Triangles = ctx.Int("triangles")
		list := scene.RandomScene(rand.New(rand.NewSource(ctx.Int64("seed"))), opts)
		logger.Noticef("generated random scene with %d spheres and %d triangles", opts.Spheres, opts.Triangles)
		return list, nil
	}

	var list scene.List
	readOpts := reader.ReadOptions{Scale: ctx.Float64("scale")}
	for idx := 0; idx < ctx.NArg(); idx++ {
		mesh, err := reader.ReadFile(ctx.Args().Get(idx), readOpts)
		if err != nil {
			return nil, err
		}
		list = append(list, mesh.Primitives()...)
	}
	return list, nil
}
