package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/raycast/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	structuresFlag := cli.StringFlag{
		Name:  "structures",
		Value: "",
		Usage: "comma-separated list of structures (linear, bvh, kdtree, grid); defaults to all",
	}

	app := cli.NewApp()
	app.Name = "raycast"
	app.Usage = "build and query ray acceleration structures"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load structure and query options from an ini file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "stats",
			Usage: "build acceleration structures and display their statistics",
			Description: `
Build the selected acceleration structures over the primitives of the
supplied wavefront obj files and display node, leaf and reference counts.

If no files are specified, a random scene of spheres and triangles is used.`,
			ArgsUsage: "[model1.obj model2.obj ...]",
			Flags:     append([]cli.Flag{structuresFlag}, cmd.SceneFlags()...),
			Action:    cmd.BuildStats,
		},
		{
			Name:  "bench",
			Usage: "trace random rays through acceleration structures",
			Description: `
Trace a batch of random rays (or the primary rays of a camera frame) through
each selected structure using a pool of tracers and compare the closest hits
against a brute force scan.`,
			ArgsUsage: "[model1.obj model2.obj ...]",
			Flags: append([]cli.Flag{
				structuresFlag,
				cli.IntFlag{
					Name:  "rays",
					Value: 100000,
					Usage: "number of random rays to trace",
				},
				cli.StringFlag{
					Name:  "camera",
					Usage: "trace the primary rays of a camera placed at x,y,z and looking at the scene center",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "camera frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "camera frame height",
				},
				cli.Float64Flag{
					Name:  "fov",
					Value: 45,
					Usage: "camera vertical field of view in degrees",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of tracers; defaults to the number of cpus",
				},
			}, cmd.SceneFlags()...),
			Action: cmd.Bench,
		},
		{
			Name:      "probe",
			Usage:     "trace a single ray and report the closest hit",
			ArgsUsage: "[model1.obj model2.obj ...]",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "structure, s",
					Usage: "acceleration structure to query (linear, bvh, kdtree, grid); overrides the config file",
				},
				cli.StringFlag{
					Name:  "origin",
					Value: "0,0,0",
					Usage: "ray origin as x,y,z",
				},
				cli.StringFlag{
					Name:  "dir",
					Value: "0,0,-1",
					Usage: "ray direction as x,y,z",
				},
			}, cmd.SceneFlags()...),
			Action: cmd.Probe,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(1)
	}
}
