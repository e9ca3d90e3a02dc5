package main

import (
	"fmt"
	"os"

	"github.com/pgadula/raytracing/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracing"
	app.Usage = "render scenes of spheres, planes and cubes with a recursive path tracer"
	app.Version = "0.1.0"
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
			Name:  "scenes",
			Value: "scenes",
			Usage: "directory searched for JSON scene files",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render a built-in scene, a file:<name> scene from the scenes directory or a
JSON scene file given by path. Each frame shades every pixel once and adds the
result to the previous frames; the accumulated image is written after the
last frame.

Flags that are not given keep the values stored in the scene.`,
			ArgsUsage: "[scene]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "depth, d",
					Usage: "reflection depth budget; -1 renders emission only",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel per frame",
				},
				cli.Float64Flag{
					Name:  "intensity",
					Usage: "scale applied to each frame before accumulation",
				},
				cli.IntFlag{
					Name:  "frames, n",
					Value: 10,
					Usage: "number of frames to accumulate",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "number of render workers (0 uses the CPU count)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 32,
					Usage: "tile edge length in pixels",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "base random seed",
				},
				cli.Float64Flag{
					Name:  "pointer-x",
					Usage: "pointer x position in pixels for scenes with a pointer binding",
				},
				cli.Float64Flag{
					Name:  "pointer-y",
					Usage: "pointer y position in pixels for scenes with a pointer binding",
				},
				cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "integer upscale factor applied before saving",
				},
				cli.BoolFlag{
					Name:  "smooth",
					Usage: "use Catmull-Rom filtering when upscaling",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output image (.png, .webp or .tga); defaults to output/<scene>/render_<timestamp>.png",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list available scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:   "sysinfo",
			Usage:  "show host cpu and memory details",
			Action: cmd.ShowSystemInfo,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
