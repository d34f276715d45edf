// bsdftool creates, converts and inspects tabular BSDF files.
//
// Usage:
//
//	bsdftool [-v|-vv] tabulate [options] out.bsdg
//	bsdftool [-v|-vv] convert [options] in.bsdg out.ddr
//	bsdftool [-v|-vv] info in.bsdg ...
//	bsdftool [-v|-vv] preview [options] in.bsdg out.j2k
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "bsdftool"
	app.Usage = "create, convert and inspect tabular BSDF data"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "tabulate",
			Usage: "tabulate an analytic reflectance model into a grid file",
			Description: `
Evaluate a reflectance model at the direction pair of every cell of a new
grid and write the result in the binary grid format.`,
			ArgsUsage: "out.bsdg",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "model, m",
					Value: "lambertian",
					Usage: "model: lambertian, transmission, blinn-phong or ggx",
				},
				cli.StringFlag{
					Name:  "coords, c",
					Value: "specular",
					Usage: "coordinate system: spherical, specular or half-difference",
				},
				cli.Float64Flag{
					Name:  "red",
					Value: 0.8,
					Usage: "red reflectance",
				},
				cli.Float64Flag{
					Name:  "green",
					Value: 0.8,
					Usage: "green reflectance",
				},
				cli.Float64Flag{
					Name:  "blue",
					Value: 0.8,
					Usage: "blue reflectance",
				},
				cli.Float64Flag{
					Name:  "shininess",
					Value: 50,
					Usage: "Blinn-Phong exponent",
				},
				cli.Float64Flag{
					Name:  "roughness",
					Value: 0.2,
					Usage: "GGX roughness",
				},
				cli.Float64Flag{
					Name:  "ior",
					Value: 1.5,
					Usage: "GGX refractive index",
				},
				cli.IntSliceFlag{
					Name:  "samples, n",
					Value: &cli.IntSlice{},
					Usage: "samples per axis, given four times (default 10, 1, 91, 73)",
				},
				cli.Float64Flag{
					Name:  "max-value",
					Value: 1000,
					Usage: "clamp tabulated values to this maximum",
				},
				cli.BoolFlag{
					Name:  "btdf",
					Usage: "tabulate transmission instead of reflection",
				},
				cli.BoolFlag{
					Name:  "mono",
					Usage: "store the channel mean instead of RGB",
				},
				cli.StringFlag{
					Name:  "compression",
					Value: "zlib+shuffle",
					Usage: "spectra compression: none, rle, zlib or zlib+shuffle",
				},
			},
			Action: Tabulate,
		},
		{
			Name:  "convert",
			Usage: "convert a grid file to DDR",
			Description: `
Validate the grid, convert it to specular coordinates, arrange it for
rendering and write it as DDR text. With --grid the arranged data is written
in the binary grid format instead.`,
			ArgsUsage: "in.bsdg out.ddr",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "btdf",
					Usage: "the input holds transmission data",
				},
				cli.BoolFlag{
					Name:  "grid",
					Usage: "write the arranged data as a grid file",
				},
			},
			Action: Convert,
		},
		{
			Name:      "info",
			Usage:     "display grid file information",
			ArgsUsage: "in.bsdg ...",
			Action:    ShowInfo,
		},
		{
			Name:  "preview",
			Usage: "write one slice of a grid as a JPEG 2000 image",
			Description: `
Write the outgoing-angle slice at one incoming direction and wavelength as a
16-bit grayscale JPEG 2000 codestream, with axis 2 along y and axis 3
along x.`,
			ArgsUsage: "in.bsdg out.j2k",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "in-theta",
					Usage: "axis 0 index",
				},
				cli.IntFlag{
					Name:  "in-phi",
					Usage: "axis 1 index",
				},
				cli.IntFlag{
					Name:  "wavelength, w",
					Usage: "wavelength index",
				},
				cli.Float64Flag{
					Name:  "scale, s",
					Value: 1,
					Usage: "multiply values by this factor before quantizing",
				},
			},
			Action: Preview,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bsdftool: %v\n", err)
		os.Exit(1)
	}
}
