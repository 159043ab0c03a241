// Command compressFloat reads a raw float32 file and writes its compressed blob.
package main

import (
	"fmt"
	"os"

	"github.com/soltveit/relfloat"
	"github.com/soltveit/relfloat/internal/cliio"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "compressFloat",
		Usage:     "compress a raw float32 file into a relfloat blob",
		ArgsUsage: "<in.f32> <out.bin>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "L", Usage: "HALF_PERCENT accuracy tier (default)"},
			&cli.BoolFlag{Name: "M", Usage: "QUARTER_PERCENT accuracy tier"},
			&cli.BoolFlag{Name: "H", Usage: "TENTH_PERCENT accuracy tier"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: compressFloat [-L|-M|-H] <in.f32> <out.bin>", 1)
			}

			tier, err := cliio.TierFromFlags(c.Bool("L"), c.Bool("M"), c.Bool("H"))
			if err != nil {
				return cli.Exit(err, 1)
			}

			xs, err := cliio.ReadFloat32File(c.Args().Get(0))
			if err != nil {
				return cli.Exit(err, 1)
			}

			blob, err := relfloat.CompressF32(xs, tier)
			if err != nil {
				return cli.Exit(fmt.Errorf("compressing: %w", err), 1)
			}

			if err := cliio.WriteBlob(c.Args().Get(1), blob); err != nil {
				return cli.Exit(err, 1)
			}

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
