// Command decompressDouble reads a relfloat blob and writes the decompressed float64
// samples.
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
		Name:      "decompressDouble",
		Usage:     "decompress a relfloat blob into a raw float64 file",
		ArgsUsage: "<in.bin> <out.f64>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: decompressDouble <in.bin> <out.f64>", 1)
			}

			blob, err := cliio.ReadBlob(c.Args().Get(0))
			if err != nil {
				return cli.Exit(err, 1)
			}

			result, err := relfloat.Decompress(blob)
			if err != nil {
				return cli.Exit(fmt.Errorf("decompressing: %w", err), 1)
			}

			xs := result.Float64
			if result.Precision == relfloat.Single {
				xs = make([]float64, len(result.Float32))
				for i, v := range result.Float32 {
					xs[i] = float64(v)
				}
			}

			if err := cliio.WriteFloat64File(c.Args().Get(1), xs); err != nil {
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
