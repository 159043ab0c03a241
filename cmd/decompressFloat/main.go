// Command decompressFloat reads a relfloat blob and writes the decompressed float32
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
		Name:      "decompressFloat",
		Usage:     "decompress a relfloat blob into a raw float32 file",
		ArgsUsage: "<in.bin> <out.f32>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: decompressFloat <in.bin> <out.f32>", 1)
			}

			blob, err := cliio.ReadBlob(c.Args().Get(0))
			if err != nil {
				return cli.Exit(err, 1)
			}

			result, err := relfloat.Decompress(blob)
			if err != nil {
				return cli.Exit(fmt.Errorf("decompressing: %w", err), 1)
			}

			xs := result.Float32
			if result.Precision == relfloat.Double {
				xs = make([]float32, len(result.Float64))
				for i, v := range result.Float64 {
					xs[i] = float32(v)
				}
			}

			if err := cliio.WriteFloat32File(c.Args().Get(1), xs); err != nil {
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
