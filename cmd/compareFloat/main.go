// Command compareFloat reports the mean and max absolute relative error between two
// raw float32 files.
package main

import (
	"fmt"
	"os"

	"github.com/soltveit/relfloat/internal/cliio"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "compareFloat",
		Usage:     "report mean and max |%err| between two raw float32 files",
		ArgsUsage: "[-v] <a> <b>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "v", Usage: "print each sample pair"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: compareFloat [-v] <a> <b>", 1)
			}

			a, err := cliio.ReadFloat32File(c.Args().Get(0))
			if err != nil {
				return cli.Exit(err, 1)
			}
			b, err := cliio.ReadFloat32File(c.Args().Get(1))
			if err != nil {
				return cli.Exit(err, 1)
			}

			af := make([]float64, len(a))
			bf := make([]float64, len(b))
			for i, v := range a {
				af[i] = float64(v)
			}
			for i, v := range b {
				bf[i] = float64(v)
			}

			if c.Bool("v") {
				for i := range af {
					if i >= len(bf) {
						break
					}
					fmt.Printf("sample %d: a=%v b=%v\n", i, af[i], bf[i])
				}
			}

			mean, max, err := cliio.CompareStats(af, bf)
			if err != nil {
				return cli.Exit(err, 1)
			}

			fmt.Printf("mean |%%err| = %v\n", mean*100)
			fmt.Printf("max  |%%err| = %v\n", max*100)

			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
