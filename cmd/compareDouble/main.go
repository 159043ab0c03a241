// Command compareDouble reports the mean and max absolute relative error between two
// raw float64 files.
package main

import (
	"fmt"
	"os"

	"github.com/soltveit/relfloat/internal/cliio"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "compareDouble",
		Usage:     "report mean and max |%err| between two raw float64 files",
		ArgsUsage: "[-v] <a> <b>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "v", Usage: "print each sample pair"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("usage: compareDouble [-v] <a> <b>", 1)
			}

			a, err := cliio.ReadFloat64File(c.Args().Get(0))
			if err != nil {
				return cli.Exit(err, 1)
			}
			b, err := cliio.ReadFloat64File(c.Args().Get(1))
			if err != nil {
				return cli.Exit(err, 1)
			}

			if c.Bool("v") {
				for i := range a {
					if i >= len(b) {
						break
					}
					fmt.Printf("sample %d: a=%v b=%v\n", i, a[i], b[i])
				}
			}

			mean, max, err := cliio.CompareStats(a, b)
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
