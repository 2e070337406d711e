// Command accurate brute-force simulates one cache policy at evenly spaced
// cache sizes up to a working-set size, writing the resulting curve as a
// baseline to compare Kosmo and MiniSim against.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/IvanBrykalov/kosmo/mrc"
)

func main() {
	app := &cli.App{
		Name:  "accurate",
		Usage: "brute-force simulate a miss-ratio curve",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "trace file path", Required: true},
			&cli.Uint64Flag{Name: "wss", Aliases: []string{"w"}, Usage: "working-set size in bytes", Required: true},
			&cli.StringFlag{Name: "policy", Aliases: []string{"e"}, Usage: "lru|lfu|fifo|2q-<kin>-<kout>|lrfu-<p>-<lambda>", Required: true},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output curve CSV path", Required: true},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	path := c.String("path")
	wss := c.Uint64("wss")
	output := c.String("output")
	logger := log.New(os.Stderr, "", log.LstdFlags)

	policy, err := mrc.ParseCachePolicy(c.String("policy"))
	if err != nil {
		return err
	}

	logger.Printf("accurate: %s (policy=%s, wss=%d)", path, policy, wss)

	crv, err := mrc.RunAccurate(path, wss, policy, output, logger)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d curve points to %s\n", crv.Len(), output)
	return nil
}
