// Command wss reports the working-set size of a binary access trace.
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
		Name:  "wss",
		Usage: "report the working-set size of a trace",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "trace file path", Required: true},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	path := c.String("path")
	logger := log.New(os.Stderr, "", log.LstdFlags)

	logger.Printf("wss: %s", path)

	result, err := mrc.ComputeWSS(path, logger)
	if err != nil {
		return err
	}

	fmt.Printf("WSS: %d bytes\n", result.WSS)
	fmt.Printf("Naive WSS: %d bytes\n", result.NaiveWSS)
	return nil
}
