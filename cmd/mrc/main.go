// Command mrc drives Kosmo or MiniSim over a trace and reports a miss-ratio
// curve, optionally exposing Prometheus instrumentation and comparing
// against a baseline accurate curve.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/IvanBrykalov/kosmo/metrics/prom"
	"github.com/IvanBrykalov/kosmo/mrc"
)

func main() {
	app := &cli.App{
		Name:  "mrc",
		Usage: "build a miss-ratio curve with Kosmo or MiniSim",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "trace file path", Required: true},
			&cli.Uint64Flag{Name: "wss", Aliases: []string{"w"}, Usage: "working-set size in bytes", Required: true},
			&cli.Uint64Flag{Name: "shards-t", Aliases: []string{"t"}, Usage: "SHARDS initial sampling threshold"},
			&cli.UintFlag{Name: "shards-s", Aliases: []string{"s"}, Usage: "SHARDS fixed-size sample-set bound"},
			&cli.StringFlag{Name: "kosmo-policy", Aliases: []string{"k"}, Usage: "lfu|fifo|lru|2q|lrfu"},
			&cli.StringFlag{Name: "minisim-policy", Aliases: []string{"m"}, Usage: "lru|lfu|fifo|2q-<kin>-<kout>|lrfu-<p>-<lambda>"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output curve CSV path", Required: true},
			&cli.StringFlag{Name: "accurate-path", Aliases: []string{"a"}, Usage: "accurate curve CSV path to compare against"},
			&cli.StringFlag{Name: "run-type", Aliases: []string{"r"}, Usage: "memory|throughput", Required: true},
			&cli.StringFlag{Name: "metrics-addr", Usage: "serve Prometheus metrics at addr (e.g. :8080); empty = disabled"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := parseConfig(c)
	if err != nil {
		return err
	}

	if addr := c.String("metrics-addr"); addr != "" {
		adapter := prom.New(nil, "kosmo", "mrc", nil)
		cfg.Metrics = adapter

		http.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.Printf("metrics: serving at %s", addr)
			logger.Println(http.ListenAndServe(addr, nil))
		}()
	}

	logger.Printf("mrc: %s", cfg.Path)

	crv, stats, err := mrc.Run(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %d curve points to %s\n", crv.Len(), cfg.Output)
	if stats.HasMAE {
		fmt.Printf("MAE: %v\n", stats.MAE)
	}

	switch cfg.RunType {
	case mrc.RunMemory:
		fmt.Printf("memory usage: %d bytes\n", stats.MemoryHWMBytes)
	case mrc.RunThroughput:
		fmt.Printf("throughput: %d accesses/ms\n", stats.ThroughputPerMs)
	}

	return nil
}

func parseConfig(c *cli.Context) (mrc.Config, error) {
	cfg := mrc.Config{
		Path:         c.String("path"),
		WSS:          c.Uint64("wss"),
		Output:       c.String("output"),
		AccuratePath: c.String("accurate-path"),
	}

	runType, err := mrc.ParseRunType(c.String("run-type"))
	if err != nil {
		return mrc.Config{}, err
	}
	cfg.RunType = runType

	if c.IsSet("shards-t") {
		t := c.Uint64("shards-t")
		cfg.ShardsT = &t
	}
	if c.IsSet("shards-s") {
		s := uint32(c.Uint("shards-s"))
		cfg.ShardsS = &s
	}

	kosmoValue := c.String("kosmo-policy")
	minisimValue := c.String("minisim-policy")

	switch {
	case kosmoValue != "" && minisimValue != "":
		return mrc.Config{}, fmt.Errorf("you may not configure both --kosmo-policy and --minisim-policy")
	case kosmoValue != "":
		p, err := mrc.ParseKosmoPolicy(kosmoValue)
		if err != nil {
			return mrc.Config{}, err
		}
		cfg.KosmoPolicy = &p
	case minisimValue != "":
		p, err := mrc.ParseCachePolicy(minisimValue)
		if err != nil {
			return mrc.Config{}, err
		}
		cfg.MinisimPolicy = &p
	default:
		return mrc.Config{}, fmt.Errorf("you must configure one of --kosmo-policy or --minisim-policy")
	}

	return cfg, nil
}
