// Command watershed segments a stack of 2D slice images into catchment-basin
// objects and writes a report plus colored label slices.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "watershed: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "watershed",
		Usage: "rainfall watershed segmentation of a stack of 2D slices",
		Commands: []*cli.Command{
			{
				Name:  "segment",
				Usage: "segment the slices of a directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "directory containing the 2D slices",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "YAML configuration file (defaults apply when absent)",
						Value:   "watershed.yaml",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "directory for the report and label slices",
						Value:   "watershed_output",
					},
					&cli.BoolFlag{
						Name:  "minima-only",
						Usage: "only report the local minima",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "log every pipeline stage",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadConfig(c.String("config"))
					if err != nil {
						return err
					}
					if c.Bool("minima-only") {
						cfg.Segmentation.ExitWithMinimaOnly = true
					}
					if c.Bool("verbose") {
						cfg.Output.Verbose = true
					}
					_, err = runSegment(c.Context, runOptions{
						InputDir:  c.String("input"),
						OutputDir: c.String("output"),
						Config:    cfg,
					})
					return err
				},
			},
			{
				Name:      "init-config",
				Usage:     "write a default configuration file",
				ArgsUsage: "PATH",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						path = "watershed.yaml"
					}
					return config.CreateDefaultConfigFile(path)
				},
			},
		},
	}
}
