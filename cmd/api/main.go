package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

const name = "recsvc"

// overridden during build with ldflags
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    name,
		Usage:   "recommendation request service",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override LOG_LEVEL (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			seedCmd(),
			tokenCmd(),
		},
		Action: runServe,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
