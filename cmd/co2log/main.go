package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func main() {
	root := &cli.Command{
		Name:  "co2log",
		Usage: "Pull the CSV data log off a USB CO2 logger and chart its logging sessions",
		Description: `
   ___ ___ ___ _
  / __/ _ \_  ) |___  __ _
 | (_| (_) / /| / _ \/ _' |
  \___\___/___|_\___/\__, |
                     |___/

 Reads the logger's serial shell, segments the log into sessions,
 and renders them to the terminal, a TUI, JSON, or HTML.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			fetchCmd(),
			parseCmd(),
			portsCmd(),
			exportCmd(),
			serveCmd(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
