package main

import (
	"context"
	"fmt"
	"os"

	"co2log/core"
	"co2log/tui"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func fetchCmd() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Download the data log from the device and display its sessions",
		Flags: append(transferFlags(),
			&cli.StringFlag{
				Name:  "o",
				Usage: "Output format: terminal, json, html",
				Value: "terminal",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Open the interactive session viewer",
			},
			&cli.IntFlag{
				Name:  "max-points",
				Usage: "Thin each session to at most this many samples for display",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			conn, err := connect(cmd)
			if err != nil {
				return fmt.Errorf("connect: %s", describeError(err))
			}
			defer conn.Disconnect()

			opts := transferOptions(cmd)
			sessions, err := fetchSessions(ctx, conn, opts)
			if err != nil {
				return fmt.Errorf("fetch: %s", describeError(err))
			}
			if err := thin(cmd, sessions); err != nil {
				return err
			}

			if len(sessions) == 0 {
				log.Info("device has no logged data yet")
			} else {
				log.Info("log downloaded",
					"sessions", len(sessions),
					"samples", core.TotalSamples(sessions))
			}

			if cmd.Bool("tui") {
				refetch := func() ([]core.Session, error) {
					s, err := fetchSessions(context.Background(), conn, opts)
					if err != nil {
						return nil, fmt.Errorf("%s", describeError(err))
					}
					return s, nil
				}
				return tui.Run(refetch, sessions)
			}

			rnd, err := newApp().renderer(cmd.String("o"))
			if err != nil {
				return err
			}
			return rnd.Render(os.Stdout, sessions)
		},
	}
}
