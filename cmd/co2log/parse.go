package main

import (
	"context"
	"fmt"
	"os"

	"co2log/core"
	"co2log/shell"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func parseCmd() *cli.Command {
	return &cli.Command{
		Name:  "parse",
		Usage: "Segment a saved transcript or CSV file without a device",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Path to a saved shell transcript (echo, styling, prompt and all)",
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Path to an already-sanitized CSV file",
			},
			&cli.BoolFlag{
				Name:  "lenient-prompt",
				Usage: "Accept a bare \">\" as the end-of-transfer prompt",
			},
			&cli.StringFlag{
				Name:  "o",
				Usage: "Output format: terminal, json, html",
				Value: "terminal",
			},
			&cli.IntFlag{
				Name:  "max-points",
				Usage: "Thin each session to at most this many samples for display",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			csv, err := loadCSV(cmd)
			if err != nil {
				return err
			}

			sessions := core.Sessions(csv)
			if err := thin(cmd, sessions); err != nil {
				return err
			}
			if len(sessions) == 0 {
				log.Info("no logged data found in input")
			}

			rnd, err := newApp().renderer(cmd.String("o"))
			if err != nil {
				return err
			}
			return rnd.Render(os.Stdout, sessions)
		},
	}
}

// loadCSV reads the sanitized CSV payload from either input flavor. A saved
// transcript goes through the same extractor the live transfer uses.
func loadCSV(cmd *cli.Command) (string, error) {
	file := cmd.String("file")
	csvPath := cmd.String("csv")

	switch {
	case file != "" && csvPath != "":
		return "", fmt.Errorf("only one of --file or --csv may be specified")
	case csvPath != "":
		data, err := os.ReadFile(csvPath)
		if err != nil {
			return "", fmt.Errorf("read csv: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
		ex := shell.NewExtractor(shell.Options{
			AllowBarePrompt: cmd.Bool("lenient-prompt"),
		})
		done, err := ex.Feed(string(data))
		if err != nil {
			return "", fmt.Errorf("parse transcript: %s", describeError(err))
		}
		if !done {
			return "", fmt.Errorf("parse transcript: %s", describeError(shell.ErrMalformedResponse))
		}
		return ex.CSV(), nil
	default:
		return "", fmt.Errorf("one of --file or --csv is required")
	}
}
