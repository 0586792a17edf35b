package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"co2log/core"
	"co2log/manifest"
	htmlrender "co2log/render/html"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

const manifestName = "captures.json"

func exportCmd() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Fetch the log and write an HTML report plus a capture index",
		Flags: append(transferFlags(),
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Export from a saved CSV file instead of the device",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory to write the report and capture index into",
				Value: ".",
			},
			&cli.IntFlag{
				Name:  "max-points",
				Usage: "Thin each session to at most this many samples for display",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var sessions []core.Session
			if csvPath := cmd.String("csv"); csvPath != "" {
				data, err := os.ReadFile(csvPath)
				if err != nil {
					return fmt.Errorf("read csv: %w", err)
				}
				sessions = core.Sessions(string(data))
			} else {
				conn, err := connect(cmd)
				if err != nil {
					return fmt.Errorf("connect: %s", describeError(err))
				}
				defer conn.Disconnect()

				sessions, err = fetchSessions(ctx, conn, transferOptions(cmd))
				if err != nil {
					return fmt.Errorf("fetch: %s", describeError(err))
				}
			}
			if err := thin(cmd, sessions); err != nil {
				return err
			}

			now := time.Now()
			dir := cmd.String("dir")
			name := fmt.Sprintf("co2-%s.html", now.Format("2006-01-02-150405"))

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			f, err := os.Create(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			if err := htmlrender.New().Render(f, sessions); err != nil {
				f.Close()
				return fmt.Errorf("render report: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			mfPath := filepath.Join(dir, manifestName)
			mf, err := manifest.ReadFile(mfPath)
			if err != nil {
				return fmt.Errorf("read capture index: %w", err)
			}
			mf.Upsert(manifest.Entry{
				File:       name,
				CapturedAt: now,
				Sessions:   len(sessions),
				Samples:    core.TotalSamples(sessions),
			})
			if err := mf.WriteFile(mfPath); err != nil {
				return fmt.Errorf("write capture index: %w", err)
			}

			log.Info("report written",
				"file", filepath.Join(dir, name),
				"sessions", len(sessions),
				"samples", core.TotalSamples(sessions))
			return nil
		},
	}
}
