package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"co2log/core"
	htmlrender "co2log/render/html"
	jsonrender "co2log/render/json"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Fetch the log once and serve the session charts for browser viewing",
		Flags: append(transferFlags(),
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Serve a saved CSV file instead of fetching from the device",
			},
			&cli.IntFlag{
				Name:  "http-port",
				Usage: "Port to listen on",
				Value: 8080,
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

			page := htmlrender.New()
			data := jsonrender.New()

			mux := http.NewServeMux()
			mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				if err := page.Render(w, sessions); err != nil {
					log.Error("render page", "error", err)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			})
			mux.HandleFunc("GET /data.json", func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if err := data.Render(w, sessions); err != nil {
					log.Error("render data", "error", err)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			})

			addr := fmt.Sprintf(":%d", cmd.Int("http-port"))
			log.Info("serving",
				"addr", "http://localhost"+addr,
				"sessions", len(sessions),
				"samples", core.TotalSamples(sessions))
			return http.ListenAndServe(addr, mux)
		},
	}
}
