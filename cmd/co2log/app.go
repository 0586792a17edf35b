package main

import (
	"context"
	"errors"
	"fmt"

	"co2log/core"
	"co2log/device"
	"co2log/downsample"
	"co2log/render"
	htmlrender "co2log/render/html"
	jsonrender "co2log/render/json"
	"co2log/render/terminal"
	"co2log/shell"

	"github.com/urfave/cli/v3"
)

// app holds the renderer registry used by CLI commands.
type app struct {
	renderers map[string]func() render.Renderer
}

func newApp() *app {
	return &app{
		renderers: map[string]func() render.Renderer{
			"terminal": func() render.Renderer { return terminal.New() },
			"json":     func() render.Renderer { return jsonrender.New() },
			"html":     func() render.Renderer { return htmlrender.New() },
		},
	}
}

func (a *app) renderer(name string) (render.Renderer, error) {
	fn, ok := a.renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(), nil
}

// transferFlags are shared by every command that talks to the device.
func transferFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Usage: "Serial port name (default: auto-detect by USB IDs)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Transfer deadline",
			Value: shell.DefaultTimeout,
		},
		&cli.BoolFlag{
			Name:  "lenient-prompt",
			Usage: "Accept a bare \">\" as the end-of-transfer prompt",
		},
	}
}

func transferOptions(cmd *cli.Command) shell.Options {
	return shell.Options{
		Timeout:         cmd.Duration("timeout"),
		AllowBarePrompt: cmd.Bool("lenient-prompt"),
	}
}

// connect opens the device channel, auto-detecting the port unless --port
// was given.
func connect(cmd *cli.Command) (*device.Conn, error) {
	port := cmd.String("port")
	if port == "" {
		var err error
		port, err = device.Find()
		if err != nil {
			return nil, err
		}
	}
	return device.Connect(port)
}

// fetchSessions runs one complete transfer over conn and segments the result.
func fetchSessions(ctx context.Context, conn *device.Conn, opts shell.Options) ([]core.Session, error) {
	csv, err := shell.Fetch(ctx, conn, opts)
	if err != nil {
		return nil, err
	}
	return core.Sessions(csv), nil
}

// thin applies the --max-points transformer when set.
func thin(cmd *cli.Command, sessions []core.Session) error {
	maxPoints := int(cmd.Int("max-points"))
	if maxPoints <= 0 {
		return nil
	}
	return core.Chain(sessions, downsample.New(downsample.Config{MaxPoints: maxPoints}))
}

// describeError turns a transfer failure into the single user-visible
// notification line. Device-reported lines pass through verbatim.
func describeError(err error) string {
	var devErr *shell.DeviceError
	switch {
	case errors.As(err, &devErr):
		return devErr.Line
	case errors.Is(err, shell.ErrTimeout):
		return "device did not respond before the deadline"
	case errors.Is(err, shell.ErrMalformedResponse):
		return "unexpected response from device"
	case errors.Is(err, device.ErrNotFound):
		return "no CO2 logger found; is it plugged in?"
	}
	return err.Error()
}
