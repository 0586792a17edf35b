package main

import (
	"context"
	"fmt"

	"co2log/device"

	"github.com/urfave/cli/v3"
)

func portsCmd() *cli.Command {
	return &cli.Command{
		Name:  "ports",
		Usage: "List USB serial ports and mark attached CO2 loggers",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ports, err := device.List()
			if err != nil {
				return err
			}
			if len(ports) == 0 {
				fmt.Println("no USB serial ports found")
				return nil
			}

			for _, p := range ports {
				marker := " "
				if p.Match {
					marker = "*"
				}
				line := fmt.Sprintf("%s %s  %s:%s", marker, p.Name, p.VID, p.PID)
				if p.Serial != "" {
					line += "  " + p.Serial
				}
				fmt.Println(line)
			}
			fmt.Printf("\n* = CO2 logger (%s:%s)\n", device.VendorID, device.ProductID)
			return nil
		},
	}
}
