// Package device manages the USB serial connection to the CO2 logger. It
// discovers the device by its fixed vendor/product identifiers and exposes
// the open port as a plain duplex byte channel for the shell extractor.
package device

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

const (
	// VendorID and ProductID identify the logger on the USB bus.
	VendorID  = "303A"
	ProductID = "1001"

	// BaudRate is the shell's line speed.
	BaudRate = 115200

	// readTimeout keeps port reads returning periodically so the fetch
	// loop can observe its deadline while the device is silent.
	readTimeout = 500 * time.Millisecond
)

// ErrNotFound means no attached port matched the logger's USB identifiers.
var ErrNotFound = errors.New("no CO2 logger found on any serial port")

// PortInfo describes one enumerated serial port.
type PortInfo struct {
	Name   string
	VID    string
	PID    string
	Serial string
	// Match is true when the port carries the logger's USB identifiers.
	Match bool
}

// List enumerates USB serial ports, marking those that match the logger.
func List() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}

	var ports []PortInfo
	for _, d := range details {
		if !d.IsUSB {
			continue
		}
		ports = append(ports, PortInfo{
			Name:   d.Name,
			VID:    d.VID,
			PID:    d.PID,
			Serial: d.SerialNumber,
			Match:  matches(d.VID, d.PID),
		})
	}
	return ports, nil
}

// Find returns the port name of the first attached logger.
func Find() (string, error) {
	ports, err := List()
	if err != nil {
		return "", err
	}
	for _, p := range ports {
		if p.Match {
			return p.Name, nil
		}
	}
	return "", ErrNotFound
}

func matches(vid, pid string) bool {
	return strings.EqualFold(vid, VendorID) && strings.EqualFold(pid, ProductID)
}

// Conn is an open channel to the device shell. One transfer may be in
// flight at a time; callers serialize.
type Conn struct {
	port serial.Port
	name string
}

// Connect opens the named port at the shell's line speed. Stale input left
// over from a previous session is dropped before use.
func Connect(name string) (*Conn, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: BaudRate})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		log.Debug("reset input buffer", "port", name, "error", err)
	}
	return &Conn{port: port, name: name}, nil
}

// Name returns the port name the connection was opened on.
func (c *Conn) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

func (c *Conn) Read(p []byte) (int, error) {
	return c.port.Read(p)
}

func (c *Conn) Write(p []byte) (int, error) {
	return c.port.Write(p)
}

// Disconnect flushes and closes the port. It is idempotent and safe to call
// on a nil or never-connected Conn; close failures are swallowed since
// there is nothing useful a caller can do with them.
func (c *Conn) Disconnect() {
	if c == nil || c.port == nil {
		return
	}
	if err := c.port.Drain(); err != nil {
		log.Debug("drain port", "port", c.name, "error", err)
	}
	if err := c.port.Close(); err != nil {
		log.Debug("close port", "port", c.name, "error", err)
	}
	c.port = nil
}
