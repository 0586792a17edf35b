package shell

import "errors"

// ErrTimeout means no terminal marker was observed before the deadline.
var ErrTimeout = errors.New("device did not finish responding in time")

// ErrMalformedResponse means the protocol markers never appeared — the
// device answered, but not with the expected transcript shape.
var ErrMalformedResponse = errors.New("unexpected response from device")

// DeviceError is a failure the device itself reported, e.g. a missing log
// file. The line is surfaced to the user verbatim.
type DeviceError struct {
	Line string
}

func (e *DeviceError) Error() string {
	return "device reported: " + e.Line
}
