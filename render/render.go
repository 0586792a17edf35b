// Package render defines the interface for rendering segmented logging
// sessions into various output formats.
package render

import (
	"io"

	"co2log/core"
)

// Renderer writes a session list to the given writer in a specific format.
type Renderer interface {
	Render(w io.Writer, sessions []core.Session) error
}
