// Package json renders session lists as JSON (serializes the core model as-is).
package json

import (
	"encoding/json"
	"io"

	"co2log/core"
)

// Renderer renders sessions to JSON.
type Renderer struct {
	// Indent controls pretty-printing. When true, output is indented.
	Indent bool
}

// New creates a JSON Renderer with indentation enabled.
func New() *Renderer {
	return &Renderer{Indent: true}
}

// Render writes the session list as a JSON array to w.
func (r *Renderer) Render(w io.Writer, sessions []core.Session) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	if sessions == nil {
		sessions = []core.Session{}
	}
	return enc.Encode(sessions)
}
