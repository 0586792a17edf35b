// Package html renders session lists as standalone HTML pages styled with
// Tailwind CSS v4 (CDN), charting each session as an inline SVG polyline.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"co2log/core"
)

//go:embed templates/*.html
var content embed.FS

// Chart canvas in SVG user units.
const (
	chartW   = 640
	chartH   = 160
	chartPad = 10
)

// Renderer renders sessions to a standalone HTML page.
type Renderer struct {
	tmpl *template.Template
}

// New creates an HTML Renderer.
func New() *Renderer {
	tmpl := template.Must(
		template.New("page.html").
			Funcs(funcMap()).
			ParseFS(content, "templates/*.html"),
	)
	return &Renderer{tmpl: tmpl}
}

// pageData is the top-level template data passed to page.html.
type pageData struct {
	Sessions     []sessionData
	TotalSamples int
	GeneratedAt  time.Time
}

// sessionData is the per-session template data.
type sessionData struct {
	Session core.Session
	Number  int    // 1-based display number
	Span    string // human range, e.g. "20m (from 1h 5m)"
	Points  string // SVG polyline points
	ChartW  int
	ChartH  int
}

// Render writes the session list as a complete HTML page to w.
func (r *Renderer) Render(w io.Writer, sessions []core.Session) error {
	data := pageData{
		TotalSamples: core.TotalSamples(sessions),
		GeneratedAt:  time.Now(),
	}
	for _, s := range sessions {
		data.Sessions = append(data.Sessions, sessionData{
			Session: s,
			Number:  s.ID + 1,
			Span:    spanLabel(s),
			Points:  polylinePoints(s.Samples),
			ChartW:  chartW,
			ChartH:  chartH,
		})
	}
	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}

func spanLabel(s core.Session) string {
	return fmt.Sprintf("%s (from %s)", formatSeconds(s.End()-s.Start()), formatSeconds(s.Start()))
}

// polylinePoints maps the sample series onto the chart canvas. A single
// sample collapses to one point; the template pairs the polyline with
// endpoint dots so it still shows up.
func polylinePoints(samples []core.Sample) string {
	if len(samples) == 0 {
		return ""
	}

	t0, t1 := samples[0].Timestamp, samples[len(samples)-1].Timestamp
	lo, hi := samples[0].PPM, samples[0].PPM
	for _, s := range samples {
		if s.PPM < lo {
			lo = s.PPM
		}
		if s.PPM > hi {
			hi = s.PPM
		}
	}

	innerW := chartW - 2*chartPad
	innerH := chartH - 2*chartPad

	var b strings.Builder
	for i, s := range samples {
		x := chartPad
		if t1 > t0 {
			x += (s.Timestamp - t0) * innerW / (t1 - t0)
		}
		y := chartPad + innerH/2
		if hi > lo {
			y = chartPad + innerH - (s.PPM-lo)*innerH/(hi-lo)
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d,%d", x, y)
	}
	return b.String()
}
