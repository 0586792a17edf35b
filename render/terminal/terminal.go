// Package terminal renders sessions as ANSI-colored cards with a sparkline
// chart per session.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"co2log/core"

	"github.com/charmbracelet/x/term"
)

const defaultWidth = 100

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Renderer pretty-prints sessions as cards to the terminal.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int
}

// New creates a terminal Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the session list as ANSI-colored cards to w.
func (r *Renderer) Render(w io.Writer, sessions []core.Session) error {
	width := r.termWidth()

	if len(sessions) == 0 {
		fmt.Fprintln(w, styleMeta.Render("no logging sessions recorded"))
		return nil
	}

	for i, s := range sessions {
		if i > 0 {
			writeSeparator(w, width)
		}
		writeSession(w, s, width)
	}
	fmt.Fprintln(w)
	return nil
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

func writeSession(w io.Writer, s core.Session, width int) {
	fmt.Fprintln(w)

	// Row 1: title + span.
	title := styleTitle.Render(fmt.Sprintf("Session %d", s.ID+1))
	fmt.Fprintln(w, " "+title+"  "+styleMeta.Render(spanLabel(s)))

	// Row 2: stats — values then labels, column-aligned.
	writeStats(w, s)

	// Chart.
	chartWidth := min(width-4, 72)
	if chartWidth < 10 {
		chartWidth = 10
	}
	fmt.Fprintln(w, "  "+styleSpark.Render(Sparkline(s.Samples, chartWidth)))
}

// spanLabel describes the session's time range and size.
func spanLabel(s core.Session) string {
	return fmt.Sprintf("%d samples  %s  @%s",
		len(s.Samples), formatSeconds(s.End()-s.Start()), formatSeconds(s.Start()))
}

// writeStats renders min/avg/max ppm in two rows: values then labels.
func writeStats(w io.Writer, s core.Session) {
	type stat struct {
		value int
		label string
	}
	stats := []stat{
		{s.MinPPM(), "MIN PPM"},
		{s.AvgPPM(), "AVG PPM"},
		{s.MaxPPM(), "MAX PPM"},
	}

	var values, labels []string
	for _, st := range stats {
		formatted := fmt.Sprintf("%d", st.value)
		colWidth := max(len(formatted), len(st.label))
		values = append(values, fmt.Sprintf("%*s", colWidth, formatted))
		labels = append(labels, fmt.Sprintf("%-*s", colWidth, st.label))
	}

	fmt.Fprintln(w, "  "+styleStat.Render(strings.Join(values, "    ")))
	fmt.Fprintln(w, "  "+styleStatLabel.Render(strings.Join(labels, "    ")))
}

func writeSeparator(w io.Writer, width int) {
	n := min(width, 72)
	fmt.Fprintln(w)
	fmt.Fprintln(w, styleSeparator.Render(strings.Repeat("─", n)))
}

// Sparkline draws the ppm series as block runes, one column per bucket.
// Shared with the interactive viewer.
func Sparkline(samples []core.Sample, width int) string {
	if len(samples) == 0 {
		return ""
	}

	lo, hi := samples[0].PPM, samples[0].PPM
	for _, s := range samples {
		if s.PPM < lo {
			lo = s.PPM
		}
		if s.PPM > hi {
			hi = s.PPM
		}
	}

	cols := min(width, len(samples))
	out := make([]rune, cols)
	for c := range out {
		// Average the bucket so spikes still register at narrow widths.
		start := c * len(samples) / cols
		end := (c + 1) * len(samples) / cols
		sum := 0
		for _, s := range samples[start:end] {
			sum += s.PPM
		}
		avg := sum / (end - start)

		idx := 0
		if hi > lo {
			idx = (avg - lo) * (len(sparkRunes) - 1) / (hi - lo)
		}
		out[c] = sparkRunes[idx]
	}
	return string(out)
}

// formatSeconds renders a device-uptime offset like "1h 2m" or "45s".
func formatSeconds(secs int) string {
	d := time.Duration(secs) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
