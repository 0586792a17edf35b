package html

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"seconds":     formatSeconds,
		"timestamp":   func(t time.Time) string { return t.Format("Jan 2, 2006 3:04 PM") },
		"formatNum":   formatNumber,
		"firstPoint":  firstPoint,
		"lastPoint":   lastPoint,
		"firstCoord":  func(p string) string { x, _, _ := strings.Cut(p, ","); return x },
		"secondCoord": func(p string) string { _, y, _ := strings.Cut(p, ","); return y },
	}
}

// firstPoint and lastPoint split a polyline points string for endpoint dots.
func firstPoint(points string) string {
	for i := 0; i < len(points); i++ {
		if points[i] == ' ' {
			return points[:i]
		}
	}
	return points
}

func lastPoint(points string) string {
	for i := len(points) - 1; i >= 0; i-- {
		if points[i] == ' ' {
			return points[i+1:]
		}
	}
	return points
}

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

func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return formatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
