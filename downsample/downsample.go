// Package downsample provides a Transformer that thins long sample series
// so charts stay readable and cheap to draw.
package downsample

import "co2log/core"

// Config controls the downsampling behavior.
type Config struct {
	// MaxPoints is the per-session sample ceiling. Values below 2 disable
	// thinning.
	MaxPoints int
}

// Thinner reduces each session to at most MaxPoints evenly spaced samples,
// always keeping the first and last so session bounds survive.
type Thinner struct {
	maxPoints int
}

// New creates a Thinner from the given config.
func New(cfg Config) *Thinner {
	return &Thinner{maxPoints: cfg.MaxPoints}
}

// Transform implements core.Transformer.
func (d *Thinner) Transform(sessions []core.Session) error {
	if d.maxPoints < 2 {
		return nil
	}
	for i := range sessions {
		sessions[i].Samples = thin(sessions[i].Samples, d.maxPoints)
	}
	return nil
}

func thin(samples []core.Sample, max int) []core.Sample {
	if len(samples) <= max {
		return samples
	}
	out := make([]core.Sample, max)
	for i := range out {
		out[i] = samples[i*(len(samples)-1)/(max-1)]
	}
	return out
}
