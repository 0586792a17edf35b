// Package core defines the logging-session model — the normalized
// representation of a device's CO2 data log that the shell extractor
// produces and all renderers consume.
package core

import "time"

// Header is the literal CSV header the device prints before its data rows.
const Header = "Timestamp,CO2_PPM"

// GapThreshold is the maximum inter-sample gap, in seconds, within one
// logging session. A strictly larger gap starts a new session.
const GapThreshold = 300

// Sample is one measurement row from the device log.
type Sample struct {
	// Timestamp is device uptime in seconds. Never negative.
	Timestamp int `json:"timestamp"`
	// PPM is the CO2 concentration in parts per million.
	PPM int `json:"co2_ppm"`
}

// Session is a maximal run of samples with no inter-sample gap exceeding
// GapThreshold. Sessions are immutable once built and ordered by start time.
type Session struct {
	// ID is the zero-based position of the session in the segmented list.
	ID      int      `json:"id"`
	Samples []Sample `json:"samples"`
}

// Start returns the timestamp of the first sample. Zero for an empty session.
func (s Session) Start() int {
	if len(s.Samples) == 0 {
		return 0
	}
	return s.Samples[0].Timestamp
}

// End returns the timestamp of the last sample. Zero for an empty session.
func (s Session) End() int {
	if len(s.Samples) == 0 {
		return 0
	}
	return s.Samples[len(s.Samples)-1].Timestamp
}

// Duration returns the wall span covered by the session.
func (s Session) Duration() time.Duration {
	return time.Duration(s.End()-s.Start()) * time.Second
}

// MinPPM returns the lowest CO2 reading in the session.
func (s Session) MinPPM() int {
	min := 0
	for i, smp := range s.Samples {
		if i == 0 || smp.PPM < min {
			min = smp.PPM
		}
	}
	return min
}

// MaxPPM returns the highest CO2 reading in the session.
func (s Session) MaxPPM() int {
	max := 0
	for i, smp := range s.Samples {
		if i == 0 || smp.PPM > max {
			max = smp.PPM
		}
	}
	return max
}

// AvgPPM returns the mean CO2 reading, rounded down. Zero for an empty session.
func (s Session) AvgPPM() int {
	if len(s.Samples) == 0 {
		return 0
	}
	sum := 0
	for _, smp := range s.Samples {
		sum += smp.PPM
	}
	return sum / len(s.Samples)
}

// TotalSamples sums the sample counts across sessions.
func TotalSamples(sessions []Session) int {
	n := 0
	for _, s := range sessions {
		n += len(s.Samples)
	}
	return n
}
