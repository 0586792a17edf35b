package core

import (
	"strconv"
	"strings"
)

// ParseCSV extracts samples from the sanitized CSV text the extractor
// returns. Everything before the header line is discarded; the header itself
// is matched exactly after trimming and is not emitted as data.
//
// After the header, a line containing shell artifacts (">" or the "storage"
// path token, from a trailing prompt or echo that slipped past the
// extractor) terminates the payload. Structurally bad lines — wrong
// field count, empty fields, non-integer fields, negative timestamps — are
// skipped without ending the scan.
func ParseCSV(csv string) []Sample {
	var samples []Sample
	seenHeader := false

	for _, line := range strings.Split(csv, "\n") {
		line = strings.TrimSpace(line)
		if !seenHeader {
			if line == Header {
				seenHeader = true
			}
			continue
		}
		if line == "" {
			continue
		}
		if strings.Contains(line, ">") || strings.Contains(line, "storage") {
			break
		}

		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			continue
		}
		ts, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || ts < 0 {
			continue
		}
		ppm, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			continue
		}
		samples = append(samples, Sample{Timestamp: ts, PPM: ppm})
	}

	return samples
}

// Segment partitions samples into sessions, starting a new session whenever
// the gap to the previous sample strictly exceeds GapThreshold. The final
// in-progress group is always flushed, even with a single sample. Samples
// are assumed monotone (device log order) and are not re-sorted.
func Segment(samples []Sample) []Session {
	if len(samples) == 0 {
		return nil
	}

	var sessions []Session
	start := 0
	for i := 1; i < len(samples); i++ {
		if samples[i].Timestamp-samples[i-1].Timestamp > GapThreshold {
			sessions = append(sessions, Session{ID: len(sessions), Samples: samples[start:i]})
			start = i
		}
	}
	sessions = append(sessions, Session{ID: len(sessions), Samples: samples[start:]})

	return sessions
}

// Sessions parses sanitized CSV text and segments it. Fewer than 2 valid
// rows yields an empty list — the caller's "nothing logged yet" signal.
func Sessions(csv string) []Session {
	samples := ParseCSV(csv)
	if len(samples) < 2 {
		return nil
	}
	return Segment(samples)
}
