package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timestamps(s Session) []int {
	out := make([]int, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.Timestamp
	}
	return out
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Sample
	}{
		{
			name: "simple payload",
			in:   "Timestamp,CO2_PPM\n0,400\n60,410\n",
			want: []Sample{{0, 400}, {60, 410}},
		},
		{
			name: "noise before header discarded",
			in:   "cat /storage/co2_log.csv\r\nsome banner\nTimestamp,CO2_PPM\n10,500\n20,510\n",
			want: []Sample{{10, 500}, {20, 510}},
		},
		{
			name: "trailing prompt terminates payload",
			in:   "Timestamp,CO2_PPM\n0,400\n60,410\n>:\n120,999\n",
			want: []Sample{{0, 400}, {60, 410}},
		},
		{
			name: "storage echo terminates payload",
			in:   "Timestamp,CO2_PPM\n0,400\ncat /storage/co2_log.csv\n60,999\n",
			want: []Sample{{0, 400}},
		},
		{
			name: "malformed rows skipped",
			in:   "Timestamp,CO2_PPM\n0,400\nnot,a,row\nabc,def\n60,\n120,410\n",
			want: []Sample{{0, 400}, {120, 410}},
		},
		{
			name: "blank lines skipped",
			in:   "Timestamp,CO2_PPM\n\n0,400\n\n60,410\n\n",
			want: []Sample{{0, 400}, {60, 410}},
		},
		{
			name: "negative timestamp skipped",
			in:   "Timestamp,CO2_PPM\n-5,400\n0,410\n60,420\n",
			want: []Sample{{0, 410}, {60, 420}},
		},
		{
			name: "fields trimmed",
			in:   "Timestamp,CO2_PPM\n 0 , 400 \n",
			want: []Sample{{0, 400}},
		},
		{
			name: "no header no data",
			in:   "0,400\n60,410\n",
			want: nil,
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCSV(tt.in))
		})
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   []int // timestamps; ppm is synthetic
		want [][]int
	}{
		{
			name: "no gaps single session",
			in:   []int{0, 100, 200, 300, 400},
			want: [][]int{{0, 100, 200, 300, 400}},
		},
		{
			name: "gap over threshold splits",
			in:   []int{0, 100, 200, 600, 700},
			want: [][]int{{0, 100, 200}, {600, 700}},
		},
		{
			name: "gap of exactly 300 does not split",
			in:   []int{0, 300},
			want: [][]int{{0, 300}},
		},
		{
			name: "gap of 301 splits",
			in:   []int{0, 301},
			want: [][]int{{0}, {301}},
		},
		{
			name: "single sample single session",
			in:   []int{42},
			want: [][]int{{42}},
		},
		{
			name: "trailing singleton flushed",
			in:   []int{0, 60, 1000},
			want: [][]int{{0, 60}, {1000}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]Sample, len(tt.in))
			for i, ts := range tt.in {
				samples[i] = Sample{Timestamp: ts, PPM: 400 + i}
			}

			sessions := Segment(samples)
			require.Len(t, sessions, len(tt.want))
			for i, s := range sessions {
				assert.Equal(t, i, s.ID)
				assert.Equal(t, tt.want[i], timestamps(s))
			}
		})
	}
}

func TestSegmentEmpty(t *testing.T) {
	assert.Nil(t, Segment(nil))
}

func TestSessions(t *testing.T) {
	t.Run("two distant rows make two singleton sessions", func(t *testing.T) {
		sessions := Sessions("Timestamp,CO2_PPM\n0,400\n610,420\n")
		require.Len(t, sessions, 2)
		for _, s := range sessions {
			assert.Len(t, s.Samples, 1)
			assert.Equal(t, s.Start(), s.End())
		}
	})

	t.Run("fewer than two rows yields empty list", func(t *testing.T) {
		assert.Empty(t, Sessions("Timestamp,CO2_PPM\n0,400\n"))
		assert.Empty(t, Sessions("Timestamp,CO2_PPM\n"))
		assert.Empty(t, Sessions(""))
	})

	t.Run("malformed rows do not abort surrounding valid rows", func(t *testing.T) {
		sessions := Sessions("Timestamp,CO2_PPM\n0,400\ngarbage\n60,410\n")
		require.Len(t, sessions, 1)
		assert.Equal(t, []int{0, 60}, timestamps(sessions[0]))
	})
}

func TestSessionStats(t *testing.T) {
	s := Session{Samples: []Sample{{0, 420}, {60, 400}, {120, 440}}}

	assert.Equal(t, 0, s.Start())
	assert.Equal(t, 120, s.End())
	assert.Equal(t, "2m0s", s.Duration().String())
	assert.Equal(t, 400, s.MinPPM())
	assert.Equal(t, 440, s.MaxPPM())
	assert.Equal(t, 420, s.AvgPPM())
}

func TestSessionStatsEmpty(t *testing.T) {
	var s Session
	assert.Equal(t, 0, s.Start())
	assert.Equal(t, 0, s.End())
	assert.Equal(t, 0, s.MinPPM())
	assert.Equal(t, 0, s.MaxPPM())
	assert.Equal(t, 0, s.AvgPPM())
}

func TestTotalSamples(t *testing.T) {
	sessions := Sessions(strings.Join([]string{
		"Timestamp,CO2_PPM",
		"0,400", "60,405", "120,410",
		"1000,500", "1060,505",
		"",
	}, "\n"))
	require.Len(t, sessions, 2)
	assert.Equal(t, 5, TotalSamples(sessions))
}
