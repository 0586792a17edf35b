package terminal

import (
	"strings"
	"testing"

	"co2log/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	sessions := core.Sessions("Timestamp,CO2_PPM\n0,400\n60,450\n120,500\n1000,600\n1060,610\n")
	require.Len(t, sessions, 2)

	var buf strings.Builder
	r := &Renderer{Width: 80}
	require.NoError(t, r.Render(&buf, sessions))

	out := buf.String()
	assert.Contains(t, out, "Session 1")
	assert.Contains(t, out, "Session 2")
	assert.Contains(t, out, "3 samples")
	assert.Contains(t, out, "MIN PPM")
	assert.Contains(t, out, "400")
	assert.Contains(t, out, "610")
}

func TestRenderEmpty(t *testing.T) {
	var buf strings.Builder
	r := &Renderer{Width: 80}
	require.NoError(t, r.Render(&buf, nil))
	assert.Contains(t, buf.String(), "no logging sessions")
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name    string
		ppms    []int
		width   int
		want    string
		wantLen int
	}{
		{
			name: "rising series rises",
			ppms: []int{400, 450, 500, 550},
			want: "▁▃▅█", width: 10, wantLen: 4,
		},
		{
			name: "flat series uses lowest rune",
			ppms: []int{500, 500, 500},
			want: "▁▁▁", width: 10, wantLen: 3,
		},
		{
			name:    "wide series bucketed to width",
			ppms:    make([]int, 200),
			width:   40,
			wantLen: 40,
		},
		{
			name: "empty series empty line",
			ppms: nil, width: 10, wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]core.Sample, len(tt.ppms))
			for i, p := range tt.ppms {
				samples[i] = core.Sample{Timestamp: i * 60, PPM: p}
			}

			got := Sparkline(samples, tt.width)
			assert.Len(t, []rune(got), tt.wantLen)
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m 30s"},
		{3600, "1h"},
		{3720, "1h 2m"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSeconds(tt.secs))
	}
}
