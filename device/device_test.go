package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		vid  string
		pid  string
		want bool
	}{
		{"exact", "303A", "1001", true},
		{"case-insensitive", "303a", "1001", true},
		{"wrong vendor", "0403", "1001", false},
		{"wrong product", "303A", "6001", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matches(tt.vid, tt.pid))
		})
	}
}

func TestDisconnectIdempotent(t *testing.T) {
	var c *Conn
	assert.NotPanics(t, func() { c.Disconnect() })
	assert.Empty(t, c.Name())

	c = &Conn{}
	assert.NotPanics(t, func() {
		c.Disconnect()
		c.Disconnect()
	})
}
