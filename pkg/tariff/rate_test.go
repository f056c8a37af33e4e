package tariff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"free", "Free", 0.0},
		{"free lowercase", "free", 0.0},
		{"percent", "5%", 0.05},
		{"percent fractional", "12.5%", 0.125},
		{"percent with spaces", " 2.7% ", 0.027},
		{"specific duty", "0.5¢/kg", 0.0},
		{"specific duty mangled encoding", "0.5Â¢/kg", 0.0},
		{"plain numeral kept verbatim", "3.0", 3.0},
		{"plain zero", "0", 0.0},
		{"garbage", "garbage", 0.0},
		{"empty", "", 0.0},
		{"percent with trailing text", "5% ad val.", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRate(tt.raw))
		})
	}
}

func TestParseRateIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.045, ParseRate("4.5%"))
	}
}
