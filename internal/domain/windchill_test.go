package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindChill_Formula(t *testing.T) {
	// 30°F at 10 mph is about 21.25°F on the NWS chart.
	chill, ok := WindChill(30, 10)
	assert.True(t, ok)
	assert.InDelta(t, 21.25, chill, 0.01)

	// Exact against the published formula.
	v16 := math.Pow(10, 0.16)
	assert.InDelta(t, 35.74+0.6215*30-35.75*v16+0.4275*30*v16, chill, 1e-12)
}

func TestWindChill_ValidityEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		tempF   float64
		windMph float64
		valid   bool
	}{
		{"cold and windy", 20, 15, true},
		{"boundary temperature", 50, 10, true},
		{"too warm", 50.1, 10, false},
		{"boundary wind", 30, 3, false},
		{"just above boundary wind", 30, 3.01, true},
		{"calm", 10, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := WindChill(tc.tempF, tc.windMph)
			assert.Equal(t, tc.valid, ok)
		})
	}
}
