package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSchedule(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"allowed value unchanged", 10, 10},
		{"smallest allowed", 1, 1},
		{"largest allowed", 240, 240},
		{"rounds down to nearest", 11, 10},
		{"rounds up to nearest", 14, 15},
		{"tie resolves to smaller", 4, 3},
		{"tie between 120 and 240", 180, 120},
		{"zero snaps to smallest", 0, 1},
		{"negative snaps to smallest", -5, 1},
		{"far above range clamps", 10000, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSchedule(tt.input))
		})
	}
}

func TestNormalizeScheduleAllAllowedValuesAreFixedPoints(t *testing.T) {
	for _, allowed := range AllowedSchedules() {
		assert.Equal(t, allowed, NormalizeSchedule(allowed))
	}
}
