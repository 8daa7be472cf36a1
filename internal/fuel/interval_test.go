package fuel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHoursBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       float64
	}{
		{"two and a half hours", "2024-01-01T00:00:00Z", "2024-01-01T02:30:00Z", 2.5},
		{"across offsets", "2024-01-01T07:00:00+07:00", "2024-01-01T01:00:00Z", 1},
		{"missing start", "", "2024-01-01T02:30:00Z", 0},
		{"missing end", "2024-01-01T00:00:00Z", "", 0},
		{"equal", "2024-01-01T00:00:00Z", "2024-01-01T00:00:00Z", 0},
		{"reversed", "2024-01-01T03:00:00Z", "2024-01-01T00:00:00Z", 0},
		{"unparsable start", "yesterday", "2024-01-01T00:00:00Z", 0},
		{"unparsable end", "2024-01-01T00:00:00Z", "soon", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, HoursBetween(tt.start, tt.end), 1e-9)
		})
	}
}

func TestHoursBetweenTimes(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, HoursBetweenTimes(time.Time{}, start))
	assert.Equal(t, 0.0, HoursBetweenTimes(start, time.Time{}))
	assert.Equal(t, 24.0, HoursBetweenTimes(start, start.Add(24*time.Hour)))
}
