package coerce

import (
	"math"
	"testing"
	"time"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"numeric string", "42.25", 42.25},
		{"padded string", "  3 ", 3},
		{"empty string", "", 0},
		{"garbage", "abc", 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"inf string", "Infinity", 0},
		{"bool", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.in); got != tt.want {
				t.Errorf("Number(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimestamp(t *testing.T) {
	got, ok := Timestamp("2024-01-01T02:30:00Z")
	if !ok {
		t.Fatal("Timestamp() ok = false for RFC 3339 input")
	}
	want := time.Date(2024, 1, 1, 2, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Timestamp() = %v, want %v", got, want)
	}

	if _, ok := Timestamp("2024-01-01T02:30:00.123+07:00"); !ok {
		t.Error("Timestamp() rejected fractional seconds with offset")
	}

	local, ok := Timestamp("2024-03-05T08:15")
	if !ok {
		t.Fatal("Timestamp() rejected datetime-local value")
	}
	if local.Location() != time.Local || local.Hour() != 8 {
		t.Errorf("Timestamp() = %v, want 08:15 local", local)
	}

	for _, bad := range []string{"", "   ", "not a date", "2024-13-45"} {
		if _, ok := Timestamp(bad); ok {
			t.Errorf("Timestamp(%q) ok = true, want false", bad)
		}
	}
}
