package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/ngmaloney/vessel-console/internal/models"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v      float64
		digits int
		want   string
	}{
		{1234567, 0, "1,234,567"},
		{1234.5, 2, "1,234.50"},
		{0, 2, "0.00"},
		{-950.4, 0, "-950"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.v, tt.digits); got != tt.want {
			t.Errorf("formatNumber(%v, %d) = %q, want %q", tt.v, tt.digits, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime("2025-03-02T08:30:00Z", time.UTC); got != "02 Mar 2025 08:30" {
		t.Errorf("formatTime() = %q, want 02 Mar 2025 08:30", got)
	}
	if got := formatTime("", time.UTC); got != "-" {
		t.Errorf("formatTime(\"\") = %q, want -", got)
	}
}

func TestAPITime(t *testing.T) {
	local, _ := time.ParseInLocation(inputTimeLayout, "2025-03-02T08:30", time.Local)
	want := local.UTC().Format(time.RFC3339)

	if got := apiTime(" 2025-03-02T08:30 "); got != want {
		t.Errorf("apiTime() = %q, want %q", got, want)
	}
	if got := apiTime("tomorrow"); got != "tomorrow" {
		t.Errorf("apiTime(tomorrow) = %q, want the input back", got)
	}
	if got := inputTime(want); got != "2025-03-02T08:30" {
		t.Errorf("inputTime() = %q, want 2025-03-02T08:30", got)
	}
}

func TestInputNumber(t *testing.T) {
	if got := inputNumber(models.NumberOf(12.5)); got != "12.5" {
		t.Errorf("inputNumber(12.5) = %q", got)
	}
	if got := inputNumber(models.Number{}); got != "" {
		t.Errorf("inputNumber(unset) = %q, want empty", got)
	}
}

func TestBar(t *testing.T) {
	if got := bar(0.5, 10); got != strings.Repeat("█", 5) {
		t.Errorf("bar(0.5, 10) = %q", got)
	}
	if got := bar(0.01, 10); got != "█" {
		t.Errorf("bar(0.01, 10) = %q, want one cell", got)
	}
	if got := bar(2, 4); got != strings.Repeat("█", 4) {
		t.Errorf("bar(2, 4) = %q, want full width", got)
	}
	if got := bar(0, 10); got != "" {
		t.Errorf("bar(0, 10) = %q, want empty", got)
	}
}

func TestSpark(t *testing.T) {
	if got := spark(0, 5); got != " " {
		t.Errorf("spark(0, 5) = %q", got)
	}
	if got := spark(5, 5); got != "█" {
		t.Errorf("spark(5, 5) = %q", got)
	}
	if got := spark(1, 8); got != "▁" {
		t.Errorf("spark(1, 8) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("PAT:Kingston", 6); got != "PAT:K…" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q", got)
	}
}

func TestMonthLabel(t *testing.T) {
	if got := monthLabel(0); got != "All months" {
		t.Errorf("monthLabel(0) = %q", got)
	}
	if got := monthLabel(3); got != "March" {
		t.Errorf("monthLabel(3) = %q", got)
	}
}
