package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ngmaloney/vessel-console/internal/coerce"
	"github.com/ngmaloney/vessel-console/internal/models"
)

const (
	displayTimeLayout = "02 Jan 2006 15:04"
	inputTimeLayout   = "2006-01-02T15:04"
)

// formatNumber groups thousands; digits is the fixed number of decimals.
func formatNumber(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	if digits <= 0 {
		return humanize.Comma(int64(math.Round(v)))
	}
	return humanize.FormatFloat("#,###."+strings.Repeat("#", digits), v)
}

func formatLiters(v float64) string {
	return formatNumber(v, 2) + " L"
}

func formatHours(v float64) string {
	return formatNumber(v, 2) + " h"
}

// formatTime shows an API timestamp in loc, or "-".
func formatTime(s string, loc *time.Location) string {
	t, ok := coerce.Timestamp(s)
	if !ok {
		return "-"
	}
	return t.In(loc).Format(displayTimeLayout)
}

// inputTime is the editable form of an API timestamp, in local time.
func inputTime(s string) string {
	t, ok := coerce.Timestamp(s)
	if !ok {
		return ""
	}
	return t.Local().Format(inputTimeLayout)
}

// apiTime converts form input to RFC 3339 in UTC. Unreadable input is
// passed through for validation to report.
func apiTime(s string) string {
	s = strings.TrimSpace(s)
	t, ok := coerce.Timestamp(s)
	if !ok {
		return s
	}
	return t.UTC().Format(time.RFC3339)
}

func inputNumber(n models.Number) string {
	if !n.IsSet() {
		return ""
	}
	return strconv.FormatFloat(n.Float(), 'f', -1, 64)
}

func monthLabel(month int) string {
	if month < 1 || month > 12 {
		return "All months"
	}
	return time.Month(month).String()
}

func statusLabel(s models.VoyageStatus) string {
	if s == "" {
		return "-"
	}
	if s.IsClosed() {
		return closedStyle.Render(string(s))
	}
	return openStyle.Render(string(s))
}

// bar draws ratio (0..1) of width cells.
func bar(ratio float64, width int) string {
	if ratio <= 0 || width <= 0 {
		return ""
	}
	n := int(math.Round(min(ratio, 1) * float64(width)))
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// spark draws count relative to maxCount as a single block character.
func spark(count, maxCount int) string {
	if count <= 0 || maxCount <= 0 {
		return " "
	}
	i := int(math.Ceil(float64(count)/float64(maxCount)*float64(len(sparkLevels)))) - 1
	i = max(0, min(i, len(sparkLevels)-1))
	return string(sparkLevels[i])
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// renderTable lays out rows in columns. Columns listed in numeric are right
// aligned. selected < 0 highlights nothing.
func renderTable(header []string, rows [][]string, numeric map[int]bool, selected int) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if numeric[i] {
				parts[i] = padLeft(cell, widths[i])
			} else {
				parts[i] = padRight(cell, widths[i])
			}
		}
		return strings.Join(parts, "  ")
	}

	out := []string{tableHeaderStyle.Render(line(header))}
	for i, row := range rows {
		text := line(row)
		if i == selected {
			text = selectedRowStyle.Render(text)
		}
		out = append(out, text)
	}
	return strings.Join(out, "\n")
}

func keyHelp(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, fmt.Sprintf("%s: %s", pairs[i], pairs[i+1]))
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
