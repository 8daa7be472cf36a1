// Package fuel derives consumption figures from voyage activity records and
// checks them against the reported remaining-on-board balances.
package fuel

import (
	"time"

	"github.com/ngmaloney/vessel-console/internal/coerce"
)

// HoursBetween returns the elapsed hours from start to end. It returns 0
// when either value is empty or unreadable, or when end is not after start.
// It never validates; a malformed record simply contributes nothing.
func HoursBetween(start, end string) float64 {
	s, ok := coerce.Timestamp(start)
	if !ok {
		return 0
	}
	e, ok := coerce.Timestamp(end)
	if !ok {
		return 0
	}
	return HoursBetweenTimes(s, e)
}

// HoursBetweenTimes applies the HoursBetween rules to parsed instants. A zero
// time counts as missing.
func HoursBetweenTimes(start, end time.Time) float64 {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours()
}
