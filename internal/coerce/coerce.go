// Package coerce holds the lenient conversions applied to values that come
// back from the fleet API. Numbers and timestamps that cannot be read are
// reported as zero rather than as errors so that aggregates never carry NaN.
package coerce

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Number converts v to a finite float64. Nil, unparsable, NaN and infinite
// values all become 0.
func Number(v any) float64 {
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// layouts accepted by Timestamp, most specific first. Zone-less layouts are
// read in the local zone, the way datetime-local form values are entered.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp parses s with the accepted layouts. The bool is false for an
// empty or unreadable value.
func Timestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for i, layout := range layouts {
		var (
			t   time.Time
			err error
		)
		if i == 0 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
