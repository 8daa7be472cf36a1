// Package dashboard rolls voyages and their activities up into the fleet
// summary: fuel by activity type, containers, port calls and a trend.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/vessel-console/internal/logging"
	"github.com/ngmaloney/vessel-console/internal/models"
)

// RecentLimit is the number of voyages listed as recent.
const RecentLimit = 8

// Source is the slice of the fleet API the dashboard reads.
type Source interface {
	ListVessels(ctx context.Context) ([]models.Vessel, error)
	ListVoyages(ctx context.Context, vesselID int64, filter models.VoyageFilter) ([]models.Voyage, error)
	ListActivities(ctx context.Context, voyageID int64) ([]models.Activity, error)
}

// Filter selects the vessels and period. Zero VesselID means all vessels,
// zero Month means the whole year.
type Filter struct {
	VesselID int64
	Month    int
	Year     int
}

// Bucket is one point of the trend: voyages started on a day or in a month.
type Bucket struct {
	Label string
	Count int
}

// Containers totals container activity. C20, C40 and DG stay 0 until the
// API records container sizes and dangerous goods.
type Containers struct {
	Total  float64
	C20    float64
	C40    float64
	Reefer float64
	DG     float64
}

// Fuel totals positive fuel use.
type Fuel struct {
	TotalUsed      float64
	ByActivityType map[models.ActivityType]float64
}

// Summary is the dashboard for one filter.
type Summary struct {
	Filter      Filter
	Vessels     []models.Vessel
	VoyageCount int
	Containers  Containers
	Fuel        Fuel
	Ports       map[Zone]*PortCalls
	Trend       []Bucket
	Recent      []models.Voyage
}

// Aggregator computes summaries from a Source.
type Aggregator struct {
	source Source
	loc    *time.Location
}

// NewAggregator returns an Aggregator bucketing dates in loc, or in the
// local zone when loc is nil.
func NewAggregator(source Source, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	return &Aggregator{source: source, loc: loc}
}

// Summarize fetches vessels, their voyages and every voyage's activities,
// one request at a time, and rolls them up. Any failed request fails the
// summary.
func (a *Aggregator) Summarize(ctx context.Context, f Filter) (*Summary, error) {
	logger := logging.Entry(ctx).WithFields(log.Fields{"vessel": f.VesselID, "month": f.Month, "year": f.Year})
	start := time.Now()

	vessels, err := a.source.ListVessels(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vessels: %w", err)
	}

	var voyages []models.Voyage
	for _, v := range selectVessels(vessels, f.VesselID) {
		list, err := a.source.ListVoyages(ctx, v.ID, models.VoyageFilter{Year: f.Year, Month: f.Month})
		if err != nil {
			return nil, fmt.Errorf("loading voyages of %s: %w", v.Name, err)
		}
		for _, voy := range list {
			voy.VesselName = v.Name
			voyages = append(voyages, voy)
		}
	}
	SortByStartDesc(voyages)

	s := &Summary{
		Filter:      f,
		Vessels:     vessels,
		VoyageCount: len(voyages),
		Fuel:        Fuel{ByActivityType: make(map[models.ActivityType]float64)},
		Ports:       newPortCalls(),
		Trend:       Trend(voyages, f, a.loc),
		Recent:      voyages[:min(RecentLimit, len(voyages))],
	}

	for _, voy := range voyages {
		acts, err := a.source.ListActivities(ctx, voy.ID)
		if err != nil {
			return nil, fmt.Errorf("loading activities of voyage %s: %w", voy.VoyNo, err)
		}
		s.add(acts)
	}

	logger.WithFields(log.Fields{
		"voyages": len(voyages),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("dashboard summary ready")
	return s, nil
}

func (s *Summary) add(acts []models.Activity) {
	for _, a := range acts {
		if used := a.FuelUsed.Float(); used > 0 {
			s.Fuel.TotalUsed += used
			t := a.Type
			if t == "" {
				t = models.Other
			}
			s.Fuel.ByActivityType[t] += used
		}

		if a.Type.IsCargo() {
			s.Containers.Total += a.ContainerCount.Float()
		}
		// Fleet-wide volume, so reefers are summed rather than peaked.
		s.Containers.Reefer += a.ReeferCount.Float()

		if zone, port, ok := ClassifyPort(a.Remark); ok {
			s.Ports[zone].add(port)
		}
	}
}

func selectVessels(vessels []models.Vessel, id int64) []models.Vessel {
	if id == 0 {
		return vessels
	}
	for _, v := range vessels {
		if v.ID == id {
			return []models.Vessel{v}
		}
	}
	return nil
}

// SortByStartDesc orders voyages newest first. Voyages without a readable
// start go last, keeping their relative order.
func SortByStartDesc(voyages []models.Voyage) {
	sort.SliceStable(voyages, func(i, j int) bool {
		a, okA := voyages[i].Start()
		b, okB := voyages[j].Start()
		if okA != okB {
			return okA
		}
		return a.After(b)
	})
}

// DaysIn returns the number of days of month in year.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Trend counts voyage starts per day of the filtered month, or per month
// when the filter covers the whole year. Every bucket is present, empty
// ones at 0. Voyages without a readable start are skipped.
func Trend(voyages []models.Voyage, f Filter, loc *time.Location) []Bucket {
	if loc == nil {
		loc = time.Local
	}
	size := 12
	if f.Month != 0 {
		size = DaysIn(f.Year, f.Month)
	}

	buckets := make([]Bucket, size)
	for i := range buckets {
		buckets[i].Label = strconv.Itoa(i + 1)
	}

	for _, v := range voyages {
		t, ok := v.Start()
		if !ok {
			continue
		}
		t = t.In(loc)
		idx := int(t.Month())
		if f.Month != 0 {
			idx = t.Day()
		}
		if idx >= 1 && idx <= size {
			buckets[idx-1].Count++
		}
	}
	return buckets
}

// TrendMax is the largest bucket count, at least 1.
func TrendMax(buckets []Bucket) int {
	m := 1
	for _, b := range buckets {
		m = max(m, b.Count)
	}
	return m
}

// Zone is a port group encoded in activity remarks.
type Zone string

const (
	ZonePAT Zone = "PAT"
	ZoneLCB Zone = "LCB"
)

// Zones lists the recognised zones in display order.
var Zones = []Zone{ZonePAT, ZoneLCB}

// PortCalls counts calls of one zone, in total and per port name.
type PortCalls struct {
	TotalCalls int
	ByPort     map[string]int
}

func (p *PortCalls) add(port string) {
	p.TotalCalls++
	p.ByPort[port]++
}

// Ports returns the port names sorted by calls, then by name.
func (p *PortCalls) Ports() []string {
	names := make([]string, 0, len(p.ByPort))
	for name := range p.ByPort {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if p.ByPort[names[i]] != p.ByPort[names[j]] {
			return p.ByPort[names[i]] > p.ByPort[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func newPortCalls() map[Zone]*PortCalls {
	m := make(map[Zone]*PortCalls, len(Zones))
	for _, z := range Zones {
		m[z] = &PortCalls{ByPort: make(map[string]int)}
	}
	return m
}

// ClassifyPort reads a "ZONE:Port name" tag from a remark. The zone prefix
// is case-insensitive; an empty port name becomes "-". Remarks without a
// known prefix are not port calls.
func ClassifyPort(remark string) (Zone, string, bool) {
	text := strings.TrimSpace(remark)
	for _, z := range Zones {
		prefix := string(z) + ":"
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			port := strings.TrimSpace(text[len(prefix):])
			if port == "" {
				port = "-"
			}
			return z, port, true
		}
	}
	return "", "", false
}
