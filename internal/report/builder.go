// Package report builds the multi-voyage fuel report of a vessel for one
// posting period and exports it.
package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ngmaloney/vessel-console/internal/fuel"
	"github.com/ngmaloney/vessel-console/internal/logging"
	"github.com/ngmaloney/vessel-console/internal/models"
)

// DefaultKPI is the reference consumption in liters per voyage.
const DefaultKPI = 950.0

// ActivityFetcher loads the activities of a voyage.
type ActivityFetcher interface {
	ListActivities(ctx context.Context, voyageID int64) ([]models.Activity, error)
}

// Request selects the voyages to report on. Voyages are expected to be
// filtered to the vessel and period already.
type Request struct {
	Vessel  models.Vessel
	Month   int
	Year    int
	Voyages []models.Voyage
	KPI     float64
}

// Row holds the figures of one voyage.
type Row struct {
	VoyageID           int64   `json:"voyageId" yaml:"voyageId"`
	VoyNo              string  `json:"voyNo" yaml:"voyNo"`
	TotalConsumption   float64 `json:"totalConsumption" yaml:"totalConsumption"`
	TEUs               float64 `json:"teus" yaml:"teus"`
	Weight             float64 `json:"weight" yaml:"weight"`
	PortCalls          int     `json:"portCalls" yaml:"portCalls"`
	PortCallsSynthetic bool    `json:"portCallsSynthetic" yaml:"portCallsSynthetic"`
	PeakReefer         float64 `json:"peakReefer" yaml:"peakReefer"`
	IdleHours          float64 `json:"idleHours" yaml:"idleHours"`
}

// Stat is a total with its per-voyage mean.
type Stat struct {
	Total   float64 `json:"total" yaml:"total"`
	Average float64 `json:"average" yaml:"average"`
}

// Totals aggregates all rows.
type Totals struct {
	Voyages     int  `json:"voyages" yaml:"voyages"`
	Consumption Stat `json:"consumption" yaml:"consumption"`
	TEUs        Stat `json:"teus" yaml:"teus"`
	Weight      Stat `json:"weight" yaml:"weight"`
	PortCalls   Stat `json:"portCalls" yaml:"portCalls"`
	PeakReefer  Stat `json:"peakReefer" yaml:"peakReefer"`
	IdleHours   Stat `json:"idleHours" yaml:"idleHours"`
}

// Report is the result of Build.
type Report struct {
	VesselID    int64     `json:"vesselId" yaml:"vesselId"`
	VesselName  string    `json:"vesselName" yaml:"vesselName"`
	Month       int       `json:"month" yaml:"month"`
	Year        int       `json:"year" yaml:"year"`
	KPI         float64   `json:"kpi" yaml:"kpi"`
	Rows        []Row     `json:"rows" yaml:"rows"`
	Totals      Totals    `json:"totals" yaml:"totals"`
	Chart       Chart     `json:"chart" yaml:"chart"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
}

// Title is the heading used by the screen and the exports.
func (r *Report) Title() string {
	return fmt.Sprintf("%s - Fuel consumption %d/%d", r.VesselName, r.Month, r.Year)
}

// Builder produces reports from the activities of each voyage.
type Builder struct {
	fetcher     ActivityFetcher
	concurrency int
	now         func() time.Time
}

// NewBuilder returns a Builder. A concurrency of 0 means DefaultConcurrency.
func NewBuilder(fetcher ActivityFetcher, concurrency int) *Builder {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Builder{fetcher: fetcher, concurrency: concurrency, now: time.Now}
}

// Build fetches the activities of every voyage and aggregates them. Any
// failed fetch fails the whole report.
func (b *Builder) Build(ctx context.Context, req Request) (*Report, error) {
	kpi := req.KPI
	if kpi == 0 {
		kpi = DefaultKPI
	}

	logger := logging.Entry(ctx).WithFields(log.Fields{
		"vessel":  req.Vessel.ID,
		"period":  fmt.Sprintf("%d/%d", req.Month, req.Year),
		"voyages": len(req.Voyages),
	})
	logger.Info("building fuel report")
	start := time.Now()

	activities, err := FetchAll(ctx, req.Voyages, b.concurrency, func(ctx context.Context, v models.Voyage) ([]models.Activity, error) {
		return b.fetcher.ListActivities(ctx, v.ID)
	})
	if err != nil {
		logger.WithError(err).Error("fuel report failed")
		return nil, fmt.Errorf("building fuel report: %w", err)
	}

	rows := make([]Row, len(req.Voyages))
	for i, v := range req.Voyages {
		rows[i] = RowFor(i, v, activities[i])
	}
	totals := Summarize(rows)

	labels := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = r.VoyNo
		values[i] = r.TotalConsumption
	}

	logger.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("fuel report ready")

	return &Report{
		VesselID:    req.Vessel.ID,
		VesselName:  req.Vessel.Name,
		Month:       req.Month,
		Year:        req.Year,
		KPI:         kpi,
		Rows:        rows,
		Totals:      totals,
		Chart:       NewChart(labels, values, totals.Consumption.Average, kpi),
		GeneratedAt: b.now(),
	}, nil
}

// RowFor computes the row of the voyage at position index. Reefer is the
// peak across activities since it measures simultaneous plugs; idle time
// only counts anchoring.
func RowFor(index int, v models.Voyage, activities []models.Activity) Row {
	row := Row{
		VoyageID:           v.ID,
		VoyNo:              v.VoyNo,
		PortCalls:          SyntheticPortCalls(v.ID),
		PortCallsSynthetic: true,
	}
	if row.VoyNo == "" {
		row.VoyNo = strconv.Itoa(index + 1)
	}

	for _, a := range activities {
		row.TotalConsumption += a.FuelUsed.Float()
		if a.Type.IsCargo() {
			row.TEUs += a.ContainerCount.Float()
			row.Weight += a.TotalContainerWeight.Float()
		}
		row.PeakReefer = max(row.PeakReefer, a.ReeferCount.Float())
		if a.Type == models.Anchoring {
			row.IdleHours += fuel.HoursBetween(a.StartAt, a.EndAt)
		}
	}
	return row
}

// Summarize totals the rows and averages them over the voyage count, or
// over 1 when there are no rows.
func Summarize(rows []Row) Totals {
	t := Totals{Voyages: len(rows)}
	for _, r := range rows {
		t.Consumption.Total += r.TotalConsumption
		t.TEUs.Total += r.TEUs
		t.Weight.Total += r.Weight
		t.PortCalls.Total += float64(r.PortCalls)
		t.PeakReefer.Total += r.PeakReefer
		t.IdleHours.Total += r.IdleHours
	}

	n := float64(max(len(rows), 1))
	for _, s := range []*Stat{&t.Consumption, &t.TEUs, &t.Weight, &t.PortCalls, &t.PeakReefer, &t.IdleHours} {
		s.Average = s.Total / n
	}
	return t
}
