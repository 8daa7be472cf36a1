package fuel

import "github.com/ngmaloney/vessel-console/internal/models"

// Metrics is the rollup of one voyage's activities.
type Metrics struct {
	Count                int
	DurationHours        float64
	FuelUsed             float64
	ReeferCount          float64
	MainEngineHours      float64
	GeneratorHours       float64
	ContainerCount       float64
	TotalContainerWeight float64
	FSWAvg               float64
	ByActivityType       map[models.ActivityType]float64
}

// Aggregate sums the activities of a voyage. Container figures only count
// cargo activities; FSWAvg is the mean avgSpeed of full-speed legs that
// carry one, or 0.
func Aggregate(activities []models.Activity) Metrics {
	m := Metrics{
		Count:          len(activities),
		ByActivityType: make(map[models.ActivityType]float64),
	}

	var speedSum float64
	var speedCount int

	for _, a := range activities {
		used := a.FuelUsed.Float()

		m.DurationHours += HoursBetween(a.StartAt, a.EndAt)
		m.FuelUsed += used
		m.ReeferCount += a.ReeferCount.Float()
		m.MainEngineHours += a.MainEngineHours.Float()
		m.GeneratorHours += a.GeneratorHours.Float()
		m.ByActivityType[a.Type] += used

		if a.Type.IsCargo() {
			m.ContainerCount += a.ContainerCount.Float()
			m.TotalContainerWeight += a.TotalContainerWeight.Float()
		}

		if a.Type == models.FullSpeedAway && a.AvgSpeed.IsSet() {
			speedSum += a.AvgSpeed.Float()
			speedCount++
		}
	}

	if speedCount > 0 {
		m.FSWAvg = speedSum / float64(speedCount)
	}
	return m
}

// BreakdownRow is the fuel used by one activity type.
type BreakdownRow struct {
	Type  models.ActivityType
	Label string
	Fuel  float64
}

// Breakdown lists fuel per activity type in display order. Server figures
// in computed win when present; otherwise the local sums are used.
func Breakdown(local Metrics, computed *models.Computed) []BreakdownRow {
	rows := make([]BreakdownRow, 0, len(models.ActivityTypes))
	for _, t := range models.ActivityTypes {
		v := local.ByActivityType[t]
		if computed != nil && computed.ByActivityType != nil {
			v = computed.ByActivityType[string(t)].Float()
		}
		rows = append(rows, BreakdownRow{Type: t, Label: t.Label(), Fuel: v})
	}
	return rows
}
