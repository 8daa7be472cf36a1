package fuel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngmaloney/vessel-console/internal/models"
)

func num(f float64) models.Number { return models.NumberOf(f) }

func TestAggregate_Empty(t *testing.T) {
	m := Aggregate(nil)

	assert.Equal(t, 0, m.Count)
	assert.Zero(t, m.DurationHours)
	assert.Zero(t, m.FuelUsed)
	assert.Zero(t, m.ContainerCount)
	assert.Zero(t, m.FSWAvg)
	assert.Empty(t, m.ByActivityType)
}

func TestAggregate_ContainersOnlyFromCargo(t *testing.T) {
	acts := []models.Activity{
		{Type: models.CargoLoad, ContainerCount: num(10), TotalContainerWeight: num(120)},
		{Type: models.Manoeuvring, ContainerCount: num(999), TotalContainerWeight: num(5000)},
	}

	m := Aggregate(acts)

	assert.Equal(t, 10.0, m.ContainerCount)
	assert.Equal(t, 120.0, m.TotalContainerWeight)
}

func TestAggregate_Sums(t *testing.T) {
	acts := []models.Activity{
		{
			Type:            models.CargoDischarge,
			StartAt:         "2024-01-01T00:00:00Z",
			EndAt:           "2024-01-01T04:00:00Z",
			FuelUsed:        num(100),
			ReeferCount:     num(3),
			MainEngineHours: num(1.5),
			GeneratorHours:  num(4),
			ContainerCount:  num(20),
		},
		{
			Type:     models.FullSpeedAway,
			StartAt:  "2024-01-01T04:00:00Z",
			EndAt:    "2024-01-01T10:00:00Z",
			FuelUsed: num(250.5),
			AvgSpeed: num(12),
		},
		{
			Type:     models.FullSpeedAway,
			StartAt:  "bad",
			EndAt:    "2024-01-01T10:00:00Z",
			AvgSpeed: num(16),
		},
		{Type: models.FullSpeedAway, FuelUsed: num(10)},
		{Type: models.Other, Remark: "crew change"},
	}

	m := Aggregate(acts)

	assert.Equal(t, 5, m.Count)
	assert.InDelta(t, 10.0, m.DurationHours, 1e-9)
	assert.InDelta(t, 360.5, m.FuelUsed, 1e-9)
	assert.Equal(t, 3.0, m.ReeferCount)
	assert.Equal(t, 1.5, m.MainEngineHours)
	assert.Equal(t, 4.0, m.GeneratorHours)
	assert.Equal(t, 20.0, m.ContainerCount)
	assert.Equal(t, 14.0, m.FSWAvg)
	assert.InDelta(t, 260.5, m.ByActivityType[models.FullSpeedAway], 1e-9)
	assert.Equal(t, 100.0, m.ByActivityType[models.CargoDischarge])
}

func TestBreakdown_PrefersComputed(t *testing.T) {
	local := Metrics{ByActivityType: map[models.ActivityType]float64{models.CargoLoad: 50}}

	rows := Breakdown(local, nil)
	assert.Len(t, rows, len(models.ActivityTypes))
	assert.Equal(t, models.CargoLoad, rows[0].Type)
	assert.Equal(t, 50.0, rows[0].Fuel)

	computed := &models.Computed{ByActivityType: map[string]models.Number{"ANCHORING": num(7)}}
	rows = Breakdown(local, computed)
	assert.Equal(t, 0.0, rows[0].Fuel)
	assert.Equal(t, 7.0, rows[4].Fuel)
	assert.Equal(t, "Anchoring", rows[4].Label)
}
