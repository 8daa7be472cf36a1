package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVoyages_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id": 1}, {"id": 2}]`, 2},
		{"wrapped", `{"voyages": [{"id": 1}]}`, 1},
		{"wrapped under other key", `{"items": [{"id": 1}]}`, 0},
		{"wrapped non-array", `{"voyages": {"id": 1}}`, 0},
		{"null", `null`, 0},
		{"empty body", ``, 0},
		{"string", `"nope"`, 0},
		{"empty array", `[]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeVoyages([]byte(tt.body))
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestNormalizeActivities_FlexibleNumbers(t *testing.T) {
	got, err := normalizeActivities([]byte(`{"activities": [
		{"id": 1, "type": "CARGO_LOAD", "fuelUsed": "12.5", "containerCount": 40},
		{"id": 2, "type": "ANCHORING", "fuelUsed": null, "reeferCount": "abc"}
	]}`))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 12.5, got[0].FuelUsed.Float())
	assert.Equal(t, 40.0, got[0].ContainerCount.Float())
	assert.False(t, got[1].FuelUsed.IsSet())
	assert.Equal(t, 0.0, got[1].ReeferCount.Float())
}

func TestNormalizeVessels_Assignments(t *testing.T) {
	got, err := normalizeVessels([]byte(`{"vessels": [{"id": 1, "name": "Sea Star", "assignments": [{"user": {"id": 4, "email": "c@f.t"}}]}]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Responsible())
	assert.Equal(t, int64(4), got[0].Responsible().ID)
}

func TestNormalizeUsers_MalformedArray(t *testing.T) {
	_, err := normalizeUsers([]byte(`[{"id": "x"`))
	assert.Error(t, err)
}

func TestNormalizeFuelConsumption(t *testing.T) {
	t.Run("partial record", func(t *testing.T) {
		rec, err := normalizeFuelConsumption([]byte(`{"rob": {"openingRob": "1000"}}`))
		require.NoError(t, err)
		assert.Equal(t, 1000.0, rec.Rob.OpeningRob.Float())
		assert.Equal(t, 0.0, rec.Rob.ClosingRob.Float())
		assert.Equal(t, "L", rec.Rob.Unit)
		assert.NotNil(t, rec.Bunkers)
		assert.Empty(t, rec.Bunkers)
		assert.Nil(t, rec.Computed)
	})

	t.Run("full record", func(t *testing.T) {
		rec, err := normalizeFuelConsumption([]byte(`{
			"rob": {"openingRob": 1000, "closingRob": 400, "unit": "L"},
			"bunkers": [{"id": 1, "at": "2025-01-02T10:00", "amount": "50.5"}],
			"computed": {"consumedFromActivities": 650, "byActivityType": {"CARGO_LOAD": "300"}}
		}`))
		require.NoError(t, err)
		require.Len(t, rec.Bunkers, 1)
		assert.Equal(t, 50.5, rec.Bunkers[0].Amount.Float())
		assert.Equal(t, "L", rec.Bunkers[0].Unit)
		require.NotNil(t, rec.Computed)
		assert.Equal(t, 650.0, rec.Computed.ConsumedFromActivities.Float())
		assert.Equal(t, 300.0, rec.Computed.ByActivityType["CARGO_LOAD"].Float())
	})

	t.Run("not an object", func(t *testing.T) {
		rec, err := normalizeFuelConsumption([]byte(`null`))
		require.NoError(t, err)
		assert.Equal(t, "L", rec.Rob.Unit)
		assert.Empty(t, rec.Bunkers)
	})
}
