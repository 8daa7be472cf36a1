package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ngmaloney/vessel-console/internal/models"
)

// normalizeList accepts a bare JSON array or an object wrapping the array
// under field. Any other shape yields an empty list.
func normalizeList[T any](data []byte, field string) ([]T, error) {
	list := []T{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return list, nil
	}

	raw := trimmed
	switch trimmed[0] {
	case '[':
	case '{':
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", field, err)
		}
		inner := bytes.TrimSpace(wrapped[field])
		if len(inner) == 0 || inner[0] != '[' {
			return list, nil
		}
		raw = inner
	default:
		return list, nil
	}

	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", field, err)
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

func normalizeVessels(data []byte) ([]models.Vessel, error) {
	return normalizeList[models.Vessel](data, "vessels")
}

func normalizeVoyages(data []byte) ([]models.Voyage, error) {
	return normalizeList[models.Voyage](data, "voyages")
}

func normalizeActivities(data []byte) ([]models.Activity, error) {
	return normalizeList[models.Activity](data, "activities")
}

func normalizeUsers(data []byte) ([]models.User, error) {
	return normalizeList[models.User](data, "users")
}

// normalizeFuelConsumption fills the defaults of a partial fuel record:
// ROB values stay 0 when missing, the unit is liters, bunkers is never nil
// and computed stays nil when the server omits it.
func normalizeFuelConsumption(data []byte) (*models.FuelConsumption, error) {
	rec := &models.FuelConsumption{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, rec); err != nil {
			return nil, fmt.Errorf("failed to decode fuel consumption: %w", err)
		}
	}
	if rec.Rob.Unit == "" {
		rec.Rob.Unit = models.UnitLiters
	}
	if rec.Bunkers == nil {
		rec.Bunkers = []models.Bunker{}
	}
	for i := range rec.Bunkers {
		if rec.Bunkers[i].Unit == "" {
			rec.Bunkers[i].Unit = models.UnitLiters
		}
	}
	return rec, nil
}
