package voyage

import (
	"context"

	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/validate"
)

// List returns the voyages of a vessel for a posting period, tagged with
// the vessel's name.
func (s *Service) List(ctx context.Context, vessel models.Vessel, filter models.VoyageFilter) ([]models.Voyage, error) {
	voyages, err := s.client.ListVoyages(ctx, vessel.ID, filter)
	if err != nil {
		return nil, err
	}
	for i := range voyages {
		voyages[i].VesselName = vessel.Name
	}
	return voyages, nil
}

// Create opens a new voyage. Only number, start and posting period are sent.
func (s *Service) Create(ctx context.Context, vesselID int64, in models.VoyageInput) error {
	in.EndAt = nil
	in.Status = ""
	if err := validate.Voyage(in); err != nil {
		return err
	}
	return s.client.CreateVoyage(ctx, vesselID, in)
}

func (s *Service) Update(ctx context.Context, voyageID int64, in models.VoyageInput) error {
	if in.EndAt != nil && *in.EndAt == "" {
		in.EndAt = nil
	}
	if err := validate.Voyage(in); err != nil {
		return err
	}
	return s.client.UpdateVoyage(ctx, voyageID, in)
}

// ToggleStatus flips OPEN and CLOSED and returns the new status.
func (s *Service) ToggleStatus(ctx context.Context, v models.Voyage) (models.VoyageStatus, error) {
	next := v.NextStatus()
	if err := validate.StatusChange(v, next); err != nil {
		return v.Status, err
	}
	if err := s.client.SetVoyageStatus(ctx, v.ID, next); err != nil {
		return v.Status, err
	}
	return next, nil
}

func (s *Service) Delete(ctx context.Context, voyageID int64) error {
	return s.client.DeleteVoyage(ctx, voyageID)
}
