// Package voyage loads a voyage with its activities and fuel record and
// applies edits to them. Every edit is validated locally, sent to the API
// and followed by a full reload; nothing is patched in place.
package voyage

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ngmaloney/vessel-console/internal/fuel"
	"github.com/ngmaloney/vessel-console/internal/logging"
	"github.com/ngmaloney/vessel-console/internal/models"
	"github.com/ngmaloney/vessel-console/internal/validate"
)

// Client is the part of the API the service uses.
type Client interface {
	ListVoyages(ctx context.Context, vesselID int64, filter models.VoyageFilter) ([]models.Voyage, error)
	GetVoyage(ctx context.Context, voyageID int64) (*models.Voyage, error)
	CreateVoyage(ctx context.Context, vesselID int64, in models.VoyageInput) error
	UpdateVoyage(ctx context.Context, voyageID int64, in models.VoyageInput) error
	SetVoyageStatus(ctx context.Context, voyageID int64, status models.VoyageStatus) error
	DeleteVoyage(ctx context.Context, voyageID int64) error

	ListActivities(ctx context.Context, voyageID int64) ([]models.Activity, error)
	CreateActivity(ctx context.Context, voyageID int64, in models.ActivityInput) error
	UpdateActivity(ctx context.Context, activityID int64, in models.ActivityInput) error
	DeleteActivity(ctx context.Context, activityID int64) error

	GetFuelConsumption(ctx context.Context, voyageID int64) (*models.FuelConsumption, error)
	UpdateRob(ctx context.Context, voyageID int64, in models.RobInput) error
	CreateBunker(ctx context.Context, voyageID int64, in models.BunkerInput) error
	UpdateBunker(ctx context.Context, bunkerID int64, in models.BunkerInput) error
	DeleteBunker(ctx context.Context, bunkerID int64) error
}

// Detail is a voyage with everything derived from it.
type Detail struct {
	Voyage         models.Voyage
	Activities     []models.Activity
	Fuel           models.FuelConsumption
	Metrics        fuel.Metrics
	Breakdown      []fuel.BreakdownRow
	Reconciliation fuel.Reconciliation
	LoadedAt       time.Time
}

// Title is "Voy <no>", or "Voy #<id>" when the voyage has no number.
func (d *Detail) Title() string {
	if d.Voyage.VoyNo != "" {
		return "Voy " + d.Voyage.VoyNo
	}
	return fmt.Sprintf("Voy #%d", d.Voyage.ID)
}

type Service struct {
	client Client
	now    func() time.Time
}

func NewService(client Client) *Service {
	return &Service{client: client, now: time.Now}
}

// Load fetches the voyage, its activities and its fuel record concurrently.
// Any failure fails the whole load.
func (s *Service) Load(ctx context.Context, voyageID int64) (*Detail, error) {
	ctx, _ = logging.NewCycle(ctx)
	logger := logging.Entry(ctx).WithField("voyage", voyageID)
	start := s.now()

	var (
		voy  *models.Voyage
		acts []models.Activity
		rec  *models.FuelConsumption
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		voy, err = s.client.GetVoyage(gctx, voyageID)
		return err
	})
	g.Go(func() error {
		var err error
		acts, err = s.client.ListActivities(gctx, voyageID)
		return err
	})
	g.Go(func() error {
		var err error
		rec, err = s.client.GetFuelConsumption(gctx, voyageID)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.WithError(err).Warn("Voyage detail load failed")
		return nil, err
	}

	d := &Detail{
		Voyage:     *voy,
		Activities: acts,
		LoadedAt:   s.now(),
	}
	if rec != nil {
		d.Fuel = *rec
	}
	if d.Activities == nil {
		d.Activities = []models.Activity{}
	}
	d.compute()

	logger.WithFields(log.Fields{
		"activities": len(d.Activities),
		"bunkers":    len(d.Fuel.Bunkers),
		"status":     d.Reconciliation.Status.String(),
		"took":       s.now().Sub(start).String(),
	}).Info("Voyage detail loaded")
	return d, nil
}

func (d *Detail) compute() {
	d.Metrics = fuel.Aggregate(d.Activities)
	d.Breakdown = fuel.Breakdown(d.Metrics, d.Fuel.Computed)
	d.Reconciliation = fuel.ReconcileRecord(d.Fuel, d.Metrics)
}

// SaveActivity creates the activity when activityID is 0, otherwise
// updates it, and reloads the voyage.
func (s *Service) SaveActivity(ctx context.Context, voyageID, activityID int64, in models.ActivityInput) (*Detail, error) {
	if err := validate.Activity(in); err != nil {
		return nil, err
	}
	var err error
	if activityID == 0 {
		err = s.client.CreateActivity(ctx, voyageID, in)
	} else {
		err = s.client.UpdateActivity(ctx, activityID, in)
	}
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, voyageID)
}

func (s *Service) DeleteActivity(ctx context.Context, voyageID, activityID int64) (*Detail, error) {
	if err := s.client.DeleteActivity(ctx, activityID); err != nil {
		return nil, err
	}
	return s.Load(ctx, voyageID)
}

// SaveRob overwrites both ROB values. Concurrent editors are not detected;
// the last write wins.
func (s *Service) SaveRob(ctx context.Context, voyageID int64, in models.RobInput) (*Detail, error) {
	if in.Unit == "" {
		in.Unit = models.UnitLiters
	}
	if err := validate.Rob(in); err != nil {
		return nil, err
	}
	if err := s.client.UpdateRob(ctx, voyageID, in); err != nil {
		return nil, err
	}
	return s.Load(ctx, voyageID)
}

// SaveBunker creates the bunker when bunkerID is 0, otherwise updates it.
func (s *Service) SaveBunker(ctx context.Context, voyageID, bunkerID int64, in models.BunkerInput) (*Detail, error) {
	if in.Unit == "" {
		in.Unit = models.UnitLiters
	}
	if err := validate.Bunker(in); err != nil {
		return nil, err
	}
	var err error
	if bunkerID == 0 {
		err = s.client.CreateBunker(ctx, voyageID, in)
	} else {
		err = s.client.UpdateBunker(ctx, bunkerID, in)
	}
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, voyageID)
}

func (s *Service) DeleteBunker(ctx context.Context, voyageID, bunkerID int64) (*Detail, error) {
	if err := s.client.DeleteBunker(ctx, bunkerID); err != nil {
		return nil, err
	}
	return s.Load(ctx, voyageID)
}
