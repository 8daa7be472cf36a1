// Package api is the client of the fleet REST API.
package api

import (
	"context"

	"github.com/ngmaloney/vessel-console/internal/models"
)

// AuthClient signs in and identifies the current user.
type AuthClient interface {
	// Login exchanges credentials for a bearer token
	Login(ctx context.Context, email, password string) (string, error)

	// Me returns the user the current token belongs to
	Me(ctx context.Context) (*models.User, error)
}

// VesselClient reads and manages vessels.
type VesselClient interface {
	ListVessels(ctx context.Context) ([]models.Vessel, error)
	CreateVessel(ctx context.Context, in models.VesselInput) error
	AssignVessel(ctx context.Context, vesselID, userID int64) error
}

// VoyageClient reads and manages voyages.
type VoyageClient interface {
	// ListVoyages lists a vessel's voyages, optionally for one posting period
	ListVoyages(ctx context.Context, vesselID int64, filter models.VoyageFilter) ([]models.Voyage, error)
	GetVoyage(ctx context.Context, voyageID int64) (*models.Voyage, error)
	CreateVoyage(ctx context.Context, vesselID int64, in models.VoyageInput) error
	UpdateVoyage(ctx context.Context, voyageID int64, in models.VoyageInput) error
	SetVoyageStatus(ctx context.Context, voyageID int64, status models.VoyageStatus) error
	DeleteVoyage(ctx context.Context, voyageID int64) error
}

// ActivityClient reads and manages voyage activities.
type ActivityClient interface {
	ListActivities(ctx context.Context, voyageID int64) ([]models.Activity, error)
	CreateActivity(ctx context.Context, voyageID int64, in models.ActivityInput) error
	UpdateActivity(ctx context.Context, activityID int64, in models.ActivityInput) error
	DeleteActivity(ctx context.Context, activityID int64) error
}

// FuelClient reads a voyage's fuel record and writes ROB and bunkers.
type FuelClient interface {
	GetFuelConsumption(ctx context.Context, voyageID int64) (*models.FuelConsumption, error)

	// UpdateRob overwrites opening and closing ROB; the last write wins
	UpdateRob(ctx context.Context, voyageID int64, in models.RobInput) error
	CreateBunker(ctx context.Context, voyageID int64, in models.BunkerInput) error
	UpdateBunker(ctx context.Context, bunkerID int64, in models.BunkerInput) error
	DeleteBunker(ctx context.Context, bunkerID int64) error
}

// UserClient lists accounts.
type UserClient interface {
	ListUsers(ctx context.Context, q UserQuery) ([]models.User, error)
}

// TokenSource supplies the bearer token and is told when the server
// rejects it.
type TokenSource interface {
	Token() string
	Invalidate()
}

var (
	_ AuthClient     = (*Client)(nil)
	_ VesselClient   = (*Client)(nil)
	_ VoyageClient   = (*Client)(nil)
	_ ActivityClient = (*Client)(nil)
	_ FuelClient     = (*Client)(nil)
	_ UserClient     = (*Client)(nil)
)
