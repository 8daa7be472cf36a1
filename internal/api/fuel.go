package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ngmaloney/vessel-console/internal/models"
)

func (c *Client) GetFuelConsumption(ctx context.Context, voyageID int64) (*models.FuelConsumption, error) {
	path := fmt.Sprintf("/api/voyages/%d/fuel-consumption", voyageID)
	data, err := c.do(ctx, http.MethodGet, path, nil, nil, "could not load fuel consumption")
	if err != nil {
		return nil, err
	}
	return normalizeFuelConsumption(data)
}

func (c *Client) UpdateRob(ctx context.Context, voyageID int64, in models.RobInput) error {
	if in.Unit == "" {
		in.Unit = models.UnitLiters
	}
	path := fmt.Sprintf("/api/voyages/%d/fuel-consumption/rob", voyageID)
	_, err := c.do(ctx, http.MethodPatch, path, nil, in, "could not save ROB")
	return err
}

func (c *Client) CreateBunker(ctx context.Context, voyageID int64, in models.BunkerInput) error {
	if in.Unit == "" {
		in.Unit = models.UnitLiters
	}
	path := fmt.Sprintf("/api/voyages/%d/fuel-consumption/bunkers", voyageID)
	_, err := c.do(ctx, http.MethodPost, path, nil, in, "could not save bunker")
	return err
}

func (c *Client) UpdateBunker(ctx context.Context, bunkerID int64, in models.BunkerInput) error {
	if in.Unit == "" {
		in.Unit = models.UnitLiters
	}
	path := fmt.Sprintf("/api/fuel-consumption/bunkers/%d", bunkerID)
	_, err := c.do(ctx, http.MethodPatch, path, nil, in, "could not save bunker")
	return err
}

func (c *Client) DeleteBunker(ctx context.Context, bunkerID int64) error {
	path := fmt.Sprintf("/api/fuel-consumption/bunkers/%d", bunkerID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, "could not delete bunker")
	return err
}
