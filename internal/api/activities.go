package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ngmaloney/vessel-console/internal/models"
)

func (c *Client) ListActivities(ctx context.Context, voyageID int64) ([]models.Activity, error) {
	path := fmt.Sprintf("/api/voyages/%d/activities", voyageID)
	data, err := c.do(ctx, http.MethodGet, path, nil, nil, "could not load activities")
	if err != nil {
		return nil, err
	}
	return normalizeActivities(data)
}

func (c *Client) CreateActivity(ctx context.Context, voyageID int64, in models.ActivityInput) error {
	path := fmt.Sprintf("/api/voyages/%d/activities", voyageID)
	_, err := c.do(ctx, http.MethodPost, path, nil, in, "could not save activity")
	return err
}

func (c *Client) UpdateActivity(ctx context.Context, activityID int64, in models.ActivityInput) error {
	path := fmt.Sprintf("/api/activities/%d", activityID)
	_, err := c.do(ctx, http.MethodPatch, path, nil, in, "could not save activity")
	return err
}

func (c *Client) DeleteActivity(ctx context.Context, activityID int64) error {
	path := fmt.Sprintf("/api/activities/%d", activityID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, "could not delete activity")
	return err
}
