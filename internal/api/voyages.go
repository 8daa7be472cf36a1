package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ngmaloney/vessel-console/internal/models"
)

func (c *Client) ListVoyages(ctx context.Context, vesselID int64, filter models.VoyageFilter) ([]models.Voyage, error) {
	query := url.Values{}
	if filter.Year > 0 {
		query.Set("year", strconv.Itoa(filter.Year))
	}
	if filter.Month > 0 {
		query.Set("month", strconv.Itoa(filter.Month))
	}

	path := fmt.Sprintf("/api/vessels/%d/voyages", vesselID)
	data, err := c.do(ctx, http.MethodGet, path, query, nil, "could not load voyages")
	if err != nil {
		return nil, err
	}
	return normalizeVoyages(data)
}

func (c *Client) GetVoyage(ctx context.Context, voyageID int64) (*models.Voyage, error) {
	path := fmt.Sprintf("/api/voyages/%d", voyageID)
	data, err := c.do(ctx, http.MethodGet, path, nil, nil, "could not load voyage")
	if err != nil {
		return nil, err
	}

	// Some deployments wrap the record as {"voyage": {...}}.
	var wrapped struct {
		Voyage *models.Voyage `json:"voyage"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Voyage != nil {
		return wrapped.Voyage, nil
	}
	var voyage models.Voyage
	if err := json.Unmarshal(data, &voyage); err != nil {
		return nil, fmt.Errorf("failed to decode voyage: %w", err)
	}
	return &voyage, nil
}

// CreateVoyage sends only the fields the create endpoint accepts.
func (c *Client) CreateVoyage(ctx context.Context, vesselID int64, in models.VoyageInput) error {
	body := struct {
		VoyNo        string `json:"voyNo"`
		StartAt      string `json:"startAt"`
		PostingMonth int    `json:"postingMonth"`
		PostingYear  int    `json:"postingYear"`
	}{in.VoyNo, in.StartAt, in.PostingMonth, in.PostingYear}

	path := fmt.Sprintf("/api/vessels/%d/voyages", vesselID)
	_, err := c.do(ctx, http.MethodPost, path, nil, body, "could not create voyage")
	return err
}

func (c *Client) UpdateVoyage(ctx context.Context, voyageID int64, in models.VoyageInput) error {
	path := fmt.Sprintf("/api/voyages/%d", voyageID)
	_, err := c.do(ctx, http.MethodPatch, path, nil, in, "could not update voyage")
	return err
}

func (c *Client) SetVoyageStatus(ctx context.Context, voyageID int64, status models.VoyageStatus) error {
	path := fmt.Sprintf("/api/voyages/%d/status", voyageID)
	body := map[string]models.VoyageStatus{"status": status}
	_, err := c.do(ctx, http.MethodPatch, path, nil, body, "could not change voyage status")
	return err
}

func (c *Client) DeleteVoyage(ctx context.Context, voyageID int64) error {
	path := fmt.Sprintf("/api/voyages/%d", voyageID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, "could not delete voyage")
	return err
}
