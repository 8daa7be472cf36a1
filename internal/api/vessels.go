package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ngmaloney/vessel-console/internal/models"
)

const vesselCacheNamespace = "vessels"

func (c *Client) vesselCacheKey() string {
	return CacheKey(vesselCacheNamespace, c.baseURL+"/api/vessels|"+c.token())
}

// ListVessels returns the vessels visible to the current user. The result
// is served from the cache when one is configured.
func (c *Client) ListVessels(ctx context.Context) ([]models.Vessel, error) {
	key := ""
	if c.cache != nil {
		key = c.vesselCacheKey()
		if data, ok := c.cache.Get(ctx, key); ok {
			if vessels, err := normalizeVessels(data); err == nil {
				return vessels, nil
			}
		}
	}

	data, err := c.do(ctx, http.MethodGet, "/api/vessels", nil, nil, "could not load vessels")
	if err != nil {
		return nil, err
	}
	vessels, err := normalizeVessels(data)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, data, c.cacheTTL)
	}
	return vessels, nil
}

func (c *Client) CreateVessel(ctx context.Context, in models.VesselInput) error {
	if _, err := c.do(ctx, http.MethodPost, "/api/vessels", nil, in, "could not create vessel"); err != nil {
		return err
	}
	c.invalidateVessels(ctx)
	return nil
}

// AssignVessel makes userID the responsible user of the vessel.
func (c *Client) AssignVessel(ctx context.Context, vesselID, userID int64) error {
	path := fmt.Sprintf("/api/vessels/%d/assign", vesselID)
	body := map[string]int64{"userId": userID}
	if _, err := c.do(ctx, http.MethodPost, path, nil, body, "could not assign vessel"); err != nil {
		return err
	}
	c.invalidateVessels(ctx)
	return nil
}

func (c *Client) invalidateVessels(ctx context.Context) {
	if c.cache != nil {
		c.cache.Delete(ctx, c.vesselCacheKey())
	}
}
