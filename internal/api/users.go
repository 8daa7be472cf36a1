package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ngmaloney/vessel-console/internal/models"
)

// UserQuery filters the user list. Zero values are left out of the query.
type UserQuery struct {
	Role       string
	Unassigned bool
	Minimal    bool
	Q          string
}

func (q UserQuery) values() url.Values {
	v := url.Values{}
	if q.Role != "" {
		v.Set("role", q.Role)
	}
	if q.Unassigned {
		v.Set("unassigned", "true")
	}
	if q.Minimal {
		v.Set("minimal", "true")
	}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	return v
}

func (c *Client) ListUsers(ctx context.Context, q UserQuery) ([]models.User, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/users", q.values(), nil, "could not load users")
	if err != nil {
		return nil, err
	}
	return normalizeUsers(data)
}
