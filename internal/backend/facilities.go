package backend

import (
	"context"
	"net/http"

	"cargo-portal/internal/model"
)

func (c *Client) ListFacilities(ctx context.Context, token string) ([]model.Facility, error) {
	var out []model.Facility
	err := c.do(ctx, call{method: http.MethodGet, path: "facilities", token: token, out: &out,
		fallback: "Failed to load facilities."})
	return out, err
}

func (c *Client) GetFacility(ctx context.Context, token, id string) (*model.Facility, error) {
	var out model.Facility
	if err := c.do(ctx, call{method: http.MethodGet, path: "facilities/" + escape(id), token: token, out: &out,
		fallback: "Failed to load facility."}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFacility(ctx context.Context, token string, in model.Facility) error {
	return c.do(ctx, call{method: http.MethodPost, path: "facilities", token: token, body: in,
		fallback: "Failed to create facility."})
}

func (c *Client) UpdateFacility(ctx context.Context, token, id string, in model.Facility) error {
	return c.do(ctx, call{method: http.MethodPut, path: "facilities/" + escape(id), token: token, body: in,
		fallback: "Failed to update facility."})
}

// SetFacilityActive changes only the active flag.
func (c *Client) SetFacilityActive(ctx context.Context, token, id string, active bool) error {
	return c.do(ctx, call{method: http.MethodPatch, path: "facilities/" + escape(id), token: token,
		body: map[string]bool{"isActive": active}, fallback: "Failed to update facility."})
}

func (c *Client) DeleteFacility(ctx context.Context, token, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "facilities/" + escape(id), token: token,
		fallback: "Failed to delete facility."})
}
