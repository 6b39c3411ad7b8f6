package backend

import (
	"context"
	"net/http"

	"cargo-portal/internal/model"
)

func (c *Client) ListStatuses(ctx context.Context, token string) ([]model.ShipmentStatus, error) {
	var out []model.ShipmentStatus
	err := c.do(ctx, call{method: http.MethodGet, path: "statuses", token: token, out: &out,
		fallback: "Failed to load shipment statuses."})
	return out, err
}

func (c *Client) GetStatus(ctx context.Context, token, id string) (*model.ShipmentStatus, error) {
	var out model.ShipmentStatus
	if err := c.do(ctx, call{method: http.MethodGet, path: "statuses/" + escape(id), token: token, out: &out,
		fallback: "Failed to load shipment status."}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateStatus(ctx context.Context, token string, in model.ShipmentStatus) error {
	return c.do(ctx, call{method: http.MethodPost, path: "statuses", token: token, body: in,
		fallback: "Failed to create shipment status."})
}

func (c *Client) UpdateStatus(ctx context.Context, token, id string, in model.ShipmentStatus) error {
	return c.do(ctx, call{method: http.MethodPut, path: "statuses/" + escape(id), token: token, body: in,
		fallback: "Failed to update shipment status."})
}

func (c *Client) DeleteStatus(ctx context.Context, token, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "statuses/" + escape(id), token: token,
		fallback: "Failed to delete shipment status."})
}
