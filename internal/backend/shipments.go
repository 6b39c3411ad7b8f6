package backend

import (
	"context"
	"net/http"

	"cargo-portal/internal/model"
)

// ListShipments returns every shipment visible to token. Filtering and
// pagination happen in the portal.
func (c *Client) ListShipments(ctx context.Context, token string) ([]model.Shipment, error) {
	var out []model.Shipment
	err := c.do(ctx, call{method: http.MethodGet, path: "shipments", token: token, out: &out,
		fallback: "Failed to load shipments."})
	return out, err
}

// GetShipment fetches one shipment by id.
func (c *Client) GetShipment(ctx context.Context, token, id string) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.do(ctx, call{method: http.MethodGet, path: "shipments/" + escape(id), token: token, out: &out,
		fallback: "Failed to load shipment."}); err != nil {
		return nil, err
	}
	return &out, nil
}

// TrackShipment is the public lookup by tracking number.
func (c *Client) TrackShipment(ctx context.Context, trackingNumber string) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.do(ctx, call{method: http.MethodGet, path: "shipments/track/" + escape(trackingNumber), out: &out,
		fallback: "No shipment found for that tracking number."}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateShipment registers a new shipment.
func (c *Client) CreateShipment(ctx context.Context, token string, in model.ShipmentPayload) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.do(ctx, call{method: http.MethodPost, path: "shipments", token: token, body: in, out: &out,
		fallback: "Failed to create shipment."}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateShipment replaces the editable fields of a shipment.
func (c *Client) UpdateShipment(ctx context.Context, token, id string, in model.ShipmentPayload) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.do(ctx, call{method: http.MethodPut, path: "shipments/" + escape(id), token: token, body: in, out: &out,
		fallback: "Failed to update shipment."}); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteShipment removes a shipment.
func (c *Client) DeleteShipment(ctx context.Context, token, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "shipments/" + escape(id), token: token,
		fallback: "Failed to delete shipment."})
}

// UpdateShipmentStatus moves a shipment to another status. Concurrent
// changes to the same shipment are last-write-wins on the backend.
func (c *Client) UpdateShipmentStatus(ctx context.Context, token, id string, change model.StatusChange) (*model.Shipment, error) {
	var out model.Shipment
	if err := c.do(ctx, call{method: http.MethodPatch, path: "shipments/" + escape(id) + "/status", token: token, body: change, out: &out,
		fallback: "Failed to update shipment status."}); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddShipmentReply appends a staff reply.
func (c *Client) AddShipmentReply(ctx context.Context, token, id string, in model.ReplyInput) error {
	return c.do(ctx, call{method: http.MethodPost, path: "shipments/" + escape(id) + "/replies", token: token, body: in,
		fallback: "Failed to add reply."})
}
