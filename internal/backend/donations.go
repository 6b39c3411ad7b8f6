package backend

import (
	"context"
	"net/http"

	"cargo-portal/internal/model"
)

func (c *Client) CreateDonation(ctx context.Context, in model.DonationInput) error {
	return c.do(ctx, call{method: http.MethodPost, path: "donations", body: in,
		fallback: "Your donation could not be recorded. Please try again."})
}

func (c *Client) ListDonations(ctx context.Context, token string) ([]model.Donation, error) {
	var out []model.Donation
	err := c.do(ctx, call{method: http.MethodGet, path: "donations", token: token, out: &out,
		fallback: "Failed to load donations."})
	return out, err
}

// SendContactMessage forwards the public contact form.
func (c *Client) SendContactMessage(ctx context.Context, msg model.ContactMessage) error {
	return c.do(ctx, call{method: http.MethodPost, path: "contact", body: msg,
		fallback: "Your message could not be sent. Please try again later."})
}
