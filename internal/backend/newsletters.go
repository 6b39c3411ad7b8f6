package backend

import (
	"context"
	"net/http"

	"cargo-portal/internal/model"
)

// Subscribe adds an address to the newsletter list.
func (c *Client) Subscribe(ctx context.Context, in model.SubscribeInput) error {
	return c.do(ctx, call{method: http.MethodPost, path: "newsletters/subscribe", body: in,
		fallback: "Subscription failed. Please try again later."})
}

func (c *Client) ListSubscribers(ctx context.Context, token string) ([]model.Subscriber, error) {
	var out []model.Subscriber
	err := c.do(ctx, call{method: http.MethodGet, path: "newsletters", token: token, out: &out,
		fallback: "Failed to load subscribers."})
	return out, err
}

func (c *Client) DeleteSubscriber(ctx context.Context, token, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "newsletters/" + escape(id), token: token,
		fallback: "Failed to remove subscriber."})
}

// SendCampaign mails a newsletter to all active subscribers.
func (c *Client) SendCampaign(ctx context.Context, token string, in model.Campaign) (*model.CampaignResult, error) {
	var out model.CampaignResult
	if err := c.do(ctx, call{method: http.MethodPost, path: "newsletters/send", token: token, body: in, out: &out,
		fallback: "Failed to send newsletter."}); err != nil {
		return nil, err
	}
	return &out, nil
}
