package backend

import (
	"context"
	"net/http"
	"net/url"

	"cargo-portal/internal/model"
)

var slidePaths = map[model.SlideKind]string{
	model.SlideHero:    "hero-slides",
	model.SlideService: "service-slides",
	model.SlideMessage: "message-slides",
}

func slidePath(kind model.SlideKind) string {
	return slidePaths[kind]
}

// ListSlides returns every slide of kind, active or not.
func (c *Client) ListSlides(ctx context.Context, token string, kind model.SlideKind) ([]model.Slide, error) {
	var out []model.Slide
	err := c.do(ctx, call{method: http.MethodGet, path: slidePath(kind), token: token, out: &out,
		fallback: "Failed to load slides."})
	return out, err
}

// ListActiveSlides is the unauthenticated variant used by the public pages.
func (c *Client) ListActiveSlides(ctx context.Context, kind model.SlideKind) ([]model.Slide, error) {
	var out []model.Slide
	err := c.do(ctx, call{method: http.MethodGet, path: slidePath(kind), query: url.Values{"active": {"true"}}, out: &out,
		fallback: "Failed to load slides."})
	return out, err
}

func (c *Client) GetSlide(ctx context.Context, token string, kind model.SlideKind, id string) (*model.Slide, error) {
	var out model.Slide
	if err := c.do(ctx, call{method: http.MethodGet, path: slidePath(kind) + "/" + escape(id), token: token, out: &out,
		fallback: "Failed to load slide."}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSlide(ctx context.Context, token string, kind model.SlideKind, in model.Slide) error {
	return c.do(ctx, call{method: http.MethodPost, path: slidePath(kind), token: token, body: in,
		fallback: "Failed to create slide."})
}

func (c *Client) UpdateSlide(ctx context.Context, token string, kind model.SlideKind, id string, in model.Slide) error {
	return c.do(ctx, call{method: http.MethodPut, path: slidePath(kind) + "/" + escape(id), token: token, body: in,
		fallback: "Failed to update slide."})
}

func (c *Client) DeleteSlide(ctx context.Context, token string, kind model.SlideKind, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: slidePath(kind) + "/" + escape(id), token: token,
		fallback: "Failed to delete slide."})
}
