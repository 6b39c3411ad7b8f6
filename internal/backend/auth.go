package backend

import (
	"context"
	"net/http"

	"cargo-portal/internal/model"
)

// Login exchanges credentials for a bearer token and user profile.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	var res model.LoginResult
	err := c.do(ctx, call{
		method:   http.MethodPost,
		path:     "auth/login",
		body:     creds,
		out:      &res,
		fallback: "Login failed. Please check your email and password.",
	})
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, &APIError{Status: http.StatusBadGateway, Message: "Login failed: the server did not return a token."}
	}
	return &res, nil
}

// Me returns the profile for token.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, call{
		method:   http.MethodGet,
		path:     "auth/me",
		token:    token,
		out:      &user,
		fallback: "Failed to load your profile.",
	}); err != nil {
		return nil, err
	}
	return &user, nil
}
