package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cargo-portal/internal/backend"
	"cargo-portal/internal/model"
	"cargo-portal/internal/session"
)

// LoginForm shows the sign-in page.
func (h *Handler) LoginForm(c *gin.Context) {
	next := c.Query("next")
	if session.Current(c).IsAuthenticated() {
		c.Redirect(http.StatusSeeOther, safeNext(next))
		return
	}

	data := gin.H{"Next": next, "Form": model.Credentials{}}
	if c.Query("expired") != "" {
		data["Banner"] = &banner{Kind: kindInfo, Message: "Your session has expired. Please sign in again."}
	}
	h.render(c, http.StatusOK, "login.html", "Sign In", data)
}

// Login exchanges credentials for a backend token and starts a session.
func (h *Handler) Login(c *gin.Context) {
	next := c.PostForm("next")

	var creds model.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "login.html", "Sign In", gin.H{
			"Next":   next,
			"Form":   model.Credentials{Email: creds.Email},
			"Banner": invalidBanner(err),
		})
		return
	}

	ctx := c.Request.Context()
	res, err := h.backend.Login(ctx, creds)
	if err != nil {
		h.render(c, loginStatus(err), "login.html", "Sign In", gin.H{
			"Next":   next,
			"Form":   model.Credentials{Email: creds.Email},
			"Banner": errorBanner(err, "Login failed. Please check your email and password."),
		})
		return
	}

	// Some deployments only return the token; fetch the profile separately.
	if res.User.ID == "" && res.User.Email == "" {
		user, err := h.backend.Me(ctx, res.Token)
		if err != nil {
			h.logger.Warn("failed to load profile after login", zap.Error(err))
		} else {
			res.User = *user
		}
	}

	profile, err := h.sessions.Start(c, res)
	if err != nil {
		h.logger.Error("failed to start session", zap.Error(err))
		h.render(c, http.StatusInternalServerError, "login.html", "Sign In", gin.H{
			"Next":   next,
			"Form":   model.Credentials{Email: creds.Email},
			"Banner": &banner{Kind: kindError, Message: "Could not sign you in. Please try again."},
		})
		return
	}

	h.logger.Info("user signed in", zap.String("user", profile.User.Email), zap.Strings("roles", profile.Roles))
	h.done(c, safeNext(next), "Welcome back, "+profile.DisplayName()+".")
}

// Logout ends the session.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Destroy(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// loginStatus maps rejected credentials to 401 and everything else to the
// usual backend failure code.
func loginStatus(err error) int {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity:
			return http.StatusUnauthorized
		}
	}
	return statusFor(err)
}
