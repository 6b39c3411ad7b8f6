// Package web serves the public site, the dashboard and the push
// subscription API on top of the cargo REST backend.
package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"cargo-portal/config"
	"cargo-portal/internal/backend"
	"cargo-portal/internal/form"
	"cargo-portal/internal/session"
	"cargo-portal/internal/store"
)

// Banner kinds.
const (
	kindSuccess = "success"
	kindError   = "error"
	kindInfo    = "info"
)

// Handler holds shared dependencies for page and API handlers.
type Handler struct {
	cfg      *config.Config
	backend  *backend.Client
	sessions *session.Manager
	store    store.Store
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewHandler creates a new web handler.
func NewHandler(cfg *config.Config, client *backend.Client, sessions *session.Manager, s store.Store, pageCache *cache.Cache, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		backend:  client,
		sessions: sessions,
		store:    s,
		cache:    pageCache,
		logger:   logger.Named("web"),
	}
}

// banner is the dismissible message shown at the top of a page.
type banner struct {
	Kind     string
	Message  string
	Messages []string
}

// render executes a page template with the data every layout needs.
func (h *Handler) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	p := session.Current(c)
	data["Title"] = pageTitle(title, h.cfg.Site.Name)
	data["Heading"] = title
	data["Site"] = h.cfg.Site
	data["Profile"] = p
	data["Path"] = c.Request.URL.Path
	data["PushEnabled"] = h.cfg.Push.Enabled()
	if _, ok := data["Banner"]; !ok && p.IsAuthenticated() {
		if f := h.sessions.TakeFlash(c); f.Message != "" {
			data["Banner"] = &banner{Kind: f.Kind, Message: f.Message}
		}
	}
	c.HTML(status, name, data)
}

func pageTitle(page, site string) string {
	if page == "" {
		return site
	}
	return page + " | " + site
}

// fail renders the error page for a failed backend call.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	if h.expired(c, err) {
		return
	}
	h.render(c, statusFor(err), "error.html", "Error", gin.H{
		"Banner": errorBanner(err, fallback),
	})
}

// Forbidden renders the error page for a role the profile lacks.
func (h *Handler) Forbidden(c *gin.Context) {
	h.render(c, http.StatusForbidden, "error.html", "Access Denied", gin.H{
		"Banner": &banner{Kind: kindError, Message: "Your account does not have access to this page."},
	})
}

// expired ends the session when the backend rejected its token. It
// returns true when the request has been answered.
func (h *Handler) expired(c *gin.Context, err error) bool {
	if !errors.Is(err, backend.ErrUnauthorized) || !session.Current(c).IsAuthenticated() {
		return false
	}
	h.logger.Info("backend rejected session token", zap.String("path", c.Request.URL.Path))
	h.sessions.Destroy(c)
	next := c.Request.URL.RequestURI()
	if c.Request.Method != http.MethodGet {
		next = c.Request.URL.Path
	}
	c.Redirect(http.StatusSeeOther, "/login?expired=1&next="+url.QueryEscape(next))
	return true
}

// done flashes message and redirects after a successful mutation.
func (h *Handler) done(c *gin.Context, to, message string) {
	h.sessions.Flash(c, kindSuccess, message)
	c.Redirect(http.StatusSeeOther, to)
}

// failBack flashes the backend error and redirects, for actions without a
// form to re-render.
func (h *Handler) failBack(c *gin.Context, err error, to, fallback string) {
	if h.expired(c, err) {
		return
	}
	h.sessions.Flash(c, kindError, backend.UserMessage(err, fallback))
	c.Redirect(http.StatusSeeOther, to)
}

func errorBanner(err error, fallback string) *banner {
	return &banner{Kind: kindError, Message: backend.UserMessage(err, fallback)}
}

func invalidBanner(err error) *banner {
	return &banner{Kind: kindError, Message: "Please correct the following:", Messages: form.Messages(err)}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, backend.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}

func token(c *gin.Context) string {
	return session.Current(c).Token
}

func pageParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return n
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/dashboard"
	}
	return next
}

// Healthz reports whether the local database answers.
func (h *Handler) Healthz(c *gin.Context) {
	sqlDB, err := h.store.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
