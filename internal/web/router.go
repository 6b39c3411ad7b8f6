package web

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"cargo-portal/internal/mw"
	"cargo-portal/internal/session"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), mw.Logger(h.logger.Named("http")))
	r.SetHTMLTemplate(tmpl)

	// Initialize middleware
	srv := h.cfg.Server
	rateLimiter := mw.RateLimiter(rate.Limit(srv.RateLimitPerSec), srv.RateLimitBurst)
	caching := mw.Cache(h.cache, srv.CacheTTL)

	r.Use(mw.Session(h.sessions), rateLimiter)

	r.GET("/healthz", h.Healthz)

	// Public site
	r.GET("/", caching, h.Home)
	r.GET("/about", caching, h.About)
	r.GET("/services", caching, h.Services)
	r.GET("/contact", h.ContactForm)
	r.POST("/contact", h.SendContact)
	r.GET("/track", h.Track)
	r.POST("/newsletter", h.Subscribe)
	r.GET("/donate", h.DonateForm)
	r.POST("/donate", h.Donate)

	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	// Push API
	api := r.Group("/api/push")
	{
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)
		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
	}

	// Dashboard
	dash := r.Group("/dashboard", mw.RequireAuth(), mw.RequireRole((*session.Profile).CanManageShipments, h.Forbidden))
	{
		dash.GET("", h.Dashboard)

		dash.GET("/shipments", h.ListShipments)
		dash.GET("/shipments/new", h.NewShipment)
		dash.POST("/shipments", h.CreateShipment)
		dash.GET("/shipments/:id", h.ShowShipment)
		dash.GET("/shipments/:id/edit", h.EditShipment)
		dash.POST("/shipments/:id", h.UpdateShipment)
		dash.POST("/shipments/:id/delete", h.DeleteShipment)
		dash.POST("/shipments/:id/status", h.ChangeShipmentStatus)
		dash.POST("/shipments/:id/replies", h.AddShipmentReply)
		dash.GET("/shipments/:id/waybill.pdf", h.ShipmentWaybill)
	}

	content := dash.Group("", mw.RequireRole((*session.Profile).CanManageContent, h.Forbidden))
	{
		content.GET("/facilities", h.ListFacilities)
		content.GET("/facilities/new", h.NewFacility)
		content.POST("/facilities", h.CreateFacility)
		content.GET("/facilities/:id/edit", h.EditFacility)
		content.POST("/facilities/:id", h.UpdateFacility)
		content.POST("/facilities/:id/toggle", h.ToggleFacility)
		content.POST("/facilities/:id/delete", h.DeleteFacility)

		content.GET("/statuses", h.ListStatuses)
		content.GET("/statuses/new", h.NewStatus)
		content.POST("/statuses", h.CreateStatus)
		content.GET("/statuses/:id/edit", h.EditStatus)
		content.POST("/statuses/:id", h.UpdateStatus)
		content.POST("/statuses/:id/delete", h.DeleteStatus)

		content.GET("/slides/:kind", h.ListSlides)
		content.GET("/slides/:kind/new", h.NewSlide)
		content.POST("/slides/:kind", h.CreateSlide)
		content.GET("/slides/:kind/:id/edit", h.EditSlide)
		content.POST("/slides/:kind/:id", h.UpdateSlide)
		content.POST("/slides/:kind/:id/delete", h.DeleteSlide)

		content.GET("/newsletters", h.ListSubscribers)
		content.POST("/newsletters/campaign", h.SendCampaign)
		content.POST("/newsletters/:id/delete", h.DeleteSubscriber)

		content.GET("/donations", h.ListDonations)
	}

	return r, nil
}
