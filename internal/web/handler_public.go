package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cargo-portal/internal/listing"
	"cargo-portal/internal/model"
	"cargo-portal/internal/parse"
)

// Home shows the hero carousel, the service cards and the message ticker.
func (h *Handler) Home(c *gin.Context) {
	var hero, services, messages []model.Slide

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		hero, err = h.backend.ListActiveSlides(ctx, model.SlideHero)
		return err
	})
	g.Go(func() (err error) {
		services, err = h.backend.ListActiveSlides(ctx, model.SlideService)
		return err
	})
	g.Go(func() (err error) {
		messages, err = h.backend.ListActiveSlides(ctx, model.SlideMessage)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.Warn("failed to load home page slides", zap.Error(err))
		h.render(c, statusFor(err), "home.html", "Home", gin.H{
			"Banner": errorBanner(err, "Failed to load slides."),
		})
		return
	}

	listing.SortSlides(hero)
	listing.SortSlides(services)
	listing.SortSlides(messages)
	h.render(c, http.StatusOK, "home.html", "Home", gin.H{
		"Hero":     hero,
		"Services": services,
		"Messages": messages,
	})
}

// About is static copy.
func (h *Handler) About(c *gin.Context) {
	h.render(c, http.StatusOK, "about.html", "About Us", nil)
}

// Services lists the active service slides.
func (h *Handler) Services(c *gin.Context) {
	services, err := h.backend.ListActiveSlides(c.Request.Context(), model.SlideService)
	if err != nil {
		h.render(c, statusFor(err), "services.html", "Services", gin.H{
			"Banner": errorBanner(err, "Failed to load services."),
		})
		return
	}
	listing.SortSlides(services)
	h.render(c, http.StatusOK, "services.html", "Services", gin.H{"Services": services})
}

// ContactForm shows an empty contact form.
func (h *Handler) ContactForm(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.html", "Contact Us", gin.H{"Form": model.ContactMessage{}})
}

// SendContact forwards a contact message to the backend.
func (h *Handler) SendContact(c *gin.Context) {
	var msg model.ContactMessage
	if err := c.ShouldBind(&msg); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "contact.html", "Contact Us", gin.H{
			"Form":   msg,
			"Banner": invalidBanner(err),
		})
		return
	}

	if err := h.backend.SendContactMessage(c.Request.Context(), msg); err != nil {
		h.render(c, statusFor(err), "contact.html", "Contact Us", gin.H{
			"Form":   msg,
			"Banner": errorBanner(err, "Failed to send your message."),
		})
		return
	}

	h.render(c, http.StatusOK, "contact.html", "Contact Us", gin.H{
		"Form":   model.ContactMessage{},
		"Banner": &banner{Kind: kindSuccess, Message: "Thank you, your message has been sent."},
	})
}

// Track looks up a shipment by tracking number.
func (h *Handler) Track(c *gin.Context) {
	raw := c.Query("number")
	if raw == "" {
		h.render(c, http.StatusOK, "track.html", "Track Shipment", nil)
		return
	}

	tn, err := parse.ParseTracking(raw)
	if err != nil {
		h.render(c, http.StatusUnprocessableEntity, "track.html", "Track Shipment", gin.H{
			"Number": raw,
			"Banner": &banner{Kind: kindError, Message: "That does not look like a valid tracking number."},
		})
		return
	}

	shipment, err := h.backend.TrackShipment(c.Request.Context(), tn)
	if err != nil {
		h.render(c, statusFor(err), "track.html", "Track Shipment", gin.H{
			"Number": tn,
			"Banner": errorBanner(err, "No shipment found for that tracking number."),
		})
		return
	}

	h.render(c, http.StatusOK, "track.html", "Track Shipment", gin.H{
		"Number":   tn,
		"Shipment": shipment,
	})
}

// Subscribe adds an address to the newsletter.
func (h *Handler) Subscribe(c *gin.Context) {
	var in model.SubscribeInput
	if err := c.ShouldBind(&in); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "newsletter.html", "Newsletter", gin.H{
			"Form":   in,
			"Banner": invalidBanner(err),
		})
		return
	}

	if err := h.backend.Subscribe(c.Request.Context(), in); err != nil {
		h.render(c, statusFor(err), "newsletter.html", "Newsletter", gin.H{
			"Form":   in,
			"Banner": errorBanner(err, "Failed to subscribe."),
		})
		return
	}

	h.render(c, http.StatusOK, "newsletter.html", "Newsletter", gin.H{
		"Subscribed": true,
		"Banner":     &banner{Kind: kindSuccess, Message: "You are subscribed. Thanks for joining!"},
	})
}

// DonateForm shows the donation form.
func (h *Handler) DonateForm(c *gin.Context) {
	h.render(c, http.StatusOK, "donate.html", "Donate", gin.H{"Form": model.DonationInput{Currency: "USD"}})
}

// Donate records a donation.
func (h *Handler) Donate(c *gin.Context) {
	var in model.DonationInput
	if err := c.ShouldBind(&in); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "donate.html", "Donate", gin.H{
			"Form":   in,
			"Banner": invalidBanner(err),
		})
		return
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	if err := h.backend.CreateDonation(c.Request.Context(), in); err != nil {
		h.render(c, statusFor(err), "donate.html", "Donate", gin.H{
			"Form":   in,
			"Banner": errorBanner(err, "Failed to record your donation."),
		})
		return
	}

	h.render(c, http.StatusOK, "donate.html", "Donate", gin.H{
		"Form":   model.DonationInput{Currency: in.Currency},
		"Banner": &banner{Kind: kindSuccess, Message: "Thank you for your generosity!"},
	})
}
