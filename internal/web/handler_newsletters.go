package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cargo-portal/internal/listing"
	"cargo-portal/internal/model"
)

const newslettersPath = "/dashboard/newsletters"

func (h *Handler) renderSubscribers(c *gin.Context, status int, campaign model.Campaign, b *banner) {
	subscribers, err := h.backend.ListSubscribers(c.Request.Context(), token(c))
	if err != nil {
		h.fail(c, err, "Failed to load subscribers.")
		return
	}

	q := c.Query("q")
	filtered := listing.Search(subscribers, q, func(s model.Subscriber) []string { return []string{s.Email} })
	page := listing.Paginate(len(filtered), pageParam(c), h.cfg.Server.PageSize)
	active := len(listing.Filter(subscribers, func(s model.Subscriber) bool { return s.Active }))

	data := gin.H{
		"Subscribers": listing.Slice(filtered, page),
		"Page":        page,
		"Search":      q,
		"URLQuery":    c.Request.URL.Query(),
		"Active":      active,
		"Campaign":    campaign,
	}
	if b != nil {
		data["Banner"] = b
	}
	h.render(c, status, "newsletters.html", "Newsletter", data)
}

// ListSubscribers shows the mailing list and the campaign form.
func (h *Handler) ListSubscribers(c *gin.Context) {
	h.renderSubscribers(c, http.StatusOK, model.Campaign{}, nil)
}

// DeleteSubscriber removes an address from the mailing list.
func (h *Handler) DeleteSubscriber(c *gin.Context) {
	if err := h.backend.DeleteSubscriber(c.Request.Context(), token(c), c.Param("id")); err != nil {
		h.failBack(c, err, newslettersPath, "Failed to remove subscriber.")
		return
	}
	h.done(c, newslettersPath, "Subscriber removed.")
}

// SendCampaign mails a newsletter to every active subscriber.
func (h *Handler) SendCampaign(c *gin.Context) {
	var in model.Campaign
	if err := c.ShouldBind(&in); err != nil {
		h.renderSubscribers(c, http.StatusUnprocessableEntity, in, invalidBanner(err))
		return
	}

	res, err := h.backend.SendCampaign(c.Request.Context(), token(c), in)
	if err != nil {
		if h.expired(c, err) {
			return
		}
		h.renderSubscribers(c, statusFor(err), in, errorBanner(err, "Failed to send newsletter."))
		return
	}
	h.done(c, newslettersPath, fmt.Sprintf("Newsletter sent to %d subscribers.", res.Recipients))
}
