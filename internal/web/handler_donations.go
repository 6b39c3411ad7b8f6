package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cargo-portal/internal/listing"
	"cargo-portal/internal/model"
)

// ListDonations shows the searchable donation table and totals per currency.
func (h *Handler) ListDonations(c *gin.Context) {
	donations, err := h.backend.ListDonations(c.Request.Context(), token(c))
	if err != nil {
		h.fail(c, err, "Failed to load donations.")
		return
	}

	q := c.Query("q")
	filtered := listing.Search(donations, q, func(d model.Donation) []string {
		return []string{d.Name, d.Email, d.Message}
	})
	page := listing.Paginate(len(filtered), pageParam(c), h.cfg.Server.PageSize)

	totals := make(map[string]float64)
	for _, d := range filtered {
		cur := d.Currency
		if cur == "" {
			cur = "USD"
		}
		totals[cur] += d.Amount
	}

	h.render(c, http.StatusOK, "donations.html", "Donations", gin.H{
		"Donations": listing.Slice(filtered, page),
		"Page":      page,
		"Search":    q,
		"URLQuery":  c.Request.URL.Query(),
		"Totals":    totals,
	})
}
