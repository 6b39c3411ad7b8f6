package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cargo-portal/internal/listing"
	"cargo-portal/internal/model"
)

const statusesPath = "/dashboard/statuses"

var statusCategories = []string{
	model.CategoryPending,
	model.CategoryInTransit,
	model.CategoryDelivered,
	model.CategoryException,
}

// ListStatuses shows the configured shipment statuses in display order.
func (h *Handler) ListStatuses(c *gin.Context) {
	statuses, err := h.backend.ListStatuses(c.Request.Context(), token(c))
	if err != nil {
		h.fail(c, err, "Failed to load statuses.")
		return
	}
	listing.SortStatuses(statuses)

	q := c.Query("q")
	h.render(c, http.StatusOK, "statuses.html", "Shipment Statuses", gin.H{
		"Statuses": listing.Search(statuses, q, func(s model.ShipmentStatus) []string {
			return []string{s.Name, s.Code, s.Category}
		}),
		"Search": q,
	})
}

func (h *Handler) statusForm(c *gin.Context, status int, title, action string, s model.ShipmentStatus, b *banner) {
	data := gin.H{"Form": s, "Action": action, "Categories": statusCategories}
	if b != nil {
		data["Banner"] = b
	}
	h.render(c, status, "status_form.html", title, data)
}

// NewStatus shows an empty status form.
func (h *Handler) NewStatus(c *gin.Context) {
	h.statusForm(c, http.StatusOK, "New Status", statusesPath, model.ShipmentStatus{Active: true, Color: "#6c757d"}, nil)
}

// CreateStatus submits a new status.
func (h *Handler) CreateStatus(c *gin.Context) {
	var s model.ShipmentStatus
	if err := c.ShouldBind(&s); err != nil {
		h.statusForm(c, http.StatusUnprocessableEntity, "New Status", statusesPath, s, invalidBanner(err))
		return
	}
	if err := h.backend.CreateStatus(c.Request.Context(), token(c), s); err != nil {
		if h.expired(c, err) {
			return
		}
		h.statusForm(c, statusFor(err), "New Status", statusesPath, s, errorBanner(err, "Failed to create status."))
		return
	}
	h.done(c, statusesPath, "Status "+s.Name+" created.")
}

// EditStatus shows the status form prefilled.
func (h *Handler) EditStatus(c *gin.Context) {
	id := c.Param("id")
	s, err := h.backend.GetStatus(c.Request.Context(), token(c), id)
	if err != nil {
		h.fail(c, err, "Failed to load status.")
		return
	}
	h.statusForm(c, http.StatusOK, "Edit Status", statusesPath+"/"+id, *s, nil)
}

// UpdateStatus submits the edited status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	var s model.ShipmentStatus
	if err := c.ShouldBind(&s); err != nil {
		h.statusForm(c, http.StatusUnprocessableEntity, "Edit Status", statusesPath+"/"+id, s, invalidBanner(err))
		return
	}
	s.ID = id
	if err := h.backend.UpdateStatus(c.Request.Context(), token(c), id, s); err != nil {
		if h.expired(c, err) {
			return
		}
		h.statusForm(c, statusFor(err), "Edit Status", statusesPath+"/"+id, s, errorBanner(err, "Failed to update status."))
		return
	}
	h.done(c, statusesPath, "Status updated.")
}

// DeleteStatus removes a status.
func (h *Handler) DeleteStatus(c *gin.Context) {
	if err := h.backend.DeleteStatus(c.Request.Context(), token(c), c.Param("id")); err != nil {
		h.failBack(c, err, statusesPath, "Failed to delete status.")
		return
	}
	h.done(c, statusesPath, "Status deleted.")
}
