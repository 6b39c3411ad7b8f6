package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cargo-portal/internal/form"
	"cargo-portal/internal/listing"
	"cargo-portal/internal/model"
)

const facilitiesPath = "/dashboard/facilities"

// ListFacilities shows the searchable facility table.
func (h *Handler) ListFacilities(c *gin.Context) {
	facilities, err := h.backend.ListFacilities(c.Request.Context(), token(c))
	if err != nil {
		h.fail(c, err, "Failed to load facilities.")
		return
	}

	q := c.Query("q")
	filtered := listing.Search(facilities, q, func(f model.Facility) []string {
		return []string{f.Name, f.City, f.State, f.Country, f.Address}
	})
	page := listing.Paginate(len(filtered), pageParam(c), h.cfg.Server.PageSize)

	h.render(c, http.StatusOK, "facilities.html", "Facilities", gin.H{
		"Facilities": listing.Slice(filtered, page),
		"Page":       page,
		"Search":     q,
		"URLQuery":   c.Request.URL.Query(),
	})
}

func (h *Handler) facilityForm(c *gin.Context, status int, title, action string, f model.Facility, b *banner) {
	data := gin.H{"Form": f, "Action": action}
	if b != nil {
		data["Banner"] = b
	}
	h.render(c, status, "facility_form.html", title, data)
}

// NewFacility shows an empty facility form.
func (h *Handler) NewFacility(c *gin.Context) {
	h.facilityForm(c, http.StatusOK, "New Facility", facilitiesPath, model.Facility{Active: true}, nil)
}

// CreateFacility submits a new facility.
func (h *Handler) CreateFacility(c *gin.Context) {
	var f model.Facility
	if err := c.ShouldBind(&f); err != nil {
		h.facilityForm(c, http.StatusUnprocessableEntity, "New Facility", facilitiesPath, f, invalidBanner(err))
		return
	}
	if err := h.backend.CreateFacility(c.Request.Context(), token(c), f); err != nil {
		if h.expired(c, err) {
			return
		}
		h.facilityForm(c, statusFor(err), "New Facility", facilitiesPath, f, errorBanner(err, "Failed to create facility."))
		return
	}
	h.done(c, facilitiesPath, "Facility "+f.Name+" created.")
}

// EditFacility shows the facility form prefilled.
func (h *Handler) EditFacility(c *gin.Context) {
	id := c.Param("id")
	f, err := h.backend.GetFacility(c.Request.Context(), token(c), id)
	if err != nil {
		h.fail(c, err, "Failed to load facility.")
		return
	}
	h.facilityForm(c, http.StatusOK, "Edit Facility", facilitiesPath+"/"+id, *f, nil)
}

// UpdateFacility submits the edited facility.
func (h *Handler) UpdateFacility(c *gin.Context) {
	id := c.Param("id")
	var f model.Facility
	if err := c.ShouldBind(&f); err != nil {
		h.facilityForm(c, http.StatusUnprocessableEntity, "Edit Facility", facilitiesPath+"/"+id, f, invalidBanner(err))
		return
	}
	f.ID = id
	if err := h.backend.UpdateFacility(c.Request.Context(), token(c), id, f); err != nil {
		if h.expired(c, err) {
			return
		}
		h.facilityForm(c, statusFor(err), "Edit Facility", facilitiesPath+"/"+id, f, errorBanner(err, "Failed to update facility."))
		return
	}
	h.done(c, facilitiesPath, "Facility updated.")
}

type facilityToggle struct {
	Active *bool `form:"active" binding:"required"`
}

// ToggleFacility sets the active flag to the value the list page posted.
func (h *Handler) ToggleFacility(c *gin.Context) {
	var in facilityToggle
	if err := c.ShouldBind(&in); err != nil {
		h.sessions.Flash(c, kindError, form.Summary(err))
		c.Redirect(http.StatusSeeOther, facilitiesPath)
		return
	}
	if err := h.backend.SetFacilityActive(c.Request.Context(), token(c), c.Param("id"), *in.Active); err != nil {
		h.failBack(c, err, facilitiesPath, "Failed to update facility.")
		return
	}
	if *in.Active {
		h.done(c, facilitiesPath, "Facility activated.")
		return
	}
	h.done(c, facilitiesPath, "Facility deactivated.")
}

// DeleteFacility removes a facility.
func (h *Handler) DeleteFacility(c *gin.Context) {
	if err := h.backend.DeleteFacility(c.Request.Context(), token(c), c.Param("id")); err != nil {
		h.failBack(c, err, facilitiesPath, "Failed to delete facility.")
		return
	}
	h.done(c, facilitiesPath, "Facility deleted.")
}
