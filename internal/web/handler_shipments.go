package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cargo-portal/internal/form"
	"cargo-portal/internal/listing"
	"cargo-portal/internal/model"
	"cargo-portal/internal/pdf"
)

const shipmentsPath = "/dashboard/shipments"

func shipmentPath(id string) string {
	return shipmentsPath + "/" + id
}

// options loads the dropdown contents for shipment forms and filters.
func (h *Handler) options(c *gin.Context) ([]model.ShipmentStatus, []model.Facility, error) {
	var (
		statuses   []model.ShipmentStatus
		facilities []model.Facility
	)
	tok := token(c)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		statuses, err = h.backend.ListStatuses(ctx, tok)
		return err
	})
	g.Go(func() (err error) {
		facilities, err = h.backend.ListFacilities(ctx, tok)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	listing.SortStatuses(statuses)
	return statuses, facilities, nil
}

func statusColors(statuses []model.ShipmentStatus) map[string]string {
	colors := make(map[string]string, len(statuses))
	for _, st := range statuses {
		colors[st.Name] = st.Color
	}
	return colors
}

// ListShipments shows the filterable, paginated shipment table.
func (h *Handler) ListShipments(c *gin.Context) {
	var (
		shipments  []model.Shipment
		statuses   []model.ShipmentStatus
		facilities []model.Facility
	)
	tok := token(c)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		shipments, err = h.backend.ListShipments(ctx, tok)
		return err
	})
	g.Go(func() (err error) {
		statuses, facilities, err = h.options(c)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err, "Failed to load shipments.")
		return
	}

	q := listing.Query{
		Search:     c.Query("q"),
		Status:     c.Query("status"),
		FacilityID: c.Query("facility"),
	}
	filtered := listing.FilterShipments(shipments, q)
	page := listing.Paginate(len(filtered), pageParam(c), h.cfg.Server.PageSize)

	h.render(c, http.StatusOK, "shipments.html", "Shipments", gin.H{
		"Shipments":    listing.Slice(filtered, page),
		"Page":         page,
		"Query":        q,
		"URLQuery":     c.Request.URL.Query(),
		"Statuses":     statuses,
		"Facilities":   facilities,
		"StatusColors": statusColors(statuses),
	})
}

// ShowShipment shows one shipment with its replies and status controls.
func (h *Handler) ShowShipment(c *gin.Context) {
	id := c.Param("id")
	tok := token(c)

	var (
		shipment *model.Shipment
		statuses []model.ShipmentStatus
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		shipment, err = h.backend.GetShipment(ctx, tok, id)
		return err
	})
	g.Go(func() (err error) {
		statuses, err = h.backend.ListStatuses(ctx, tok)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, err, "Failed to load shipment.")
		return
	}
	listing.SortStatuses(statuses)

	h.render(c, http.StatusOK, "shipment_detail.html", "Shipment "+shipment.TrackingNumber, gin.H{
		"Shipment":     shipment,
		"Statuses":     statuses,
		"StatusColors": statusColors(statuses),
	})
}

func (h *Handler) shipmentForm(c *gin.Context, status int, title, action string, in model.ShipmentInput, b *banner) {
	statuses, facilities, err := h.options(c)
	if err != nil {
		h.fail(c, err, "Failed to load form options.")
		return
	}
	data := gin.H{
		"Form":       in,
		"Action":     action,
		"Statuses":   statuses,
		"Facilities": facilities,
	}
	if b != nil {
		data["Banner"] = b
	}
	h.render(c, status, "shipment_form.html", title, data)
}

// NewShipment shows an empty shipment form.
func (h *Handler) NewShipment(c *gin.Context) {
	h.shipmentForm(c, http.StatusOK, "New Shipment", shipmentsPath, model.ShipmentInput{}, nil)
}

// CreateShipment submits the shipment form to the backend.
func (h *Handler) CreateShipment(c *gin.Context) {
	var in model.ShipmentInput
	if err := c.ShouldBind(&in); err != nil {
		h.shipmentForm(c, http.StatusUnprocessableEntity, "New Shipment", shipmentsPath, in, invalidBanner(err))
		return
	}

	created, err := h.backend.CreateShipment(c.Request.Context(), token(c), in.Payload())
	if err != nil {
		if h.expired(c, err) {
			return
		}
		h.shipmentForm(c, statusFor(err), "New Shipment", shipmentsPath, in, errorBanner(err, "Failed to create shipment."))
		return
	}

	to := shipmentsPath
	if created.ID != "" {
		to = shipmentPath(created.ID)
	}
	h.done(c, to, fmt.Sprintf("Shipment %s created.", created.TrackingNumber))
}

// EditShipment shows the shipment form prefilled.
func (h *Handler) EditShipment(c *gin.Context) {
	id := c.Param("id")
	shipment, err := h.backend.GetShipment(c.Request.Context(), token(c), id)
	if err != nil {
		h.fail(c, err, "Failed to load shipment.")
		return
	}
	h.shipmentForm(c, http.StatusOK, "Edit Shipment", shipmentPath(id), model.InputFrom(*shipment), nil)
}

// UpdateShipment submits the edited shipment.
func (h *Handler) UpdateShipment(c *gin.Context) {
	id := c.Param("id")
	var in model.ShipmentInput
	if err := c.ShouldBind(&in); err != nil {
		h.shipmentForm(c, http.StatusUnprocessableEntity, "Edit Shipment", shipmentPath(id), in, invalidBanner(err))
		return
	}

	if _, err := h.backend.UpdateShipment(c.Request.Context(), token(c), id, in.Payload()); err != nil {
		if h.expired(c, err) {
			return
		}
		h.shipmentForm(c, statusFor(err), "Edit Shipment", shipmentPath(id), in, errorBanner(err, "Failed to update shipment."))
		return
	}
	h.done(c, shipmentPath(id), "Shipment updated.")
}

// DeleteShipment removes a shipment.
func (h *Handler) DeleteShipment(c *gin.Context) {
	if err := h.backend.DeleteShipment(c.Request.Context(), token(c), c.Param("id")); err != nil {
		h.failBack(c, err, shipmentsPath, "Failed to delete shipment.")
		return
	}
	h.done(c, shipmentsPath, "Shipment deleted.")
}

// ChangeShipmentStatus moves a shipment to another status.
func (h *Handler) ChangeShipmentStatus(c *gin.Context) {
	id := c.Param("id")
	var change model.StatusChange
	if err := c.ShouldBind(&change); err != nil {
		h.sessions.Flash(c, kindError, form.Summary(err))
		c.Redirect(http.StatusSeeOther, shipmentPath(id))
		return
	}

	updated, err := h.backend.UpdateShipmentStatus(c.Request.Context(), token(c), id, change)
	if err != nil {
		h.failBack(c, err, shipmentPath(id), "Failed to update shipment status.")
		return
	}
	status := change.Status
	if updated.Status != "" {
		status = updated.Status
	}
	h.done(c, shipmentPath(id), "Status changed to "+status+".")
}

// AddShipmentReply appends a reply to a shipment.
func (h *Handler) AddShipmentReply(c *gin.Context) {
	id := c.Param("id")
	var in model.ReplyInput
	if err := c.ShouldBind(&in); err != nil {
		h.sessions.Flash(c, kindError, form.Summary(err))
		c.Redirect(http.StatusSeeOther, shipmentPath(id))
		return
	}

	if err := h.backend.AddShipmentReply(c.Request.Context(), token(c), id, in); err != nil {
		h.failBack(c, err, shipmentPath(id), "Failed to add reply.")
		return
	}
	h.done(c, shipmentPath(id), "Reply added.")
}

// ShipmentWaybill streams the printable waybill.
func (h *Handler) ShipmentWaybill(c *gin.Context) {
	shipment, err := h.backend.GetShipment(c.Request.Context(), token(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to load shipment.")
		return
	}

	var buf bytes.Buffer
	if err := pdf.Waybill(&buf, *shipment, h.cfg.Site); err != nil {
		h.logger.Error("failed to render waybill", zap.String("tracking_number", shipment.TrackingNumber), zap.Error(err))
		h.render(c, http.StatusInternalServerError, "error.html", "Error", gin.H{
			"Banner": &banner{Kind: kindError, Message: "Failed to generate the waybill."},
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="waybill-%s.pdf"`, shipment.TrackingNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
