package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cargo-portal/internal/listing"
	"cargo-portal/internal/model"
)

func slidesPath(kind model.SlideKind) string {
	return "/dashboard/slides/" + string(kind)
}

func slideLabel(kind model.SlideKind) string {
	return strings.ToUpper(string(kind[:1])) + string(kind[1:]) + " Slides"
}

// slideKind reads and validates the :kind parameter. Unknown kinds answer 404.
func (h *Handler) slideKind(c *gin.Context) (model.SlideKind, bool) {
	kind := model.SlideKind(c.Param("kind"))
	if !kind.Valid() {
		h.render(c, http.StatusNotFound, "error.html", "Not Found", gin.H{
			"Banner": &banner{Kind: kindError, Message: "Unknown slide collection."},
		})
		return "", false
	}
	return kind, true
}

// ListSlides shows one slide collection in display order.
func (h *Handler) ListSlides(c *gin.Context) {
	kind, ok := h.slideKind(c)
	if !ok {
		return
	}
	slides, err := h.backend.ListSlides(c.Request.Context(), token(c), kind)
	if err != nil {
		h.fail(c, err, "Failed to load slides.")
		return
	}
	listing.SortSlides(slides)

	h.render(c, http.StatusOK, "slides.html", slideLabel(kind), gin.H{
		"Kind":   kind,
		"Label":  slideLabel(kind),
		"Slides": slides,
	})
}

func (h *Handler) slideForm(c *gin.Context, status int, kind model.SlideKind, title, action string, s model.Slide, b *banner) {
	data := gin.H{"Kind": kind, "Label": slideLabel(kind), "Form": s, "Action": action}
	if b != nil {
		data["Banner"] = b
	}
	h.render(c, status, "slide_form.html", title, data)
}

// NewSlide shows an empty slide form.
func (h *Handler) NewSlide(c *gin.Context) {
	kind, ok := h.slideKind(c)
	if !ok {
		return
	}
	h.slideForm(c, http.StatusOK, kind, "New Slide", slidesPath(kind), model.Slide{Active: true}, nil)
}

// CreateSlide submits a new slide.
func (h *Handler) CreateSlide(c *gin.Context) {
	kind, ok := h.slideKind(c)
	if !ok {
		return
	}
	var s model.Slide
	if err := c.ShouldBind(&s); err != nil {
		h.slideForm(c, http.StatusUnprocessableEntity, kind, "New Slide", slidesPath(kind), s, invalidBanner(err))
		return
	}
	if err := h.backend.CreateSlide(c.Request.Context(), token(c), kind, s); err != nil {
		if h.expired(c, err) {
			return
		}
		h.slideForm(c, statusFor(err), kind, "New Slide", slidesPath(kind), s, errorBanner(err, "Failed to create slide."))
		return
	}
	h.contentChanged()
	h.done(c, slidesPath(kind), "Slide created.")
}

// EditSlide shows the slide form prefilled.
func (h *Handler) EditSlide(c *gin.Context) {
	kind, ok := h.slideKind(c)
	if !ok {
		return
	}
	id := c.Param("id")
	s, err := h.backend.GetSlide(c.Request.Context(), token(c), kind, id)
	if err != nil {
		h.fail(c, err, "Failed to load slide.")
		return
	}
	h.slideForm(c, http.StatusOK, kind, "Edit Slide", slidesPath(kind)+"/"+id, *s, nil)
}

// UpdateSlide submits the edited slide.
func (h *Handler) UpdateSlide(c *gin.Context) {
	kind, ok := h.slideKind(c)
	if !ok {
		return
	}
	id := c.Param("id")
	var s model.Slide
	if err := c.ShouldBind(&s); err != nil {
		h.slideForm(c, http.StatusUnprocessableEntity, kind, "Edit Slide", slidesPath(kind)+"/"+id, s, invalidBanner(err))
		return
	}
	s.ID = id
	if err := h.backend.UpdateSlide(c.Request.Context(), token(c), kind, id, s); err != nil {
		if h.expired(c, err) {
			return
		}
		h.slideForm(c, statusFor(err), kind, "Edit Slide", slidesPath(kind)+"/"+id, s, errorBanner(err, "Failed to update slide."))
		return
	}
	h.contentChanged()
	h.done(c, slidesPath(kind), "Slide updated.")
}

// DeleteSlide removes a slide.
func (h *Handler) DeleteSlide(c *gin.Context) {
	kind, ok := h.slideKind(c)
	if !ok {
		return
	}
	if err := h.backend.DeleteSlide(c.Request.Context(), token(c), kind, c.Param("id")); err != nil {
		h.failBack(c, err, slidesPath(kind), "Failed to delete slide.")
		return
	}
	h.contentChanged()
	h.done(c, slidesPath(kind), "Slide deleted.")
}

// contentChanged drops cached public pages so visitors see the edit.
func (h *Handler) contentChanged() {
	if h.cache != nil {
		h.cache.Flush()
	}
}
