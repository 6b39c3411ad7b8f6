package web

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cargo-portal/internal/model"
)

func TestHome_RendersActiveSlidesAndCaches(t *testing.T) {
	env := newTestEnv(t)
	env.handle("GET /api/hero-slides", http.StatusOK, map[string]any{"data": []model.Slide{
		{ID: "2", Title: "Second hero", Order: 2, Active: true},
		{ID: "1", Title: "Fast freight", Order: 1, Active: true},
	}})
	env.handle("GET /api/service-slides", http.StatusOK, []model.Slide{{ID: "s", Title: "Air cargo", Body: "Next-day", Active: true}})
	env.handle("GET /api/message-slides", http.StatusOK, []model.Slide{{ID: "m", Title: "Holiday hours", Active: true}})

	w := env.get("/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<title>Home | Cargo</title>")
	assert.Contains(t, body, "Air cargo")
	assert.Contains(t, body, "Holiday hours")
	assert.Less(t, strings.Index(body, "Fast freight"), strings.Index(body, "Second hero"), "slides are shown in display order")

	w = env.get("/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, 1, env.called("GET /api/hero-slides"))
}

func TestHome_BackendErrorShowsBanner(t *testing.T) {
	env := newTestEnv(t)
	env.handle("GET /api/hero-slides", http.StatusServiceUnavailable, map[string]string{"message": "Down for maintenance"})
	env.handle("GET /api/service-slides", http.StatusOK, []model.Slide{})
	env.handle("GET /api/message-slides", http.StatusOK, []model.Slide{})

	w := env.get("/", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Down for maintenance")
	assert.Contains(t, w.Body.String(), "alert-dismissible")

	// Failures are not cached.
	env.get("/", nil)
	assert.Equal(t, 2, env.called("GET /api/hero-slides"))
}

func TestStaticPagesSetTitles(t *testing.T) {
	env := newTestEnv(t)
	env.handle("GET /api/service-slides", http.StatusOK, []model.Slide{})

	testCases := []struct {
		path  string
		title string
	}{
		{"/about", "About Us | Cargo"},
		{"/services", "Services | Cargo"},
		{"/contact", "Contact Us | Cargo"},
		{"/track", "Track Shipment | Cargo"},
		{"/donate", "Donate | Cargo"},
		{"/login", "Sign In | Cargo"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			w := env.get(tc.path, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "<title>"+tc.title+"</title>")
		})
	}
}

func TestSendContact(t *testing.T) {
	env := newTestEnv(t)
	env.handle("POST /api/contact", http.StatusCreated, nil)

	t.Run("required fields block submission", func(t *testing.T) {
		w := env.post("/contact", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "subject is required")
		assert.Contains(t, w.Body.String(), "message is required")
		assert.Contains(t, w.Body.String(), `value="Ada"`, "input is kept")
		assert.Equal(t, 0, env.called("POST /api/contact"))
	})

	t.Run("valid message is forwarded", func(t *testing.T) {
		w := env.post("/contact", url.Values{
			"name": {"Ada"}, "email": {"ada@example.com"},
			"subject": {"Quote"}, "message": {"Two pallets to Accra"},
		}, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "your message has been sent")
		assert.Equal(t, 1, env.called("POST /api/contact"))
		assert.JSONEq(t, `{"name":"Ada","email":"ada@example.com","subject":"Quote","message":"Two pallets to Accra"}`,
			string(env.body("POST /api/contact")))
	})
}

func TestTrack(t *testing.T) {
	env := newTestEnv(t)
	env.handle("GET /api/shipments/track/CG123456789", http.StatusOK, model.Shipment{
		TrackingNumber: "CG123456789", Status: "In Transit", Origin: "Lagos", Destination: "Accra",
	})
	env.handle("GET /api/shipments/track/CR-123456", http.StatusOK, model.Shipment{
		TrackingNumber: "CR-123456", Status: "Delivered",
	})
	env.handle("GET /api/shipments/track/CR123456", http.StatusNotFound, map[string]string{"error": "Shipment not found"})
	env.handle("GET /api/shipments/track/CG000000000", http.StatusNotFound, map[string]string{"error": "Shipment not found"})

	t.Run("trims and finds", func(t *testing.T) {
		w := env.get("/track?number=+CG123456789+", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "In Transit")
	})

	t.Run("number is sent as typed", func(t *testing.T) {
		w := env.get("/track?number=CR-123456", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Delivered")
		assert.Equal(t, 1, env.called("GET /api/shipments/track/CR-123456"))
		assert.Equal(t, 0, env.called("GET /api/shipments/track/CR123456"))
	})

	t.Run("not found", func(t *testing.T) {
		w := env.get("/track?number=CG000000000", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Shipment not found")
	})

	t.Run("invalid number never reaches the backend", func(t *testing.T) {
		w := env.get("/track?number="+strings.Repeat("9", 40), nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "valid tracking number")

		w = env.get("/track?number=+++", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestSubscribeAndDonate(t *testing.T) {
	env := newTestEnv(t)
	env.handle("POST /api/newsletters/subscribe", http.StatusCreated, nil)
	env.handle("POST /api/donations", http.StatusBadRequest, map[string]any{"errors": []map[string]string{{"msg": "Amount exceeds limit"}}})

	w := env.post("/newsletter", url.Values{"email": {"not-an-email"}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, env.called("POST /api/newsletters/subscribe"))

	w = env.post("/newsletter", url.Values{"email": {"reader@example.com"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You are subscribed")

	w = env.post("/donate", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "amount": {"0"}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "amount is required")
	assert.Equal(t, 0, env.called("POST /api/donations"))

	w = env.post("/donate", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "amount": {"1000000"}}, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Amount exceeds limit")
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	w := env.get("/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
