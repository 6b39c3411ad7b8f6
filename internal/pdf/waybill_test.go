package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cargo-portal/config"
	"cargo-portal/internal/model"
)

func TestPlainText(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Left at the depot", "Left at the depot"},
		{"paragraphs", "<p>Arrived in <b>Lagos</b></p><p>Customs cleared</p>", "Arrived in Lagos\nCustoms cleared"},
		{"breaks and entities", "Fragile &amp; heavy<br>Handle with care", "Fragile & heavy\nHandle with care"},
		{"list", "<ul><li>box one</li><li>box two</li></ul>", "- box one\n- box two"},
		{"script dropped", "ok<script>alert(1)</script>", "ok"},
		{"whitespace", "  lots   of\n\n\n space ", "lots of\nspace"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PlainText(tc.in))
		})
	}
}

func TestWaybill(t *testing.T) {
	eta := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	s := model.Shipment{
		TrackingNumber:    "CG123456789",
		Sender:            model.Party{Name: "Ada Obi", Phone: "+234 800 000", Address: "12 Marina, Lagos"},
		Recipient:         model.Party{Name: "Jörg Müller", Email: "jm@example.com", Address: "Hafenstraße 1, Hamburg"},
		Origin:            "Lagos",
		Destination:       "Hamburg",
		Status:            "In Transit",
		FacilityName:      "Apapa Hub",
		Weight:            12.5,
		Dimensions:        model.Dimensions{Length: 40, Width: 30, Height: 20},
		Cost:              240,
		Currency:          "EUR",
		Description:       "<p>Machine parts</p>",
		EstimatedDelivery: &eta,
		CreatedAt:         time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
		Replies: []model.ShipmentReply{
			{Author: "ops", Message: "<p>Loaded on vessel</p>", CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		},
	}

	var buf bytes.Buffer
	err := Waybill(&buf, s, config.SiteConfig{Name: "Cargo", Phone: "+1 555 0100"})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%PDF-"), "output should be a PDF document")
	assert.Contains(t, out, "%%EOF")
}

func TestWaybill_MinimalShipment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Waybill(&buf, model.Shipment{TrackingNumber: "CG000000001"}, config.SiteConfig{Name: "Cargo"}))
	assert.NotZero(t, buf.Len())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "", dimensions(model.Dimensions{}))
	assert.Equal(t, "1 x 2.5 x 3 in", dimensions(model.Dimensions{Length: 1, Width: 2.5, Height: 3, Unit: "in"}))
	assert.Equal(t, "10.00 USD", money(10, ""))
	assert.Equal(t, "", date(time.Time{}))
	assert.Equal(t, []string{"a", "b"}, nonEmpty(" a ", "", "b"))
}
