package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShipmentInput_Payload(t *testing.T) {
	in := ShipmentInput{
		TrackingNumber:    "CG123456789",
		SenderName:        "Ada",
		SenderPhone:       "555-0100",
		SenderAddress:     "1 Harbour Road",
		RecipientName:     "Grace",
		RecipientPhone:    "555-0199",
		RecipientEmail:    "grace@example.com",
		RecipientAddress:  "9 Dock Street",
		Origin:            "Lagos",
		Destination:       "Accra",
		Weight:            12.5,
		Length:            40,
		Width:             30,
		Height:            20,
		Cost:              99.9,
		Currency:          "USD",
		EstimatedDelivery: "2025-03-14",
	}

	p := in.Payload()

	assert.Equal(t, Party{Name: "Ada", Phone: "555-0100", Address: "1 Harbour Road"}, p.Sender)
	assert.Equal(t, "grace@example.com", p.Recipient.Email)
	assert.Equal(t, Dimensions{Length: 40, Width: 30, Height: 20}, p.Dimensions)
	require.NotNil(t, p.EstimatedDelivery)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), *p.EstimatedDelivery)
}

func TestShipmentInput_PayloadIgnoresBadDate(t *testing.T) {
	p := ShipmentInput{EstimatedDelivery: "next week"}.Payload()
	assert.Nil(t, p.EstimatedDelivery)
}

func TestInputFrom_RoundTripsThroughPayload(t *testing.T) {
	eta := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s := Shipment{
		ID:                "s1",
		TrackingNumber:    "CG123456789",
		Sender:            Party{Name: "Ada", Phone: "1", Address: "A"},
		Recipient:         Party{Name: "Grace", Phone: "2", Address: "B"},
		Origin:            "Lagos",
		Destination:       "Accra",
		Status:            "In Transit",
		FacilityID:        "f1",
		Weight:            3,
		Dimensions:        Dimensions{Length: 1, Width: 2, Height: 3},
		Cost:              10,
		EstimatedDelivery: &eta,
	}

	in := InputFrom(s)
	assert.Equal(t, "2025-06-01", in.EstimatedDelivery)

	want := ShipmentPayload{
		TrackingNumber:    s.TrackingNumber,
		Sender:            s.Sender,
		Recipient:         s.Recipient,
		Origin:            s.Origin,
		Destination:       s.Destination,
		Status:            s.Status,
		FacilityID:        s.FacilityID,
		Weight:            s.Weight,
		Dimensions:        s.Dimensions,
		Cost:              s.Cost,
		EstimatedDelivery: &eta,
	}
	if diff := cmp.Diff(want, in.Payload()); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}
