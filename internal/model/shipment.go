package model

import "time"

// Party is one side of a shipment, the sender or the recipient.
type Party struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Email   string `json:"email" form:"email"`
	Address string `json:"address" form:"address"`
}

// Dimensions of a parcel.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit,omitempty"`
}

// ShipmentReply is a note appended to a shipment by staff.
type ShipmentReply struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Shipment is the backend's cargo record.
type Shipment struct {
	ID                string          `json:"id"`
	TrackingNumber    string          `json:"trackingNumber"`
	Sender            Party           `json:"sender"`
	Recipient         Party           `json:"recipient"`
	Origin            string          `json:"origin"`
	Destination       string          `json:"destination"`
	Status            string          `json:"status"`
	FacilityID        string          `json:"facilityId,omitempty"`
	FacilityName      string          `json:"facilityName,omitempty"`
	Description       string          `json:"description,omitempty"`
	Weight            float64         `json:"weight"`
	Dimensions        Dimensions      `json:"dimensions"`
	Cost              float64         `json:"cost"`
	Currency          string          `json:"currency,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimatedDelivery,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	Replies           []ShipmentReply `json:"replies,omitempty"`
}

// ShipmentInput is the create/edit form, sent to the backend as JSON.
type ShipmentInput struct {
	TrackingNumber    string  `json:"trackingNumber,omitempty" form:"tracking_number"`
	SenderName        string  `json:"-" form:"sender_name" binding:"required,notblank"`
	SenderPhone       string  `json:"-" form:"sender_phone" binding:"required,notblank"`
	SenderEmail       string  `json:"-" form:"sender_email" binding:"omitempty,email"`
	SenderAddress     string  `json:"-" form:"sender_address" binding:"required,notblank"`
	RecipientName     string  `json:"-" form:"recipient_name" binding:"required,notblank"`
	RecipientPhone    string  `json:"-" form:"recipient_phone" binding:"required,notblank"`
	RecipientEmail    string  `json:"-" form:"recipient_email" binding:"omitempty,email"`
	RecipientAddress  string  `json:"-" form:"recipient_address" binding:"required,notblank"`
	Origin            string  `json:"origin" form:"origin" binding:"required,notblank"`
	Destination       string  `json:"destination" form:"destination" binding:"required,notblank"`
	Status            string  `json:"status,omitempty" form:"status"`
	FacilityID        string  `json:"facilityId,omitempty" form:"facility_id"`
	Description       string  `json:"description,omitempty" form:"description"`
	Weight            float64 `json:"weight" form:"weight" binding:"gte=0"`
	Length            float64 `json:"-" form:"length" binding:"gte=0"`
	Width             float64 `json:"-" form:"width" binding:"gte=0"`
	Height            float64 `json:"-" form:"height" binding:"gte=0"`
	Cost              float64 `json:"cost" form:"cost" binding:"gte=0"`
	Currency          string  `json:"currency,omitempty" form:"currency"`
	EstimatedDelivery string  `json:"-" form:"estimated_delivery"`
}

// ShipmentPayload is the JSON body the backend expects for create and update.
type ShipmentPayload struct {
	TrackingNumber    string     `json:"trackingNumber,omitempty"`
	Sender            Party      `json:"sender"`
	Recipient         Party      `json:"recipient"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	Status            string     `json:"status,omitempty"`
	FacilityID        string     `json:"facilityId,omitempty"`
	Description       string     `json:"description,omitempty"`
	Weight            float64    `json:"weight"`
	Dimensions        Dimensions `json:"dimensions"`
	Cost              float64    `json:"cost"`
	Currency          string     `json:"currency,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
}

// Payload converts the flat form into the nested backend shape.
func (in ShipmentInput) Payload() ShipmentPayload {
	p := ShipmentPayload{
		TrackingNumber: in.TrackingNumber,
		Sender: Party{
			Name: in.SenderName, Phone: in.SenderPhone,
			Email: in.SenderEmail, Address: in.SenderAddress,
		},
		Recipient: Party{
			Name: in.RecipientName, Phone: in.RecipientPhone,
			Email: in.RecipientEmail, Address: in.RecipientAddress,
		},
		Origin:      in.Origin,
		Destination: in.Destination,
		Status:      in.Status,
		FacilityID:  in.FacilityID,
		Description: in.Description,
		Weight:      in.Weight,
		Dimensions:  Dimensions{Length: in.Length, Width: in.Width, Height: in.Height},
		Cost:        in.Cost,
		Currency:    in.Currency,
	}
	if in.EstimatedDelivery != "" {
		if t, err := time.Parse("2006-01-02", in.EstimatedDelivery); err == nil {
			p.EstimatedDelivery = &t
		}
	}
	return p
}

// InputFrom prefills the edit form from an existing shipment.
func InputFrom(s Shipment) ShipmentInput {
	in := ShipmentInput{
		TrackingNumber:   s.TrackingNumber,
		SenderName:       s.Sender.Name,
		SenderPhone:      s.Sender.Phone,
		SenderEmail:      s.Sender.Email,
		SenderAddress:    s.Sender.Address,
		RecipientName:    s.Recipient.Name,
		RecipientPhone:   s.Recipient.Phone,
		RecipientEmail:   s.Recipient.Email,
		RecipientAddress: s.Recipient.Address,
		Origin:           s.Origin,
		Destination:      s.Destination,
		Status:           s.Status,
		FacilityID:       s.FacilityID,
		Description:      s.Description,
		Weight:           s.Weight,
		Length:           s.Dimensions.Length,
		Width:            s.Dimensions.Width,
		Height:           s.Dimensions.Height,
		Cost:             s.Cost,
		Currency:         s.Currency,
	}
	if s.EstimatedDelivery != nil {
		in.EstimatedDelivery = s.EstimatedDelivery.Format("2006-01-02")
	}
	return in
}

// StatusChange moves a shipment to another configured status.
type StatusChange struct {
	Status string `json:"status" form:"status" binding:"required,notblank"`
	Note   string `json:"note,omitempty" form:"note"`
}

// ReplyInput appends a reply to a shipment.
type ReplyInput struct {
	Message string `json:"message" form:"message" binding:"required,notblank"`
}
