package model

// ShipmentStatus is a configurable named state with display metadata.
// Transitions between statuses are not restricted by the portal.
type ShipmentStatus struct {
	ID           string `json:"id"`
	Name         string `json:"name" form:"name" binding:"required,notblank"`
	Code         string `json:"code" form:"code" binding:"required,notblank"`
	Category     string `json:"category" form:"category" binding:"required,notblank"`
	Color        string `json:"color" form:"color" binding:"omitempty,hexcolor"`
	DisplayOrder int    `json:"displayOrder" form:"display_order" binding:"gte=0"`
	Description  string `json:"description,omitempty" form:"description"`
	Active       bool   `json:"isActive" form:"active"`
}

// Status categories the dashboard groups by.
const (
	CategoryPending   = "pending"
	CategoryInTransit = "in_transit"
	CategoryDelivered = "delivered"
	CategoryException = "exception"
)
