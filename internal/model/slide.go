package model

// SlideKind names one of the three slide collections.
type SlideKind string

const (
	SlideHero    SlideKind = "hero"
	SlideService SlideKind = "service"
	SlideMessage SlideKind = "message"
)

// Valid reports whether k is a known slide kind.
func (k SlideKind) Valid() bool {
	switch k {
	case SlideHero, SlideService, SlideMessage:
		return true
	}
	return false
}

// Slide covers hero banners, service descriptions and message ticker items.
// Message slides only use Title and Body.
type Slide struct {
	ID       string `json:"id"`
	Title    string `json:"title" form:"title" binding:"required,notblank"`
	Subtitle string `json:"subtitle,omitempty" form:"subtitle"`
	Body     string `json:"body,omitempty" form:"body"`
	ImageURL string `json:"imageUrl,omitempty" form:"image_url" binding:"omitempty,url"`
	LinkURL  string `json:"linkUrl,omitempty" form:"link_url"`
	LinkText string `json:"linkText,omitempty" form:"link_text"`
	Order    int    `json:"order" form:"order" binding:"gte=0"`
	Active   bool   `json:"isActive" form:"active"`
}
