package models

import (
	"time"

	"github.com/google/uuid"
)

// EcommerceLink points an offer at its listing on an external marketplace.
// One row per platform per offer.
type EcommerceLink struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OfferID   uuid.UUID `gorm:"column:offer_id;type:uuid;not null;index:idx_ecommerce_links_offer_platform,unique" json:"offer_id"`
	Platform  string    `gorm:"column:platform;not null;index:idx_ecommerce_links_offer_platform,unique" json:"platform"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
