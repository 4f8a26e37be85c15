package models

import (
	"time"

	"github.com/google/uuid"
)

// OfferImage is a product photo. At most one image per offer carries
// is_primary=true; the repository clears siblings inside the same transaction
// and a partial unique index backstops the invariant.
type OfferImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OfferID   uuid.UUID `gorm:"column:offer_id;type:uuid;not null;index" json:"offer_id"`
	Path      string    `gorm:"column:path;not null" json:"path"`
	AltText   *string   `gorm:"column:alt_text" json:"alt_text,omitempty"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false" json:"is_primary"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
