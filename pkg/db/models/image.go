package models

import (
	"time"

	"github.com/google/uuid"
)

// Image is a generic attachable photo scoped to village/community/sme/place
// via the most specific non-null FK.
type Image struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VillageID   uuid.UUID  `gorm:"column:village_id;type:uuid;not null;index" json:"village_id"`
	CommunityID *uuid.UUID `gorm:"column:community_id;type:uuid;index" json:"community_id,omitempty"`
	SmeID       *uuid.UUID `gorm:"column:sme_id;type:uuid;index" json:"sme_id,omitempty"`
	PlaceID     *uuid.UUID `gorm:"column:place_id;type:uuid;index" json:"place_id,omitempty"`
	Path        string     `gorm:"column:path;not null" json:"path"`
	Caption     *string    `gorm:"column:caption" json:"caption,omitempty"`
	AltText     *string    `gorm:"column:alt_text" json:"alt_text,omitempty"`
	IsFeatured  bool       `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	SortOrder   int        `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
