package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is editorial content owned at the most specific non-null scope FK
// (place > sme > community > village).
type Article struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VillageID   uuid.UUID  `gorm:"column:village_id;type:uuid;not null;index" json:"village_id"`
	CommunityID *uuid.UUID `gorm:"column:community_id;type:uuid;index" json:"community_id,omitempty"`
	SmeID       *uuid.UUID `gorm:"column:sme_id;type:uuid;index" json:"sme_id,omitempty"`
	PlaceID     *uuid.UUID `gorm:"column:place_id;type:uuid;index" json:"place_id,omitempty"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Slug        string     `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Excerpt     *string    `gorm:"column:excerpt" json:"excerpt,omitempty"`
	Body        string     `gorm:"column:body;not null" json:"body"`
	CoverPath   *string    `gorm:"column:cover_path" json:"cover_path,omitempty"`
	IsPublished bool       `gorm:"column:is_published;not null;default:false" json:"is_published"`
	IsFeatured  bool       `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	ViewCount   int64      `gorm:"column:view_count;not null;default:0" json:"view_count"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// OwnerScope returns the most specific non-null scope FK, used when deciding
// which admin may edit the article.
func (a Article) OwnerScope() (level string, id uuid.UUID) {
	switch {
	case a.PlaceID != nil:
		return "place", *a.PlaceID
	case a.SmeID != nil:
		return "sme", *a.SmeID
	case a.CommunityID != nil:
		return "community", *a.CommunityID
	default:
		return "village", a.VillageID
	}
}
