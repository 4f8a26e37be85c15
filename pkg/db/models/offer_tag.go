package models

import (
	"time"

	"github.com/google/uuid"
)

// OfferTag labels offers for filtering; usage_count tracks how many offers
// reference the tag and is maintained with atomic increments.
type OfferTag struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Slug       string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	UsageCount int64     `gorm:"column:usage_count;not null;default:0" json:"usage_count"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
