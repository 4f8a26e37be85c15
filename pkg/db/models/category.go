package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/pkg/enums"
)

// Category classifies places and offers, scoped by type (sme or tourism) and
// owned by a village.
type Category struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VillageID uuid.UUID          `gorm:"column:village_id;type:uuid;not null;index" json:"village_id"`
	Name      string             `gorm:"column:name;not null" json:"name"`
	Slug      string             `gorm:"column:slug;not null" json:"slug"`
	Type      enums.CategoryType `gorm:"column:type;not null" json:"type"`
	Icon      *string            `gorm:"column:icon" json:"icon,omitempty"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
