package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/andriansp/smartdesa-backend/pkg/types"
)

// Place is a physical location inside a village: a tourism site or a business
// site.
type Place struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VillageID    uuid.UUID         `gorm:"column:village_id;type:uuid;not null;index" json:"village_id"`
	CategoryID   *uuid.UUID        `gorm:"column:category_id;type:uuid;index" json:"category_id,omitempty"`
	Name         string            `gorm:"column:name;not null" json:"name"`
	Slug         string            `gorm:"column:slug;not null" json:"slug"`
	Description  *string           `gorm:"column:description" json:"description,omitempty"`
	Address      *string           `gorm:"column:address" json:"address,omitempty"`
	Latitude     *float64          `gorm:"column:latitude;type:numeric(9,6)" json:"latitude,omitempty"`
	Longitude    *float64          `gorm:"column:longitude;type:numeric(9,6)" json:"longitude,omitempty"`
	Facilities   pq.StringArray    `gorm:"column:facilities;type:text[]" json:"facilities"`
	CustomFields types.PlaceFields `gorm:"column:custom_fields;type:jsonb" json:"custom_fields"`
	IsActive     bool              `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsFeatured   bool              `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	ViewCount    int64             `gorm:"column:view_count;not null;default:0" json:"view_count"`
	Village      *Village          `gorm:"foreignKey:VillageID" json:"village,omitempty"`
	Category     *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Smes         []Sme             `gorm:"foreignKey:PlaceID" json:"smes,omitempty"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
