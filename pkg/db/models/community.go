package models

import (
	"time"

	"github.com/google/uuid"
)

// Community is an organizational grouping of SMEs within a village.
type Community struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VillageID   uuid.UUID `gorm:"column:village_id;type:uuid;not null;index" json:"village_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Slug        string    `gorm:"column:slug;not null" json:"slug"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Village     *Village  `gorm:"foreignKey:VillageID" json:"village,omitempty"`
	Smes        []Sme     `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"smes,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
