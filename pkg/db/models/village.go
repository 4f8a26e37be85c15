package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/pkg/types"
)

// Village is the top-level tenant. Its slug doubles as the subdomain key for
// the branded micro-site; a custom domain may override it.
type Village struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string                `gorm:"column:name;not null" json:"name"`
	Slug          string                `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	CustomDomain  *string               `gorm:"column:custom_domain;uniqueIndex" json:"custom_domain,omitempty"`
	Description   *string               `gorm:"column:description" json:"description,omitempty"`
	Latitude      *float64              `gorm:"column:latitude;type:numeric(9,6)" json:"latitude,omitempty"`
	Longitude     *float64              `gorm:"column:longitude;type:numeric(9,6)" json:"longitude,omitempty"`
	IsActive      bool                  `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Settings      types.VillageSettings `gorm:"column:settings;type:jsonb" json:"settings"`
	EstablishedAt *time.Time            `gorm:"column:established_at" json:"established_at,omitempty"`
	Communities   []Community           `gorm:"foreignKey:VillageID;constraint:OnDelete:CASCADE" json:"communities,omitempty"`
	Places        []Place               `gorm:"foreignKey:VillageID;constraint:OnDelete:CASCADE" json:"places,omitempty"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
