package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/pkg/enums"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

// Sme is a small business belonging to a community, optionally anchored to a
// physical place.
type Sme struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CommunityID    uuid.UUID           `gorm:"column:community_id;type:uuid;not null;index" json:"community_id"`
	PlaceID        *uuid.UUID          `gorm:"column:place_id;type:uuid;index" json:"place_id,omitempty"`
	Name           string              `gorm:"column:name;not null" json:"name"`
	Slug           string              `gorm:"column:slug;not null" json:"slug"`
	Type           enums.SmeType       `gorm:"column:type;not null;default:'product'" json:"type"`
	Description    *string             `gorm:"column:description" json:"description,omitempty"`
	OwnerName      *string             `gorm:"column:owner_name" json:"owner_name,omitempty"`
	Phone          *string             `gorm:"column:phone" json:"phone,omitempty"`
	BusinessHours  types.BusinessHours `gorm:"column:business_hours;type:jsonb" json:"business_hours"`
	Social         *types.Social       `gorm:"column:social;type:jsonb" json:"social,omitempty"`
	IsActive       bool                `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsVerified     bool                `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	LastVerifiedAt *time.Time          `gorm:"column:last_verified_at" json:"last_verified_at,omitempty"`
	Community      *Community          `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
	Place          *Place              `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	Offers         []Offer             `gorm:"foreignKey:SmeID;constraint:OnDelete:CASCADE" json:"offers,omitempty"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
