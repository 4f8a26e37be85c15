package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andriansp/smartdesa-backend/pkg/enums"
)

// Offer is the unified sellable item. Exactly one of SmeID or PlaceID is set
// (check constraint in the schema): SME-owned offers are the classic catalog
// entries, place-owned offers cover items advertised directly by a village
// site such as tickets or rentals.
type Offer struct {
	ID               uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SmeID            *uuid.UUID              `gorm:"column:sme_id;type:uuid;index" json:"sme_id,omitempty"`
	PlaceID          *uuid.UUID              `gorm:"column:place_id;type:uuid;index" json:"place_id,omitempty"`
	CategoryID       *uuid.UUID              `gorm:"column:category_id;type:uuid;index" json:"category_id,omitempty"`
	Name             string                  `gorm:"column:name;not null" json:"name"`
	Slug             string                  `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Description      *string                 `gorm:"column:description" json:"description,omitempty"`
	ShortDescription *string                 `gorm:"column:short_description" json:"short_description,omitempty"`
	Price            decimal.Decimal         `gorm:"column:price;type:numeric(14,2);not null" json:"price"`
	PriceMax         *decimal.Decimal        `gorm:"column:price_max;type:numeric(14,2)" json:"price_max,omitempty"`
	Unit             *string                 `gorm:"column:unit" json:"unit,omitempty"`
	Availability     enums.OfferAvailability `gorm:"column:availability;not null;default:'available'" json:"availability"`
	IsActive         bool                    `gorm:"column:is_active;not null;default:true" json:"is_active"`
	IsFeatured       bool                    `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	ViewCount        int64                   `gorm:"column:view_count;not null;default:0" json:"view_count"`
	Sme              *Sme                    `gorm:"foreignKey:SmeID" json:"sme,omitempty"`
	Place            *Place                  `gorm:"foreignKey:PlaceID" json:"place,omitempty"`
	Category         *Category               `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags             []OfferTag              `gorm:"many2many:offer_tag_assignments;" json:"tags,omitempty"`
	Images           []OfferImage            `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	EcommerceLinks   []EcommerceLink         `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE" json:"ecommerce_links,omitempty"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
