package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

// ListOffersQuery carries every optional catalog filter. Filters combine with
// AND; the free-text search is an OR across name, descriptions and tag names.
type ListOffersQuery struct {
	CategorySlug string
	VillageSlug  string
	PlaceSlug    string
	Tags         []string
	Availability string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Search       string
	Sort         string
	Page         int
	PerPage      int
}

func (q ListOffersQuery) pageParams() pagination.Params {
	return pagination.Params{Page: q.Page, PerPage: q.PerPage}.Normalize()
}

// CreateOfferInput captures the admin-facing fields for a new offer. Exactly
// one of SmeID or PlaceID must be set.
type CreateOfferInput struct {
	SmeID            *uuid.UUID       `json:"sme_id,omitempty"`
	PlaceID          *uuid.UUID       `json:"place_id,omitempty"`
	CategoryID       *uuid.UUID       `json:"category_id,omitempty"`
	Name             string           `json:"name" validate:"required,max=160"`
	Slug             string           `json:"slug,omitempty"`
	Description      *string          `json:"description,omitempty"`
	ShortDescription *string          `json:"short_description,omitempty"`
	Price            decimal.Decimal  `json:"price" validate:"required"`
	PriceMax         *decimal.Decimal `json:"price_max,omitempty"`
	Unit             *string          `json:"unit,omitempty"`
	Availability     string           `json:"availability,omitempty"`
	IsFeatured       bool             `json:"is_featured"`
	TagSlugs         []string         `json:"tags,omitempty"`
}

// UpdateOfferInput captures the mutable offer fields. Nil pointers leave the
// stored value untouched.
type UpdateOfferInput struct {
	CategoryID       *uuid.UUID       `json:"category_id,omitempty"`
	Name             *string          `json:"name,omitempty"`
	Description      *string          `json:"description,omitempty"`
	ShortDescription *string          `json:"short_description,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	PriceMax         *decimal.Decimal `json:"price_max,omitempty"`
	Unit             *string          `json:"unit,omitempty"`
	Availability     *string          `json:"availability,omitempty"`
	IsActive         *bool            `json:"is_active,omitempty"`
	IsFeatured       *bool            `json:"is_featured,omitempty"`
	TagSlugs         *[]string        `json:"tags,omitempty"`
}

// AddImageInput attaches an image to an offer.
type AddImageInput struct {
	Path      string `json:"path" validate:"required"`
	AltText   *string `json:"alt_text,omitempty"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

// OfferSummaryDTO is the card projection used by listings.
type OfferSummaryDTO struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Slug         string           `json:"slug"`
	ShortDesc    *string          `json:"short_description,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	PriceMax     *decimal.Decimal `json:"price_max,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	Availability string           `json:"availability"`
	IsFeatured   bool             `json:"is_featured"`
	ViewCount    int64            `json:"view_count"`
	PrimaryImage *string          `json:"primary_image,omitempty"`
	Category     *CategoryRefDTO  `json:"category,omitempty"`
	Sme          *OwnerRefDTO     `json:"sme,omitempty"`
	Place        *OwnerRefDTO     `json:"place,omitempty"`
	Tags         []string         `json:"tags"`
	CreatedAt    time.Time        `json:"created_at"`
}

// OfferDetailDTO is the full projection used by the single-offer endpoint.
type OfferDetailDTO struct {
	OfferSummaryDTO
	Description    *string            `json:"description,omitempty"`
	Images         []OfferImageDTO    `json:"images"`
	EcommerceLinks []EcommerceLinkDTO `json:"ecommerce_links"`
}

// CategoryRefDTO is the embedded category reference.
type CategoryRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// OwnerRefDTO is the embedded SME or place reference.
type OwnerRefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// OfferImageDTO is the embedded image projection.
type OfferImageDTO struct {
	ID        uuid.UUID `json:"id"`
	Path      string    `json:"path"`
	AltText   *string   `json:"alt_text,omitempty"`
	IsPrimary bool      `json:"is_primary"`
	SortOrder int       `json:"sort_order"`
}

// EcommerceLinkDTO is the embedded marketplace link projection.
type EcommerceLinkDTO struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ListResult bundles one catalog page with its pagination block.
type ListResult struct {
	Offers     []OfferSummaryDTO
	Pagination types.Pagination
}

// SummaryFromModel projects an offer row into its listing shape.
func SummaryFromModel(offer *models.Offer) OfferSummaryDTO {
	dto := OfferSummaryDTO{
		ID:           offer.ID,
		Name:         offer.Name,
		Slug:         offer.Slug,
		ShortDesc:    offer.ShortDescription,
		Price:        offer.Price,
		PriceMax:     offer.PriceMax,
		Unit:         offer.Unit,
		Availability: offer.Availability.String(),
		IsFeatured:   offer.IsFeatured,
		ViewCount:    offer.ViewCount,
		Tags:         make([]string, 0, len(offer.Tags)),
		CreatedAt:    offer.CreatedAt,
	}
	for _, tag := range offer.Tags {
		dto.Tags = append(dto.Tags, tag.Name)
	}
	for i := range offer.Images {
		if offer.Images[i].IsPrimary {
			dto.PrimaryImage = &offer.Images[i].Path
			break
		}
	}
	if dto.PrimaryImage == nil && len(offer.Images) > 0 {
		dto.PrimaryImage = &offer.Images[0].Path
	}
	if offer.Category != nil {
		dto.Category = &CategoryRefDTO{ID: offer.Category.ID, Name: offer.Category.Name, Slug: offer.Category.Slug}
	}
	if offer.Sme != nil {
		dto.Sme = &OwnerRefDTO{ID: offer.Sme.ID, Name: offer.Sme.Name, Slug: offer.Sme.Slug}
	}
	if offer.Place != nil {
		dto.Place = &OwnerRefDTO{ID: offer.Place.ID, Name: offer.Place.Name, Slug: offer.Place.Slug}
	}
	return dto
}

// DetailFromModel projects an offer row into its detail shape.
func DetailFromModel(offer *models.Offer) *OfferDetailDTO {
	if offer == nil {
		return nil
	}
	dto := &OfferDetailDTO{
		OfferSummaryDTO: SummaryFromModel(offer),
		Description:     offer.Description,
		Images:          make([]OfferImageDTO, 0, len(offer.Images)),
		EcommerceLinks:  make([]EcommerceLinkDTO, 0, len(offer.EcommerceLinks)),
	}
	for _, img := range offer.Images {
		dto.Images = append(dto.Images, OfferImageDTO{
			ID:        img.ID,
			Path:      img.Path,
			AltText:   img.AltText,
			IsPrimary: img.IsPrimary,
			SortOrder: img.SortOrder,
		})
	}
	for _, link := range offer.EcommerceLinks {
		dto.EcommerceLinks = append(dto.EcommerceLinks, EcommerceLinkDTO{
			Platform: link.Platform,
			URL:      link.URL,
		})
	}
	return dto
}

func orderClause(sort enums.OfferSort) string {
	switch sort {
	case enums.OfferSortName:
		return "offers.name ASC"
	case enums.OfferSortPrice:
		return "offers.price ASC"
	case enums.OfferSortViewCount:
		return "offers.view_count DESC"
	default:
		return "offers.created_at DESC"
	}
}
