package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

// Repository handles offer persistence and the catalog filter grammar.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// applyFilters translates the optional query dimensions into WHERE clauses.
// Dimensions combine with AND; free-text search is a nested OR group.
func applyFilters(q *gorm.DB, query ListOffersQuery) *gorm.DB {
	if query.CategorySlug != "" {
		q = q.Where("offers.category_id IN (SELECT id FROM categories WHERE slug = ?)", query.CategorySlug)
	}
	if query.VillageSlug != "" {
		q = q.Where(
			"offers.sme_id IN (SELECT smes.id FROM smes JOIN communities ON communities.id = smes.community_id JOIN villages ON villages.id = communities.village_id WHERE villages.slug = ?) OR offers.place_id IN (SELECT places.id FROM places JOIN villages ON villages.id = places.village_id WHERE villages.slug = ?)",
			query.VillageSlug, query.VillageSlug,
		)
	}
	if query.PlaceSlug != "" {
		q = q.Where("offers.place_id IN (SELECT id FROM places WHERE slug = ?)", query.PlaceSlug)
	}
	if len(query.Tags) > 0 {
		q = q.Where(
			"offers.id IN (SELECT ota.offer_id FROM offer_tag_assignments ota JOIN offer_tags ot ON ot.id = ota.offer_tag_id WHERE ot.slug IN ?)",
			query.Tags,
		)
	}
	if query.Availability != "" {
		q = q.Where("offers.availability = ?", query.Availability)
	}
	if query.MinPrice != nil {
		q = q.Where("offers.price >= ?", *query.MinPrice)
	}
	if query.MaxPrice != nil {
		q = q.Where("offers.price <= ?", *query.MaxPrice)
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		pattern := "%" + search + "%"
		q = q.Where(
			"(offers.name ILIKE ? OR offers.description ILIKE ? OR offers.short_description ILIKE ? OR offers.id IN (SELECT ota.offer_id FROM offer_tag_assignments ota JOIN offer_tags ot ON ot.id = ota.offer_tag_id WHERE ot.name ILIKE ?))",
			pattern, pattern, pattern, pattern,
		)
	}
	return q
}

func withPreloads(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Category").
		Preload("Sme").
		Preload("Place").
		Preload("Tags").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("offer_images.sort_order ASC")
		}).
		Preload("EcommerceLinks")
}

// List returns one filtered, sorted catalog page plus the unpaged total.
// Only active offers are visible on the public surface.
func (r *Repository) List(ctx context.Context, query ListOffersQuery) ([]models.Offer, int64, error) {
	build := func() *gorm.DB {
		return applyFilters(
			r.db.WithContext(ctx).Model(&models.Offer{}).Where("offers.is_active = ?", true),
			query,
		)
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := query.pageParams()
	var offers []models.Offer
	err := withPreloads(build()).
		Order(orderClause(enums.ParseOfferSort(query.Sort))).
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&offers).Error
	if err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

// ListScoped returns an admin catalog page restricted by the caller's scope.
// Inactive offers stay visible to their owners here.
func (r *Repository) ListScoped(ctx context.Context, sc scope.Scope, query ListOffersQuery) ([]models.Offer, int64, error) {
	build := func() *gorm.DB {
		return applyFilters(sc.Offers(r.db.WithContext(ctx).Model(&models.Offer{})), query)
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := query.pageParams()
	var offers []models.Offer
	err := withPreloads(build()).
		Order(orderClause(enums.ParseOfferSort(query.Sort))).
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&offers).Error
	if err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

// FindBySlug loads one active offer with its full entity graph.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Offer, error) {
	var offer models.Offer
	if err := withPreloads(r.db.WithContext(ctx)).
		Where("offers.slug = ? AND offers.is_active = ?", slug, true).
		First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// FindByID loads one offer regardless of active state (admin surface).
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := withPreloads(r.db.WithContext(ctx)).
		Where("offers.id = ?", id).
		First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// FindByIDScoped loads one offer only when the scope is allowed to see it.
func (r *Repository) FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := withPreloads(sc.Offers(r.db.WithContext(ctx))).
		Where("offers.id = ?", id).
		First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// OwnerInScope reports whether the given SME or place owner is visible to the
// scope. Exactly one of the IDs is expected to be set.
func (r *Repository) OwnerInScope(ctx context.Context, sc scope.Scope, smeID, placeID *uuid.UUID) (bool, error) {
	var count int64
	switch {
	case smeID != nil:
		q := sc.Smes(r.db.WithContext(ctx).Model(&models.Sme{})).Where("smes.id = ?", *smeID)
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
	case placeID != nil:
		q := sc.Places(r.db.WithContext(ctx).Model(&models.Place{})).Where("places.id = ?", *placeID)
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
	}
	return count > 0, nil
}

// IncrementViews bumps the view counter in a single UPDATE.
func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Create persists a new offer with its tag assignments.
func (r *Repository) Create(ctx context.Context, offer *models.Offer) error {
	if offer == nil {
		return fmt.Errorf("offer is required")
	}
	return r.db.WithContext(ctx).Create(offer).Error
}

// Update saves the provided offer and replaces its tag set.
func (r *Repository) Update(ctx context.Context, offer *models.Offer, tags *[]models.OfferTag) error {
	if offer == nil {
		return fmt.Errorf("offer is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(offer).Error; err != nil {
			return err
		}
		if tags != nil {
			if err := tx.Model(offer).Association("Tags").Replace(*tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes an offer; images and marketplace links cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Offer{}, "id = ?", id).Error
}

// FindTagsBySlugs resolves tag slugs into rows, creating missing tags.
func (r *Repository) FindTagsBySlugs(ctx context.Context, slugs []string) ([]models.OfferTag, error) {
	tags := make([]models.OfferTag, 0, len(slugs))
	if len(slugs) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// AddImage attaches an image. Setting is_primary clears the flag on every
// sibling inside the same transaction so at most one primary survives.
func (r *Repository) AddImage(ctx context.Context, image *models.OfferImage) error {
	if image == nil {
		return fmt.Errorf("image is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if image.IsPrimary {
			if err := tx.Model(&models.OfferImage{}).
				Where("offer_id = ?", image.OfferID).
				UpdateColumn("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(image).Error
	})
}

// SetPrimaryImage makes the given image the only primary one for its offer.
func (r *Repository) SetPrimaryImage(ctx context.Context, offerID, imageID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var image models.OfferImage
		if err := tx.Where("id = ? AND offer_id = ?", imageID, offerID).First(&image).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.OfferImage{}).
			Where("offer_id = ? AND id <> ?", offerID, imageID).
			UpdateColumn("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.OfferImage{}).
			Where("id = ?", imageID).
			UpdateColumn("is_primary", true).Error
	})
}

// RemoveImage detaches an image from an offer.
func (r *Repository) RemoveImage(ctx context.Context, offerID, imageID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.OfferImage{}, "id = ? AND offer_id = ?", imageID, offerID).Error
}
