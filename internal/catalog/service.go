package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
	"github.com/andriansp/smartdesa-backend/pkg/slug"
)

const uniqueConstraintOfferSlug = "offers_slug_key"

type catalogRepository interface {
	List(ctx context.Context, query ListOffersQuery) ([]models.Offer, int64, error)
	ListScoped(ctx context.Context, sc scope.Scope, query ListOffersQuery) ([]models.Offer, int64, error)
	FindBySlug(ctx context.Context, slug string) (*models.Offer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Offer, error)
	OwnerInScope(ctx context.Context, sc scope.Scope, smeID, placeID *uuid.UUID) (bool, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, offer *models.Offer) error
	Update(ctx context.Context, offer *models.Offer, tags *[]models.OfferTag) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindTagsBySlugs(ctx context.Context, slugs []string) ([]models.OfferTag, error)
	AddImage(ctx context.Context, image *models.OfferImage) error
	SetPrimaryImage(ctx context.Context, offerID, imageID uuid.UUID) error
	RemoveImage(ctx context.Context, offerID, imageID uuid.UUID) error
}

// Service exposes the public catalog plus the scoped admin operations.
type Service interface {
	List(ctx context.Context, query ListOffersQuery) (*ListResult, error)
	GetBySlug(ctx context.Context, offerSlug string) (*OfferDetailDTO, error)

	ListScoped(ctx context.Context, sc scope.Scope, query ListOffersQuery) (*ListResult, error)
	Create(ctx context.Context, sc scope.Scope, input CreateOfferInput) (*OfferDetailDTO, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateOfferInput) (*OfferDetailDTO, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
	AddImage(ctx context.Context, sc scope.Scope, offerID uuid.UUID, input AddImageInput) (*OfferDetailDTO, error)
	SetPrimaryImage(ctx context.Context, sc scope.Scope, offerID, imageID uuid.UUID) (*OfferDetailDTO, error)
	RemoveImage(ctx context.Context, sc scope.Scope, offerID, imageID uuid.UUID) error
}

type service struct {
	repo catalogRepository
	logg *logger.Logger
}

// NewService builds a catalog service with the provided repository.
func NewService(repo catalogRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func validateQuery(query ListOffersQuery) error {
	if query.Availability != "" {
		if _, err := enums.ParseOfferAvailability(query.Availability); err != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown availability value")
		}
	}
	if query.MinPrice != nil && query.MinPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_price must not be negative")
	}
	if query.MinPrice != nil && query.MaxPrice != nil && query.MaxPrice.LessThan(*query.MinPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "max_price must be greater than min_price")
	}
	return nil
}

func (s *service) List(ctx context.Context, query ListOffersQuery) (*ListResult, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	offers, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}
	return buildListResult(offers, total, query), nil
}

func (s *service) GetBySlug(ctx context.Context, offerSlug string) (*OfferDetailDTO, error) {
	offer, err := s.repo.FindBySlug(ctx, offerSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}

	// Views accumulate per read. A failed bump is logged and never blocks
	// the response.
	if err := s.repo.IncrementViews(ctx, offer.ID); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "offer_id", offer.ID.String()), "incrementing offer views failed")
	} else {
		offer.ViewCount++
	}
	return DetailFromModel(offer), nil
}

func (s *service) ListScoped(ctx context.Context, sc scope.Scope, query ListOffersQuery) (*ListResult, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	offers, total, err := s.repo.ListScoped(ctx, sc, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}
	return buildListResult(offers, total, query), nil
}

func (s *service) Create(ctx context.Context, sc scope.Scope, input CreateOfferInput) (*OfferDetailDTO, error) {
	if (input.SmeID == nil) == (input.PlaceID == nil) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of sme_id or place_id is required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	availability := enums.OfferAvailabilityAvailable
	if input.Availability != "" {
		parsed, err := enums.ParseOfferAvailability(input.Availability)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown availability value")
		}
		availability = parsed
	}

	allowed, err := s.repo.OwnerInScope(ctx, sc, input.SmeID, input.PlaceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check owner scope")
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "owner outside your scope")
	}

	offerSlug := input.Slug
	if offerSlug == "" {
		offerSlug = slug.Make(input.Name)
	}

	offer := &models.Offer{
		SmeID:            input.SmeID,
		PlaceID:          input.PlaceID,
		CategoryID:       input.CategoryID,
		Name:             input.Name,
		Slug:             offerSlug,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Price:            input.Price,
		PriceMax:         input.PriceMax,
		Unit:             input.Unit,
		Availability:     availability,
		IsActive:         true,
		IsFeatured:       input.IsFeatured,
	}
	if len(input.TagSlugs) > 0 {
		tags, err := s.repo.FindTagsBySlugs(ctx, input.TagSlugs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve tags")
		}
		offer.Tags = tags
	}

	if err := s.repo.Create(ctx, offer); err != nil {
		if db.IsUniqueViolation(err, uniqueConstraintOfferSlug) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "offer slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create offer")
	}
	return DetailFromModel(offer), nil
}

func (s *service) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateOfferInput) (*OfferDetailDTO, error) {
	offer, err := s.loadScoped(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		offer.Name = *input.Name
	}
	if input.CategoryID != nil {
		offer.CategoryID = input.CategoryID
	}
	if input.Description != nil {
		offer.Description = input.Description
	}
	if input.ShortDescription != nil {
		offer.ShortDescription = input.ShortDescription
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		offer.Price = *input.Price
	}
	if input.PriceMax != nil {
		offer.PriceMax = input.PriceMax
	}
	if input.Unit != nil {
		offer.Unit = input.Unit
	}
	if input.Availability != nil {
		parsed, err := enums.ParseOfferAvailability(*input.Availability)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown availability value")
		}
		offer.Availability = parsed
	}
	if input.IsActive != nil {
		offer.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		offer.IsFeatured = *input.IsFeatured
	}

	var tags *[]models.OfferTag
	if input.TagSlugs != nil {
		resolved, err := s.repo.FindTagsBySlugs(ctx, *input.TagSlugs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve tags")
		}
		tags = &resolved
		offer.Tags = resolved
	}

	if err := s.repo.Update(ctx, offer, tags); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update offer")
	}
	return DetailFromModel(offer), nil
}

func (s *service) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	if _, err := s.loadScoped(ctx, sc, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete offer")
	}
	return nil
}

func (s *service) AddImage(ctx context.Context, sc scope.Scope, offerID uuid.UUID, input AddImageInput) (*OfferDetailDTO, error) {
	if _, err := s.loadScoped(ctx, sc, offerID); err != nil {
		return nil, err
	}
	if input.Path == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "path is required")
	}

	image := &models.OfferImage{
		OfferID:   offerID,
		Path:      input.Path,
		AltText:   input.AltText,
		IsPrimary: input.IsPrimary,
		SortOrder: input.SortOrder,
	}
	if err := s.repo.AddImage(ctx, image); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add image")
	}
	return s.reload(ctx, offerID)
}

func (s *service) SetPrimaryImage(ctx context.Context, sc scope.Scope, offerID, imageID uuid.UUID) (*OfferDetailDTO, error) {
	if _, err := s.loadScoped(ctx, sc, offerID); err != nil {
		return nil, err
	}
	if err := s.repo.SetPrimaryImage(ctx, offerID, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set primary image")
	}
	return s.reload(ctx, offerID)
}

func (s *service) RemoveImage(ctx context.Context, sc scope.Scope, offerID, imageID uuid.UUID) error {
	if _, err := s.loadScoped(ctx, sc, offerID); err != nil {
		return err
	}
	if err := s.repo.RemoveImage(ctx, offerID, imageID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove image")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Offer, error) {
	offer, err := s.repo.FindByIDScoped(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}
	return offer, nil
}

func (s *service) reload(ctx context.Context, id uuid.UUID) (*OfferDetailDTO, error) {
	offer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload offer")
	}
	return DetailFromModel(offer), nil
}

func buildListResult(offers []models.Offer, total int64, query ListOffersQuery) *ListResult {
	result := &ListResult{
		Offers:     make([]OfferSummaryDTO, 0, len(offers)),
		Pagination: query.pageParams().Meta(total),
	}
	for i := range offers {
		result.Offers = append(result.Offers, SummaryFromModel(&offers[i]))
	}
	return result
}
