package places

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
	"github.com/andriansp/smartdesa-backend/pkg/slug"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

const uniqueConstraintPlaceSlug = "places_village_id_slug_key"

// CreatePlaceInput captures the fields for a new place.
type CreatePlaceInput struct {
	VillageID    uuid.UUID          `json:"village_id" validate:"required"`
	CategoryID   *uuid.UUID         `json:"category_id,omitempty"`
	Name         string             `json:"name" validate:"required,max=160"`
	Slug         string             `json:"slug,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Address      *string            `json:"address,omitempty"`
	Latitude     *float64           `json:"latitude,omitempty"`
	Longitude    *float64           `json:"longitude,omitempty"`
	Facilities   []string           `json:"facilities,omitempty"`
	CustomFields *types.PlaceFields `json:"custom_fields,omitempty"`
	IsFeatured   bool               `json:"is_featured"`
}

// UpdatePlaceInput captures the mutable place fields.
type UpdatePlaceInput struct {
	CategoryID   *uuid.UUID         `json:"category_id,omitempty"`
	Name         *string            `json:"name,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Address      *string            `json:"address,omitempty"`
	Latitude     *float64           `json:"latitude,omitempty"`
	Longitude    *float64           `json:"longitude,omitempty"`
	Facilities   *[]string          `json:"facilities,omitempty"`
	CustomFields *types.PlaceFields `json:"custom_fields,omitempty"`
	IsActive     *bool              `json:"is_active,omitempty"`
	IsFeatured   *bool              `json:"is_featured,omitempty"`
}

// PlaceDTO is the public shape of a place.
type PlaceDTO struct {
	ID           uuid.UUID         `json:"id"`
	VillageID    uuid.UUID         `json:"village_id"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Description  *string           `json:"description,omitempty"`
	Address      *string           `json:"address,omitempty"`
	Latitude     *float64          `json:"latitude,omitempty"`
	Longitude    *float64          `json:"longitude,omitempty"`
	Facilities   []string          `json:"facilities"`
	CustomFields types.PlaceFields `json:"custom_fields"`
	Category     *string           `json:"category,omitempty"`
	IsActive     bool              `json:"is_active"`
	IsFeatured   bool              `json:"is_featured"`
	ViewCount    int64             `json:"view_count"`
	CreatedAt    time.Time         `json:"created_at"`
}

// FromModel projects a place row into its DTO.
func FromModel(place *models.Place) *PlaceDTO {
	if place == nil {
		return nil
	}
	dto := &PlaceDTO{
		ID:           place.ID,
		VillageID:    place.VillageID,
		Name:         place.Name,
		Slug:         place.Slug,
		Description:  place.Description,
		Address:      place.Address,
		Latitude:     place.Latitude,
		Longitude:    place.Longitude,
		Facilities:   append([]string{}, place.Facilities...),
		CustomFields: place.CustomFields,
		IsActive:     place.IsActive,
		IsFeatured:   place.IsFeatured,
		ViewCount:    place.ViewCount,
		CreatedAt:    place.CreatedAt,
	}
	if place.Category != nil {
		dto.Category = &place.Category.Name
	}
	return dto
}

// Repository handles place persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to place operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByVillage returns active places of one village, optionally filtered by
// category slug.
func (r *Repository) ListByVillage(ctx context.Context, villageID uuid.UUID, categorySlug string, params pagination.Params) ([]models.Place, int64, error) {
	build := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Place{}).
			Where("places.village_id = ? AND places.is_active = ?", villageID, true)
		if categorySlug != "" {
			q = q.Where("places.category_id IN (SELECT id FROM categories WHERE slug = ?)", categorySlug)
		}
		return q
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var places []models.Place
	err := build().
		Preload("Category").
		Order("places.is_featured DESC, places.name ASC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&places).Error
	if err != nil {
		return nil, 0, err
	}
	return places, total, nil
}

// ListScoped returns one admin page restricted by the caller's scope.
func (r *Repository) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Place, int64, error) {
	build := func() *gorm.DB {
		return sc.Places(r.db.WithContext(ctx).Model(&models.Place{}))
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var places []models.Place
	err := build().
		Preload("Category").
		Order("places.name ASC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&places).Error
	if err != nil {
		return nil, 0, err
	}
	return places, total, nil
}

// FindActiveBySlug loads one active place by village and slug.
func (r *Repository) FindActiveBySlug(ctx context.Context, villageID uuid.UUID, placeSlug string) (*models.Place, error) {
	var place models.Place
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("places.village_id = ? AND places.slug = ? AND places.is_active = ?", villageID, placeSlug, true).
		First(&place).Error
	if err != nil {
		return nil, err
	}
	return &place, nil
}

// FindByIDScoped loads a place only when the scope may see it.
func (r *Repository) FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Place, error) {
	var place models.Place
	if err := sc.Places(r.db.WithContext(ctx)).
		Where("places.id = ?", id).
		First(&place).Error; err != nil {
		return nil, err
	}
	return &place, nil
}

// VillageInScope reports whether the scope may manage the given village.
func (r *Repository) VillageInScope(ctx context.Context, sc scope.Scope, villageID uuid.UUID) (bool, error) {
	var count int64
	q := sc.Villages(r.db.WithContext(ctx).Model(&models.Village{})).Where("villages.id = ?", villageID)
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementViews bumps the view counter in a single UPDATE.
func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Place{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Create persists a new place row.
func (r *Repository) Create(ctx context.Context, place *models.Place) error {
	if place == nil {
		return fmt.Errorf("place is required")
	}
	return r.db.WithContext(ctx).Create(place).Error
}

// Update saves the provided place.
func (r *Repository) Update(ctx context.Context, place *models.Place) error {
	if place == nil {
		return fmt.Errorf("place is required")
	}
	return r.db.WithContext(ctx).Save(place).Error
}

// Delete removes a place.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Place{}, "id = ?", id).Error
}

type placeRepository interface {
	ListByVillage(ctx context.Context, villageID uuid.UUID, categorySlug string, params pagination.Params) ([]models.Place, int64, error)
	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Place, int64, error)
	FindActiveBySlug(ctx context.Context, villageID uuid.UUID, placeSlug string) (*models.Place, error)
	FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Place, error)
	VillageInScope(ctx context.Context, sc scope.Scope, villageID uuid.UUID) (bool, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, place *models.Place) error
	Update(ctx context.Context, place *models.Place) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListResult bundles one place page with its pagination block.
type ListResult struct {
	Places     []PlaceDTO
	Pagination types.Pagination
}

// Service exposes place operations.
type Service interface {
	ListByVillage(ctx context.Context, villageID uuid.UUID, categorySlug string, params pagination.Params) (*ListResult, error)
	GetBySlug(ctx context.Context, villageID uuid.UUID, placeSlug string) (*PlaceDTO, error)

	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error)
	Create(ctx context.Context, sc scope.Scope, input CreatePlaceInput) (*PlaceDTO, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdatePlaceInput) (*PlaceDTO, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
}

type service struct {
	repo placeRepository
	logg *logger.Logger
}

// NewService builds a place service with the provided repository.
func NewService(repo placeRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("place repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) ListByVillage(ctx context.Context, villageID uuid.UUID, categorySlug string, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	places, total, err := s.repo.ListByVillage(ctx, villageID, categorySlug, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list places")
	}
	return buildListResult(places, total, params), nil
}

func (s *service) GetBySlug(ctx context.Context, villageID uuid.UUID, placeSlug string) (*PlaceDTO, error) {
	place, err := s.repo.FindActiveBySlug(ctx, villageID, placeSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "place not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load place")
	}

	if err := s.repo.IncrementViews(ctx, place.ID); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "place_id", place.ID.String()), "incrementing place views failed")
	} else {
		place.ViewCount++
	}
	return FromModel(place), nil
}

func (s *service) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	places, total, err := s.repo.ListScoped(ctx, sc, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list places")
	}
	return buildListResult(places, total, params), nil
}

func (s *service) Create(ctx context.Context, sc scope.Scope, input CreatePlaceInput) (*PlaceDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.VillageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "village_id is required")
	}

	allowed, err := s.repo.VillageInScope(ctx, sc, input.VillageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check village scope")
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "village outside your scope")
	}

	placeSlug := input.Slug
	if placeSlug == "" {
		placeSlug = slug.Make(input.Name)
	}

	place := &models.Place{
		VillageID:   input.VillageID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        placeSlug,
		Description: input.Description,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Facilities:  pq.StringArray(input.Facilities),
		IsActive:    true,
		IsFeatured:  input.IsFeatured,
	}
	if input.CustomFields != nil {
		place.CustomFields = *input.CustomFields
	}

	if err := s.repo.Create(ctx, place); err != nil {
		if db.IsUniqueViolation(err, uniqueConstraintPlaceSlug) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "place slug already exists in this village")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create place")
	}
	return FromModel(place), nil
}

func (s *service) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdatePlaceInput) (*PlaceDTO, error) {
	place, err := s.loadScoped(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		place.Name = *input.Name
	}
	if input.CategoryID != nil {
		place.CategoryID = input.CategoryID
	}
	if input.Description != nil {
		place.Description = input.Description
	}
	if input.Address != nil {
		place.Address = input.Address
	}
	if input.Latitude != nil {
		place.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		place.Longitude = input.Longitude
	}
	if input.Facilities != nil {
		place.Facilities = pq.StringArray(*input.Facilities)
	}
	if input.CustomFields != nil {
		place.CustomFields = *input.CustomFields
	}
	if input.IsActive != nil {
		place.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		place.IsFeatured = *input.IsFeatured
	}

	if err := s.repo.Update(ctx, place); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update place")
	}
	return FromModel(place), nil
}

func (s *service) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	if _, err := s.loadScoped(ctx, sc, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete place")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Place, error) {
	place, err := s.repo.FindByIDScoped(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "place not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load place")
	}
	return place, nil
}

func buildListResult(places []models.Place, total int64, params pagination.Params) *ListResult {
	result := &ListResult{
		Places:     make([]PlaceDTO, 0, len(places)),
		Pagination: params.Meta(total),
	}
	for i := range places {
		result.Places = append(result.Places, *FromModel(&places[i]))
	}
	return result
}
