package smes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
	"github.com/andriansp/smartdesa-backend/pkg/slug"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

const uniqueConstraintSmeSlug = "smes_community_id_slug_key"

// CreateSmeInput captures the fields for a new SME.
type CreateSmeInput struct {
	CommunityID   uuid.UUID            `json:"community_id" validate:"required"`
	PlaceID       *uuid.UUID           `json:"place_id,omitempty"`
	Name          string               `json:"name" validate:"required,max=160"`
	Slug          string               `json:"slug,omitempty"`
	Type          string               `json:"type,omitempty"`
	Description   *string              `json:"description,omitempty"`
	OwnerName     *string              `json:"owner_name,omitempty"`
	Phone         *string              `json:"phone,omitempty"`
	BusinessHours *types.BusinessHours `json:"business_hours,omitempty"`
	Social        *types.Social        `json:"social,omitempty"`
}

// UpdateSmeInput captures the mutable SME fields.
type UpdateSmeInput struct {
	PlaceID       *uuid.UUID           `json:"place_id,omitempty"`
	Name          *string              `json:"name,omitempty"`
	Type          *string              `json:"type,omitempty"`
	Description   *string              `json:"description,omitempty"`
	OwnerName     *string              `json:"owner_name,omitempty"`
	Phone         *string              `json:"phone,omitempty"`
	BusinessHours *types.BusinessHours `json:"business_hours,omitempty"`
	Social        *types.Social        `json:"social,omitempty"`
	IsActive      *bool                `json:"is_active,omitempty"`
}

// SmeDTO is the public shape of an SME.
type SmeDTO struct {
	ID            uuid.UUID           `json:"id"`
	CommunityID   uuid.UUID           `json:"community_id"`
	PlaceID       *uuid.UUID          `json:"place_id,omitempty"`
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	Type          string              `json:"type"`
	Description   *string             `json:"description,omitempty"`
	OwnerName     *string             `json:"owner_name,omitempty"`
	Phone         *string             `json:"phone,omitempty"`
	BusinessHours types.BusinessHours `json:"business_hours"`
	Social        *types.Social       `json:"social,omitempty"`
	IsActive      bool                `json:"is_active"`
	IsVerified    bool                `json:"is_verified"`
	OfferCount    int                 `json:"offer_count"`
	CreatedAt     time.Time           `json:"created_at"`
}

// FromModel projects an SME row into its DTO.
func FromModel(sme *models.Sme) *SmeDTO {
	if sme == nil {
		return nil
	}
	return &SmeDTO{
		ID:            sme.ID,
		CommunityID:   sme.CommunityID,
		PlaceID:       sme.PlaceID,
		Name:          sme.Name,
		Slug:          sme.Slug,
		Type:          sme.Type.String(),
		Description:   sme.Description,
		OwnerName:     sme.OwnerName,
		Phone:         sme.Phone,
		BusinessHours: sme.BusinessHours,
		Social:        sme.Social,
		IsActive:      sme.IsActive,
		IsVerified:    sme.IsVerified,
		OfferCount:    len(sme.Offers),
		CreatedAt:     sme.CreatedAt,
	}
}

// Repository handles SME persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to SME operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListScoped returns one admin page restricted by the caller's scope.
func (r *Repository) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Sme, int64, error) {
	build := func() *gorm.DB {
		return sc.Smes(r.db.WithContext(ctx).Model(&models.Sme{}))
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var smes []models.Sme
	err := build().
		Preload("Offers").
		Order("smes.name ASC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&smes).Error
	if err != nil {
		return nil, 0, err
	}
	return smes, total, nil
}

// ListByVillage returns the active SMEs of one village for the public site.
func (r *Repository) ListByVillage(ctx context.Context, villageID uuid.UUID, params pagination.Params) ([]models.Sme, int64, error) {
	build := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Sme{}).
			Where("smes.is_active = ? AND smes.community_id IN (SELECT id FROM communities WHERE village_id = ?)", true, villageID)
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var smes []models.Sme
	err := build().
		Order("smes.name ASC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&smes).Error
	if err != nil {
		return nil, 0, err
	}
	return smes, total, nil
}

// FindActiveBySlug loads one active SME by village and slug.
func (r *Repository) FindActiveBySlug(ctx context.Context, villageID uuid.UUID, smeSlug string) (*models.Sme, error) {
	var sme models.Sme
	err := r.db.WithContext(ctx).
		Preload("Offers", "is_active = ?", true).
		Preload("Community").
		Preload("Place").
		Where("smes.slug = ? AND smes.is_active = ? AND smes.community_id IN (SELECT id FROM communities WHERE village_id = ?)",
			smeSlug, true, villageID).
		First(&sme).Error
	if err != nil {
		return nil, err
	}
	return &sme, nil
}

// FindByIDScoped loads an SME only when the scope may see it.
func (r *Repository) FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Sme, error) {
	var sme models.Sme
	if err := sc.Smes(r.db.WithContext(ctx)).
		Where("smes.id = ?", id).
		First(&sme).Error; err != nil {
		return nil, err
	}
	return &sme, nil
}

// CommunityInScope reports whether the scope may manage the given community.
func (r *Repository) CommunityInScope(ctx context.Context, sc scope.Scope, communityID uuid.UUID) (bool, error) {
	var count int64
	q := sc.Communities(r.db.WithContext(ctx).Model(&models.Community{})).Where("communities.id = ?", communityID)
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a new SME row.
func (r *Repository) Create(ctx context.Context, sme *models.Sme) error {
	if sme == nil {
		return fmt.Errorf("sme is required")
	}
	return r.db.WithContext(ctx).Create(sme).Error
}

// Update saves the provided SME.
func (r *Repository) Update(ctx context.Context, sme *models.Sme) error {
	if sme == nil {
		return fmt.Errorf("sme is required")
	}
	return r.db.WithContext(ctx).Save(sme).Error
}

// Delete removes an SME; offers cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Sme{}, "id = ?", id).Error
}

type smeRepository interface {
	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Sme, int64, error)
	ListByVillage(ctx context.Context, villageID uuid.UUID, params pagination.Params) ([]models.Sme, int64, error)
	FindActiveBySlug(ctx context.Context, villageID uuid.UUID, smeSlug string) (*models.Sme, error)
	FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Sme, error)
	CommunityInScope(ctx context.Context, sc scope.Scope, communityID uuid.UUID) (bool, error)
	Create(ctx context.Context, sme *models.Sme) error
	Update(ctx context.Context, sme *models.Sme) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListResult bundles one SME page with its pagination block.
type ListResult struct {
	Smes       []SmeDTO
	Pagination types.Pagination
}

// Service exposes SME operations.
type Service interface {
	ListByVillage(ctx context.Context, villageID uuid.UUID, params pagination.Params) (*ListResult, error)
	GetBySlug(ctx context.Context, villageID uuid.UUID, smeSlug string) (*SmeDTO, error)

	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error)
	Create(ctx context.Context, sc scope.Scope, input CreateSmeInput) (*SmeDTO, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateSmeInput) (*SmeDTO, error)
	Verify(ctx context.Context, sc scope.Scope, id uuid.UUID) (*SmeDTO, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
}

type service struct {
	repo smeRepository
	now  func() time.Time
}

// NewService builds an SME service with the provided repository.
func NewService(repo smeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sme repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) ListByVillage(ctx context.Context, villageID uuid.UUID, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	smes, total, err := s.repo.ListByVillage(ctx, villageID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list smes")
	}
	return buildListResult(smes, total, params), nil
}

func (s *service) GetBySlug(ctx context.Context, villageID uuid.UUID, smeSlug string) (*SmeDTO, error) {
	sme, err := s.repo.FindActiveBySlug(ctx, villageID, smeSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sme not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sme")
	}
	return FromModel(sme), nil
}

func (s *service) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	smes, total, err := s.repo.ListScoped(ctx, sc, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list smes")
	}
	return buildListResult(smes, total, params), nil
}

func (s *service) Create(ctx context.Context, sc scope.Scope, input CreateSmeInput) (*SmeDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.CommunityID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "community_id is required")
	}

	smeType := enums.SmeTypeProduct
	if input.Type != "" {
		parsed, err := enums.ParseSmeType(input.Type)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sme type")
		}
		smeType = parsed
	}

	allowed, err := s.repo.CommunityInScope(ctx, sc, input.CommunityID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check community scope")
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "community outside your scope")
	}

	smeSlug := input.Slug
	if smeSlug == "" {
		smeSlug = slug.Make(input.Name)
	}

	sme := &models.Sme{
		CommunityID: input.CommunityID,
		PlaceID:     input.PlaceID,
		Name:        input.Name,
		Slug:        smeSlug,
		Type:        smeType,
		Description: input.Description,
		OwnerName:   input.OwnerName,
		Phone:       input.Phone,
		Social:      input.Social,
		IsActive:    true,
	}
	if input.BusinessHours != nil {
		sme.BusinessHours = *input.BusinessHours
	}

	if err := s.repo.Create(ctx, sme); err != nil {
		if db.IsUniqueViolation(err, uniqueConstraintSmeSlug) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sme slug already exists in this community")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sme")
	}
	return FromModel(sme), nil
}

func (s *service) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateSmeInput) (*SmeDTO, error) {
	sme, err := s.loadScoped(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		sme.Name = *input.Name
	}
	if input.Type != nil {
		parsed, err := enums.ParseSmeType(*input.Type)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sme type")
		}
		sme.Type = parsed
	}
	if input.PlaceID != nil {
		sme.PlaceID = input.PlaceID
	}
	if input.Description != nil {
		sme.Description = input.Description
	}
	if input.OwnerName != nil {
		sme.OwnerName = input.OwnerName
	}
	if input.Phone != nil {
		sme.Phone = input.Phone
	}
	if input.BusinessHours != nil {
		sme.BusinessHours = *input.BusinessHours
	}
	if input.Social != nil {
		sme.Social = input.Social
	}
	if input.IsActive != nil {
		sme.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, sme); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update sme")
	}
	return FromModel(sme), nil
}

// Verify stamps the SME as verified. SME admins may not verify themselves.
func (s *service) Verify(ctx context.Context, sc scope.Scope, id uuid.UUID) (*SmeDTO, error) {
	if sc.Role == enums.UserRoleSmeAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "sme admins cannot verify their own business")
	}
	sme, err := s.loadScoped(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sme.IsVerified = true
	sme.LastVerifiedAt = &now
	if err := s.repo.Update(ctx, sme); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify sme")
	}
	return FromModel(sme), nil
}

func (s *service) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	if _, err := s.loadScoped(ctx, sc, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete sme")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Sme, error) {
	sme, err := s.repo.FindByIDScoped(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sme not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sme")
	}
	return sme, nil
}

func buildListResult(smes []models.Sme, total int64, params pagination.Params) *ListResult {
	result := &ListResult{
		Smes:       make([]SmeDTO, 0, len(smes)),
		Pagination: params.Meta(total),
	}
	for i := range smes {
		result.Smes = append(result.Smes, *FromModel(&smes[i]))
	}
	return result
}
