package communities

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
	"github.com/andriansp/smartdesa-backend/pkg/slug"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

const uniqueConstraintCommunitySlug = "communities_village_id_slug_key"

// CreateCommunityInput captures the fields for a new community.
type CreateCommunityInput struct {
	VillageID   uuid.UUID `json:"village_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=160"`
	Slug        string    `json:"slug,omitempty"`
	Description *string   `json:"description,omitempty"`
}

// UpdateCommunityInput captures the mutable community fields.
type UpdateCommunityInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// CommunityDTO is the public shape of a community.
type CommunityDTO struct {
	ID          uuid.UUID `json:"id"`
	VillageID   uuid.UUID `json:"village_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	SmeCount    int       `json:"sme_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromModel projects a community row into its DTO.
func FromModel(community *models.Community) *CommunityDTO {
	if community == nil {
		return nil
	}
	return &CommunityDTO{
		ID:          community.ID,
		VillageID:   community.VillageID,
		Name:        community.Name,
		Slug:        community.Slug,
		Description: community.Description,
		IsActive:    community.IsActive,
		SmeCount:    len(community.Smes),
		CreatedAt:   community.CreatedAt,
	}
}

// Repository handles community persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to community operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListScoped returns one admin page restricted by the caller's scope.
func (r *Repository) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Community, int64, error) {
	build := func() *gorm.DB {
		return sc.Communities(r.db.WithContext(ctx).Model(&models.Community{}))
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var communities []models.Community
	err := build().
		Preload("Smes").
		Order("communities.name ASC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&communities).Error
	if err != nil {
		return nil, 0, err
	}
	return communities, total, nil
}

// ListByVillage returns all active communities of one village (public site).
func (r *Repository) ListByVillage(ctx context.Context, villageID uuid.UUID) ([]models.Community, error) {
	var communities []models.Community
	err := r.db.WithContext(ctx).
		Preload("Smes", "is_active = ?", true).
		Where("village_id = ? AND is_active = ?", villageID, true).
		Order("name ASC").
		Find(&communities).Error
	if err != nil {
		return nil, err
	}
	return communities, nil
}

// FindByIDScoped loads a community only when the scope may see it.
func (r *Repository) FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Community, error) {
	var community models.Community
	if err := sc.Communities(r.db.WithContext(ctx)).
		Where("communities.id = ?", id).
		First(&community).Error; err != nil {
		return nil, err
	}
	return &community, nil
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

// Create persists a new community row.
func (r *Repository) Create(ctx context.Context, community *models.Community) error {
	if community == nil {
		return fmt.Errorf("community is required")
	}
	return r.db.WithContext(ctx).Create(community).Error
}

// Update saves the provided community.
func (r *Repository) Update(ctx context.Context, community *models.Community) error {
	if community == nil {
		return fmt.Errorf("community is required")
	}
	return r.db.WithContext(ctx).Save(community).Error
}

// Delete removes a community; SMEs cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Community{}, "id = ?", id).Error
}

type communityRepository interface {
	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Community, int64, error)
	ListByVillage(ctx context.Context, villageID uuid.UUID) ([]models.Community, error)
	FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Community, error)
	VillageInScope(ctx context.Context, sc scope.Scope, villageID uuid.UUID) (bool, error)
	Create(ctx context.Context, community *models.Community) error
	Update(ctx context.Context, community *models.Community) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListResult bundles one community page with its pagination block.
type ListResult struct {
	Communities []CommunityDTO
	Pagination  types.Pagination
}

// Service exposes community operations.
type Service interface {
	ListByVillage(ctx context.Context, villageID uuid.UUID) ([]CommunityDTO, error)
	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error)
	Create(ctx context.Context, sc scope.Scope, input CreateCommunityInput) (*CommunityDTO, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateCommunityInput) (*CommunityDTO, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
}

type service struct {
	repo communityRepository
}

// NewService builds a community service with the provided repository.
func NewService(repo communityRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("community repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListByVillage(ctx context.Context, villageID uuid.UUID) ([]CommunityDTO, error) {
	communities, err := s.repo.ListByVillage(ctx, villageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list communities")
	}
	out := make([]CommunityDTO, 0, len(communities))
	for i := range communities {
		out = append(out, *FromModel(&communities[i]))
	}
	return out, nil
}

func (s *service) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	communities, total, err := s.repo.ListScoped(ctx, sc, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list communities")
	}
	result := &ListResult{
		Communities: make([]CommunityDTO, 0, len(communities)),
		Pagination:  params.Meta(total),
	}
	for i := range communities {
		result.Communities = append(result.Communities, *FromModel(&communities[i]))
	}
	return result, nil
}

func (s *service) Create(ctx context.Context, sc scope.Scope, input CreateCommunityInput) (*CommunityDTO, error) {
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

	communitySlug := input.Slug
	if communitySlug == "" {
		communitySlug = slug.Make(input.Name)
	}

	community := &models.Community{
		VillageID:   input.VillageID,
		Name:        input.Name,
		Slug:        communitySlug,
		Description: input.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, community); err != nil {
		if db.IsUniqueViolation(err, uniqueConstraintCommunitySlug) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "community slug already exists in this village")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create community")
	}
	return FromModel(community), nil
}

func (s *service) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateCommunityInput) (*CommunityDTO, error) {
	community, err := s.loadScoped(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		community.Name = *input.Name
	}
	if input.Description != nil {
		community.Description = input.Description
	}
	if input.IsActive != nil {
		community.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, community); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update community")
	}
	return FromModel(community), nil
}

func (s *service) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	if _, err := s.loadScoped(ctx, sc, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete community")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Community, error) {
	community, err := s.repo.FindByIDScoped(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "community not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load community")
	}
	return community, nil
}
