package categories

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

const uniqueConstraintCategorySlug = "categories_village_id_slug_key"

// CreateCategoryInput captures the fields for a new category.
type CreateCategoryInput struct {
	VillageID uuid.UUID `json:"village_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=120"`
	Slug      string    `json:"slug,omitempty"`
	Type      string    `json:"type" validate:"required"`
	Icon      *string   `json:"icon,omitempty"`
}

// UpdateCategoryInput captures the mutable category fields.
type UpdateCategoryInput struct {
	Name *string `json:"name,omitempty"`
	Icon *string `json:"icon,omitempty"`
}

// CategoryDTO is the public shape of a category.
type CategoryDTO struct {
	ID        uuid.UUID          `json:"id"`
	VillageID uuid.UUID          `json:"village_id"`
	Name      string             `json:"name"`
	Slug      string             `json:"slug"`
	Type      enums.CategoryType `json:"type"`
	Icon      *string            `json:"icon,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// FromModel projects a category row into its DTO.
func FromModel(category *models.Category) *CategoryDTO {
	if category == nil {
		return nil
	}
	return &CategoryDTO{
		ID:        category.ID,
		VillageID: category.VillageID,
		Name:      category.Name,
		Slug:      category.Slug,
		Type:      category.Type,
		Icon:      category.Icon,
		CreatedAt: category.CreatedAt,
	}
}

// Repository handles category persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to category operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListScoped returns one admin page restricted by the caller's scope.
func (r *Repository) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Category, int64, error) {
	build := func() *gorm.DB {
		return sc.Categories(r.db.WithContext(ctx).Model(&models.Category{}))
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []models.Category
	err := build().
		Order("categories.name ASC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// ListByVillage returns a village's categories, optionally narrowed by type.
func (r *Repository) ListByVillage(ctx context.Context, villageID uuid.UUID, categoryType enums.CategoryType) ([]models.Category, error) {
	q := r.db.WithContext(ctx).Where("village_id = ?", villageID)
	if categoryType != "" {
		q = q.Where("type = ?", categoryType)
	}
	var categories []models.Category
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByIDScoped loads a category only when the scope may see it.
func (r *Repository) FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := sc.Categories(r.db.WithContext(ctx)).
		Where("categories.id = ?", id).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
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

// Create persists a new category row.
func (r *Repository) Create(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("category is required")
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// Update saves the provided category.
func (r *Repository) Update(ctx context.Context, category *models.Category) error {
	if category == nil {
		return fmt.Errorf("category is required")
	}
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes a category; places and offers keep a NULL category_id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

type categoryRepository interface {
	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Category, int64, error)
	ListByVillage(ctx context.Context, villageID uuid.UUID, categoryType enums.CategoryType) ([]models.Category, error)
	FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Category, error)
	VillageInScope(ctx context.Context, sc scope.Scope, villageID uuid.UUID) (bool, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListResult bundles one category page with its pagination block.
type ListResult struct {
	Categories []CategoryDTO
	Pagination types.Pagination
}

// Service exposes category operations.
type Service interface {
	ListByVillage(ctx context.Context, villageID uuid.UUID, categoryType string) ([]CategoryDTO, error)
	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error)
	Create(ctx context.Context, sc scope.Scope, input CreateCategoryInput) (*CategoryDTO, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
}

type service struct {
	repo categoryRepository
}

// NewService builds a category service with the provided repository.
func NewService(repo categoryRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListByVillage(ctx context.Context, villageID uuid.UUID, categoryType string) ([]CategoryDTO, error) {
	var parsed enums.CategoryType
	if categoryType != "" {
		var err error
		parsed, err = enums.ParseCategoryType(categoryType)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "type must be sme or tourism")
		}
	}
	categories, err := s.repo.ListByVillage(ctx, villageID, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, *FromModel(&categories[i]))
	}
	return out, nil
}

func (s *service) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	categories, total, err := s.repo.ListScoped(ctx, sc, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	result := &ListResult{
		Categories: make([]CategoryDTO, 0, len(categories)),
		Pagination: params.Meta(total),
	}
	for i := range categories {
		result.Categories = append(result.Categories, *FromModel(&categories[i]))
	}
	return result, nil
}

func (s *service) Create(ctx context.Context, sc scope.Scope, input CreateCategoryInput) (*CategoryDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.VillageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "village_id is required")
	}
	categoryType, err := enums.ParseCategoryType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type must be sme or tourism")
	}

	allowed, err := s.repo.VillageInScope(ctx, sc, input.VillageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check village scope")
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "village outside your scope")
	}

	categorySlug := input.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(input.Name)
	}

	category := &models.Category{
		VillageID: input.VillageID,
		Name:      input.Name,
		Slug:      categorySlug,
		Type:      categoryType,
		Icon:      input.Icon,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, uniqueConstraintCategorySlug) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists in this village")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return FromModel(category), nil
}

func (s *service) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := s.loadScoped(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		category.Name = *input.Name
	}
	if input.Icon != nil {
		category.Icon = input.Icon
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return FromModel(category), nil
}

func (s *service) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	if _, err := s.loadScoped(ctx, sc, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByIDScoped(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	return category, nil
}
