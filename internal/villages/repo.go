package villages

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

// Repository handles village persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to village operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns one page of active villages for the public directory.
func (r *Repository) ListActive(ctx context.Context, params pagination.Params) ([]models.Village, int64, error) {
	build := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Village{}).Where("villages.is_active = ?", true)
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var villages []models.Village
	err := build().
		Order("villages.name ASC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&villages).Error
	if err != nil {
		return nil, 0, err
	}
	return villages, total, nil
}

// ListScoped returns one admin page restricted by the caller's scope.
func (r *Repository) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Village, int64, error) {
	build := func() *gorm.DB {
		return sc.Villages(r.db.WithContext(ctx).Model(&models.Village{}))
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var villages []models.Village
	err := build().
		Order("villages.name ASC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&villages).Error
	if err != nil {
		return nil, 0, err
	}
	return villages, total, nil
}

// FindActiveBySlug loads an active village by slug.
func (r *Repository) FindActiveBySlug(ctx context.Context, slug string) (*models.Village, error) {
	var village models.Village
	if err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&village).Error; err != nil {
		return nil, err
	}
	return &village, nil
}

// FindByHost resolves an inbound hostname: first by custom domain, then by
// the subdomain slug.
func (r *Repository) FindByHost(ctx context.Context, host, subdomain string) (*models.Village, error) {
	var village models.Village
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND (custom_domain = ? OR slug = ?)", true, host, subdomain).
		First(&village).Error
	if err != nil {
		return nil, err
	}
	return &village, nil
}

// FindByIDScoped loads a village only when the scope may see it.
func (r *Repository) FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Village, error) {
	var village models.Village
	if err := sc.Villages(r.db.WithContext(ctx)).
		Where("villages.id = ?", id).
		First(&village).Error; err != nil {
		return nil, err
	}
	return &village, nil
}

// Create persists a new village row.
func (r *Repository) Create(ctx context.Context, village *models.Village) error {
	if village == nil {
		return fmt.Errorf("village is required")
	}
	return r.db.WithContext(ctx).Create(village).Error
}

// Update saves the provided village.
func (r *Repository) Update(ctx context.Context, village *models.Village) error {
	if village == nil {
		return fmt.Errorf("village is required")
	}
	return r.db.WithContext(ctx).Save(village).Error
}

// Delete removes a village; children cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Village{}, "id = ?", id).Error
}
