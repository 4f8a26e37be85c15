package links

import (
	"context"
	"fmt"
	"time"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles short-link persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to short-link operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new link row.
func (r *Repository) Create(ctx context.Context, link *models.ExternalLink) error {
	if link == nil {
		return fmt.Errorf("link is required")
	}
	return r.db.WithContext(ctx).Create(link).Error
}

// FindBySubdomainSlug loads a link by its unique (subdomain, slug) pair.
func (r *Repository) FindBySubdomainSlug(ctx context.Context, subdomain, slug string) (*models.ExternalLink, error) {
	var link models.ExternalLink
	if err := r.db.WithContext(ctx).
		Where("subdomain = ? AND slug = ?", subdomain, slug).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// IncrementClicks bumps the click counter in a single UPDATE so concurrent
// resolutions never lose a count.
func (r *Repository) IncrementClicks(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ExternalLink{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + 1")).Error
}

// LogClick records one access-log row for a resolution.
func (r *Repository) LogClick(ctx context.Context, click *models.LinkClick) error {
	if click == nil {
		return fmt.Errorf("click is required")
	}
	return r.db.WithContext(ctx).Create(click).Error
}

// CountClicksSince counts logged clicks for a link after the cutoff.
func (r *Repository) CountClicksSince(ctx context.Context, linkID uuid.UUID, cutoff time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.LinkClick{}).
		Where("link_id = ? AND created_at >= ?", linkID, cutoff).
		Count(&count).Error
	return count, err
}
