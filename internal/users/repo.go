package users

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

// Repository handles admin account persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to user operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveByEmail loads an active account for login.
func (r *Repository) FindActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDScoped loads an account the scope may see.
func (r *Repository) FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := sc.Users(r.db.WithContext(ctx)).First(&user, "users.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListScoped returns one admin page of accounts under the caller's scope.
func (r *Repository) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.User, int64, error) {
	build := func() *gorm.DB {
		return sc.Users(r.db.WithContext(ctx).Model(&models.User{}))
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := build().
		Order("users.created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create persists a new account.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// Update saves the full account row.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	return r.db.WithContext(ctx).Save(user).Error
}

// StampLastLogin records a successful login without touching updated_at.
func (r *Repository) StampLastLogin(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", gorm.Expr("NOW()")).Error
}

// Delete removes an account.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}

// CommunityBelongsToVillage reports whether the community sits under the village.
func (r *Repository) CommunityBelongsToVillage(ctx context.Context, communityID, villageID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Community{}).
		Where("id = ? AND village_id = ?", communityID, villageID).
		Count(&count).Error
	return count > 0, err
}

// SmeBelongsToCommunity reports whether the SME sits under the community.
func (r *Repository) SmeBelongsToCommunity(ctx context.Context, smeID, communityID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Sme{}).
		Where("id = ? AND community_id = ?", smeID, communityID).
		Count(&count).Error
	return count > 0, err
}
