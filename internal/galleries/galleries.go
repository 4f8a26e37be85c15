package galleries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/redis"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

// CreateImageInput captures the fields for a new gallery image.
type CreateImageInput struct {
	VillageID   uuid.UUID  `json:"village_id" validate:"required"`
	CommunityID *uuid.UUID `json:"community_id,omitempty"`
	SmeID       *uuid.UUID `json:"sme_id,omitempty"`
	PlaceID     *uuid.UUID `json:"place_id,omitempty"`
	Path        string     `json:"path" validate:"required"`
	Caption     *string    `json:"caption,omitempty"`
	AltText     *string    `json:"alt_text,omitempty"`
	IsFeatured  bool       `json:"is_featured"`
	SortOrder   int        `json:"sort_order"`
}

// CreateMediaInput captures the fields for a new video/audio asset.
type CreateMediaInput struct {
	VillageID   uuid.UUID               `json:"village_id" validate:"required"`
	CommunityID *uuid.UUID              `json:"community_id,omitempty"`
	SmeID       *uuid.UUID              `json:"sme_id,omitempty"`
	PlaceID     *uuid.UUID              `json:"place_id,omitempty"`
	Title       string                  `json:"title" validate:"required"`
	Kind        string                  `json:"kind" validate:"required,oneof=video audio"`
	Context     string                  `json:"context,omitempty"`
	Path        string                  `json:"path" validate:"required"`
	Playback    *types.PlaybackSettings `json:"playback,omitempty"`
	SortOrder   int                     `json:"sort_order"`
}

// GalleryDTO is the public gallery payload of one village.
type GalleryDTO struct {
	Images []models.Image      `json:"images"`
	Media  []models.MediaAsset `json:"media"`
}

type galleryRepository interface {
	ListVillageImages(ctx context.Context, villageID uuid.UUID) ([]models.Image, error)
	ListVillageMedia(ctx context.Context, villageID uuid.UUID) ([]models.MediaAsset, error)
	ListImagesScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Image, int64, error)
	ListMediaScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.MediaAsset, int64, error)
	CreateImage(ctx context.Context, image *models.Image) error
	CreateMedia(ctx context.Context, media *models.MediaAsset) error
	DeleteImageScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (int64, error)
	DeleteMediaScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (int64, error)
}

// ImagesPage is one scoped admin page of images.
type ImagesPage struct {
	Images     []models.Image
	Pagination types.Pagination
}

// MediaPage is one scoped admin page of media assets.
type MediaPage struct {
	Media      []models.MediaAsset
	Pagination types.Pagination
}

// Service exposes gallery operations. Public reads go through the cache;
// every write invalidates the owning village's cached payload.
type Service interface {
	VillageGallery(ctx context.Context, villageID uuid.UUID) (*GalleryDTO, error)

	ListImagesScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ImagesPage, error)
	ListMediaScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*MediaPage, error)
	CreateImage(ctx context.Context, sc scope.Scope, input CreateImageInput) (*models.Image, error)
	CreateMedia(ctx context.Context, sc scope.Scope, input CreateMediaInput) (*models.MediaAsset, error)
	DeleteImage(ctx context.Context, sc scope.Scope, villageID, id uuid.UUID) error
	DeleteMedia(ctx context.Context, sc scope.Scope, villageID, id uuid.UUID) error
}

type service struct {
	repo  galleryRepository
	cache redis.Cache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService builds a gallery service with the provided repository and cache.
func NewService(repo galleryRepository, cache redis.Cache, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("gallery repository required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, ttl: ttl, logg: logg}, nil
}

func (s *service) galleryKey(villageID uuid.UUID) string {
	return s.cache.CacheKey("gallery", villageID.String())
}

func (s *service) VillageGallery(ctx context.Context, villageID uuid.UUID) (*GalleryDTO, error) {
	key := s.galleryKey(villageID)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var dto GalleryDTO
		if err := json.Unmarshal([]byte(cached), &dto); err == nil {
			return &dto, nil
		}
		// Corrupt cache entries fall through to the database.
	} else if !errors.Is(err, redis.Nil) {
		s.logg.Warn(s.logg.WithField(ctx, "village_id", villageID.String()), "gallery cache read failed")
	}

	images, err := s.repo.ListVillageImages(ctx, villageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list images")
	}
	media, err := s.repo.ListVillageMedia(ctx, villageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media")
	}

	dto := &GalleryDTO{Images: images, Media: media}
	if payload, err := json.Marshal(dto); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "village_id", villageID.String()), "gallery cache write failed")
		}
	}
	return dto, nil
}

func (s *service) invalidate(ctx context.Context, villageID uuid.UUID) {
	if err := s.cache.ForgetPattern(ctx, s.galleryKey(villageID)); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "village_id", villageID.String()), "gallery cache invalidation failed")
	}
}

func (s *service) ListImagesScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ImagesPage, error) {
	params = params.Normalize()
	images, total, err := s.repo.ListImagesScoped(ctx, sc, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list images")
	}
	return &ImagesPage{Images: images, Pagination: params.Meta(total)}, nil
}

func (s *service) ListMediaScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*MediaPage, error) {
	params = params.Normalize()
	media, total, err := s.repo.ListMediaScoped(ctx, sc, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list media")
	}
	return &MediaPage{Media: media, Pagination: params.Meta(total)}, nil
}

func attachableWithinScope(sc scope.Scope, villageID uuid.UUID, communityID, smeID *uuid.UUID) bool {
	switch sc.Role {
	case enums.UserRoleSuperAdmin:
		return true
	case enums.UserRoleVillageAdmin:
		return sc.VillageID != nil && villageID == *sc.VillageID
	case enums.UserRoleCommunityAdmin:
		return sc.VillageID != nil && villageID == *sc.VillageID &&
			sc.CommunityID != nil && communityID != nil && *communityID == *sc.CommunityID
	case enums.UserRoleSmeAdmin:
		return sc.VillageID != nil && villageID == *sc.VillageID &&
			sc.SmeID != nil && smeID != nil && *smeID == *sc.SmeID
	default:
		return false
	}
}

func (s *service) CreateImage(ctx context.Context, sc scope.Scope, input CreateImageInput) (*models.Image, error) {
	if input.Path == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "path is required")
	}
	if input.VillageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "village_id is required")
	}
	if !attachableWithinScope(sc, input.VillageID, input.CommunityID, input.SmeID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "owner outside your scope")
	}

	image := &models.Image{
		VillageID:   input.VillageID,
		CommunityID: input.CommunityID,
		SmeID:       input.SmeID,
		PlaceID:     input.PlaceID,
		Path:        input.Path,
		Caption:     input.Caption,
		AltText:     input.AltText,
		IsFeatured:  input.IsFeatured,
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.CreateImage(ctx, image); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create image")
	}
	s.invalidate(ctx, input.VillageID)
	return image, nil
}

func (s *service) CreateMedia(ctx context.Context, sc scope.Scope, input CreateMediaInput) (*models.MediaAsset, error) {
	if input.Title == "" || input.Path == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and path are required")
	}
	if input.VillageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "village_id is required")
	}
	kind, err := enums.ParseMediaKind(input.Kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "kind must be video or audio")
	}
	mediaContext := enums.MediaContextGallery
	if input.Context != "" {
		parsed, err := enums.ParseMediaContext(input.Context)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown media context")
		}
		mediaContext = parsed
	}
	if !attachableWithinScope(sc, input.VillageID, input.CommunityID, input.SmeID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "owner outside your scope")
	}

	media := &models.MediaAsset{
		VillageID:   input.VillageID,
		CommunityID: input.CommunityID,
		SmeID:       input.SmeID,
		PlaceID:     input.PlaceID,
		Title:       input.Title,
		Kind:        kind,
		Context:     mediaContext,
		Path:        input.Path,
		IsActive:    true,
		SortOrder:   input.SortOrder,
	}
	if input.Playback != nil {
		media.Playback = *input.Playback
	}
	if err := s.repo.CreateMedia(ctx, media); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create media")
	}
	s.invalidate(ctx, input.VillageID)
	return media, nil
}

func (s *service) DeleteImage(ctx context.Context, sc scope.Scope, villageID, id uuid.UUID) error {
	affected, err := s.repo.DeleteImageScoped(ctx, sc, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete image")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
	}
	s.invalidate(ctx, villageID)
	return nil
}

func (s *service) DeleteMedia(ctx context.Context, sc scope.Scope, villageID, id uuid.UUID) error {
	affected, err := s.repo.DeleteMediaScoped(ctx, sc, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete media")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "media asset not found")
	}
	s.invalidate(ctx, villageID)
	return nil
}

// Repository handles image and media-asset persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to gallery operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListVillageImages returns every image of one village ordered for display.
func (r *Repository) ListVillageImages(ctx context.Context, villageID uuid.UUID) ([]models.Image, error) {
	var images []models.Image
	err := r.db.WithContext(ctx).
		Where("village_id = ?", villageID).
		Order("is_featured DESC, sort_order ASC, created_at DESC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// ListVillageMedia returns the active media assets of one village.
func (r *Repository) ListVillageMedia(ctx context.Context, villageID uuid.UUID) ([]models.MediaAsset, error) {
	var media []models.MediaAsset
	err := r.db.WithContext(ctx).
		Where("village_id = ? AND is_active = ?", villageID, true).
		Order("sort_order ASC, created_at DESC").
		Find(&media).Error
	if err != nil {
		return nil, err
	}
	return media, nil
}

// ListImagesScoped returns one admin page of images under the caller's scope.
func (r *Repository) ListImagesScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Image, int64, error) {
	build := func() *gorm.DB {
		return sc.Images(r.db.WithContext(ctx).Model(&models.Image{}))
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var images []models.Image
	err := build().
		Order("images.created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&images).Error
	if err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

// ListMediaScoped returns one admin page of media assets under the scope.
func (r *Repository) ListMediaScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.MediaAsset, int64, error) {
	build := func() *gorm.DB {
		return sc.MediaAssets(r.db.WithContext(ctx).Model(&models.MediaAsset{}))
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var media []models.MediaAsset
	err := build().
		Order("media_assets.created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&media).Error
	if err != nil {
		return nil, 0, err
	}
	return media, total, nil
}

// CreateImage persists a new image row.
func (r *Repository) CreateImage(ctx context.Context, image *models.Image) error {
	if image == nil {
		return fmt.Errorf("image is required")
	}
	return r.db.WithContext(ctx).Create(image).Error
}

// CreateMedia persists a new media asset row.
func (r *Repository) CreateMedia(ctx context.Context, media *models.MediaAsset) error {
	if media == nil {
		return fmt.Errorf("media is required")
	}
	return r.db.WithContext(ctx).Create(media).Error
}

// DeleteImageScoped deletes an image the scope may see, returning rows hit.
func (r *Repository) DeleteImageScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (int64, error) {
	res := sc.Images(r.db.WithContext(ctx)).Where("images.id = ?", id).Delete(&models.Image{})
	return res.RowsAffected, res.Error
}

// DeleteMediaScoped deletes a media asset the scope may see.
func (r *Repository) DeleteMediaScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (int64, error) {
	res := sc.MediaAssets(r.db.WithContext(ctx)).Where("media_assets.id = ?", id).Delete(&models.MediaAsset{})
	return res.RowsAffected, res.Error
}
