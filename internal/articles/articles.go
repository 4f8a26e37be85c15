package articles

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
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
	"github.com/andriansp/smartdesa-backend/pkg/slug"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

const uniqueConstraintArticleSlug = "articles_slug_key"

// CreateArticleInput captures the fields for a new article. The scope FKs
// beyond village_id are optional and narrow the owner.
type CreateArticleInput struct {
	VillageID   uuid.UUID  `json:"village_id" validate:"required"`
	CommunityID *uuid.UUID `json:"community_id,omitempty"`
	SmeID       *uuid.UUID `json:"sme_id,omitempty"`
	PlaceID     *uuid.UUID `json:"place_id,omitempty"`
	Title       string     `json:"title" validate:"required,max=200"`
	Slug        string     `json:"slug,omitempty"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Body        string     `json:"body" validate:"required"`
	CoverPath   *string    `json:"cover_path,omitempty"`
	IsFeatured  bool       `json:"is_featured"`
	Publish     bool       `json:"publish"`
}

// UpdateArticleInput captures the mutable article fields.
type UpdateArticleInput struct {
	Title      *string `json:"title,omitempty"`
	Excerpt    *string `json:"excerpt,omitempty"`
	Body       *string `json:"body,omitempty"`
	CoverPath  *string `json:"cover_path,omitempty"`
	IsFeatured *bool   `json:"is_featured,omitempty"`
	Publish    *bool   `json:"publish,omitempty"`
}

// ArticleDTO is the public shape of an article.
type ArticleDTO struct {
	ID          uuid.UUID  `json:"id"`
	VillageID   uuid.UUID  `json:"village_id"`
	OwnerLevel  string     `json:"owner_level"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     *string    `json:"excerpt,omitempty"`
	Body        string     `json:"body,omitempty"`
	CoverPath   *string    `json:"cover_path,omitempty"`
	IsPublished bool       `json:"is_published"`
	IsFeatured  bool       `json:"is_featured"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ViewCount   int64      `json:"view_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromModel projects an article row into its DTO.
func FromModel(article *models.Article) *ArticleDTO {
	if article == nil {
		return nil
	}
	level, _ := article.OwnerScope()
	return &ArticleDTO{
		ID:          article.ID,
		VillageID:   article.VillageID,
		OwnerLevel:  level,
		Title:       article.Title,
		Slug:        article.Slug,
		Excerpt:     article.Excerpt,
		Body:        article.Body,
		CoverPath:   article.CoverPath,
		IsPublished: article.IsPublished,
		IsFeatured:  article.IsFeatured,
		PublishedAt: article.PublishedAt,
		ViewCount:   article.ViewCount,
		CreatedAt:   article.CreatedAt,
	}
}

// Repository handles article persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to article operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListPublished returns published articles of one village, newest first.
func (r *Repository) ListPublished(ctx context.Context, villageID uuid.UUID, params pagination.Params) ([]models.Article, int64, error) {
	build := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Article{}).
			Where("articles.village_id = ? AND articles.is_published = ?", villageID, true)
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := build().
		Order("articles.published_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// ListScoped returns one admin page restricted by the caller's scope.
func (r *Repository) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Article, int64, error) {
	build := func() *gorm.DB {
		return sc.Articles(r.db.WithContext(ctx).Model(&models.Article{}))
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []models.Article
	err := build().
		Order("articles.created_at DESC").
		Offset(params.Offset()).
		Limit(params.Limit()).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// FindPublishedBySlug loads one published article.
func (r *Repository) FindPublishedBySlug(ctx context.Context, articleSlug string) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).
		Where("articles.slug = ? AND articles.is_published = ?", articleSlug, true).
		First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// FindByIDScoped loads an article only when the scope may see it.
func (r *Repository) FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Article, error) {
	var article models.Article
	if err := sc.Articles(r.db.WithContext(ctx)).
		Where("articles.id = ?", id).
		First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// IncrementViews bumps the view counter in a single UPDATE.
func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// Create persists a new article row.
func (r *Repository) Create(ctx context.Context, article *models.Article) error {
	if article == nil {
		return fmt.Errorf("article is required")
	}
	return r.db.WithContext(ctx).Create(article).Error
}

// Update saves the provided article.
func (r *Repository) Update(ctx context.Context, article *models.Article) error {
	if article == nil {
		return fmt.Errorf("article is required")
	}
	return r.db.WithContext(ctx).Save(article).Error
}

// Delete removes an article.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Article{}, "id = ?", id).Error
}

type articleRepository interface {
	ListPublished(ctx context.Context, villageID uuid.UUID, params pagination.Params) ([]models.Article, int64, error)
	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Article, int64, error)
	FindPublishedBySlug(ctx context.Context, articleSlug string) (*models.Article, error)
	FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Article, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListResult bundles one article page with its pagination block.
type ListResult struct {
	Articles   []ArticleDTO
	Pagination types.Pagination
}

// Service exposes article operations.
type Service interface {
	ListPublished(ctx context.Context, villageID uuid.UUID, params pagination.Params) (*ListResult, error)
	GetBySlug(ctx context.Context, articleSlug string) (*ArticleDTO, error)

	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error)
	Create(ctx context.Context, sc scope.Scope, input CreateArticleInput) (*ArticleDTO, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateArticleInput) (*ArticleDTO, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
}

type service struct {
	repo articleRepository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds an article service with the provided repository.
func NewService(repo articleRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("article repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) ListPublished(ctx context.Context, villageID uuid.UUID, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	articles, total, err := s.repo.ListPublished(ctx, villageID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list articles")
	}
	return buildListResult(articles, total, params), nil
}

func (s *service) GetBySlug(ctx context.Context, articleSlug string) (*ArticleDTO, error) {
	article, err := s.repo.FindPublishedBySlug(ctx, articleSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load article")
	}

	if err := s.repo.IncrementViews(ctx, article.ID); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "article_id", article.ID.String()), "incrementing article views failed")
	} else {
		article.ViewCount++
	}
	return FromModel(article), nil
}

func (s *service) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	articles, total, err := s.repo.ListScoped(ctx, sc, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list articles")
	}
	return buildListResult(articles, total, params), nil
}

// ownerWithinScope checks that the article's owner FKs do not escape the
// caller's scope. Non-super roles may only attach content to their own
// tenant chain.
func ownerWithinScope(sc scope.Scope, input CreateArticleInput) bool {
	switch sc.Role {
	case enums.UserRoleSuperAdmin:
		return true
	case enums.UserRoleVillageAdmin:
		return sc.VillageID != nil && input.VillageID == *sc.VillageID
	case enums.UserRoleCommunityAdmin:
		return sc.VillageID != nil && input.VillageID == *sc.VillageID &&
			sc.CommunityID != nil && input.CommunityID != nil && *input.CommunityID == *sc.CommunityID
	case enums.UserRoleSmeAdmin:
		return sc.VillageID != nil && input.VillageID == *sc.VillageID &&
			sc.SmeID != nil && input.SmeID != nil && *input.SmeID == *sc.SmeID
	default:
		return false
	}
}

func (s *service) Create(ctx context.Context, sc scope.Scope, input CreateArticleInput) (*ArticleDTO, error) {
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.Body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "body is required")
	}
	if input.VillageID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "village_id is required")
	}
	if !ownerWithinScope(sc, input) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "owner outside your scope")
	}

	articleSlug := input.Slug
	if articleSlug == "" {
		articleSlug = slug.Make(input.Title)
	}

	article := &models.Article{
		VillageID:   input.VillageID,
		CommunityID: input.CommunityID,
		SmeID:       input.SmeID,
		PlaceID:     input.PlaceID,
		Title:       input.Title,
		Slug:        articleSlug,
		Excerpt:     input.Excerpt,
		Body:        input.Body,
		CoverPath:   input.CoverPath,
		IsFeatured:  input.IsFeatured,
	}
	if input.Publish {
		now := s.now()
		article.IsPublished = true
		article.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, article); err != nil {
		if db.IsUniqueViolation(err, uniqueConstraintArticleSlug) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "article slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create article")
	}
	return FromModel(article), nil
}

func (s *service) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateArticleInput) (*ArticleDTO, error) {
	article, err := s.loadScoped(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must not be empty")
		}
		article.Title = *input.Title
	}
	if input.Excerpt != nil {
		article.Excerpt = input.Excerpt
	}
	if input.Body != nil {
		if *input.Body == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "body must not be empty")
		}
		article.Body = *input.Body
	}
	if input.CoverPath != nil {
		article.CoverPath = input.CoverPath
	}
	if input.IsFeatured != nil {
		article.IsFeatured = *input.IsFeatured
	}
	if input.Publish != nil {
		if *input.Publish && !article.IsPublished {
			now := s.now()
			article.PublishedAt = &now
		}
		article.IsPublished = *input.Publish
	}

	if err := s.repo.Update(ctx, article); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update article")
	}
	return FromModel(article), nil
}

func (s *service) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	if _, err := s.loadScoped(ctx, sc, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete article")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Article, error) {
	article, err := s.repo.FindByIDScoped(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load article")
	}
	return article, nil
}

func buildListResult(articles []models.Article, total int64, params pagination.Params) *ListResult {
	result := &ListResult{
		Articles:   make([]ArticleDTO, 0, len(articles)),
		Pagination: params.Meta(total),
	}
	for i := range articles {
		result.Articles = append(result.Articles, *FromModel(&articles[i]))
	}
	return result
}
