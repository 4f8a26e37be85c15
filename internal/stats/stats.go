package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/config"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/redis"
)

const searchLimit = 10

// SystemStats is the platform-wide counter block behind GET /api/stats.
type SystemStats struct {
	Villages    int64 `json:"villages"`
	Communities int64 `json:"communities"`
	Smes        int64 `json:"smes"`
	Offers      int64 `json:"offers"`
	Places      int64 `json:"places"`
	Articles    int64 `json:"articles"`
}

// PopularEntry is one row of the most-viewed content listing.
type PopularEntry struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ViewCount int64     `json:"view_count"`
}

// PopularContent groups the most-viewed rows per entity type.
type PopularContent struct {
	Offers   []PopularEntry `json:"offers"`
	Places   []PopularEntry `json:"places"`
	Articles []PopularEntry `json:"articles"`
}

// SearchHit is one cross-entity search match.
type SearchHit struct {
	ID      uuid.UUID `json:"id"`
	Type    string    `json:"type"`
	Name    string    `json:"name"`
	Slug    string    `json:"slug"`
	Summary *string   `json:"summary,omitempty"`
}

// SearchResult groups hits by entity type.
type SearchResult struct {
	Query   string      `json:"query"`
	Results []SearchHit `json:"results"`
}

type statsRepository interface {
	CountAll(ctx context.Context) (*SystemStats, error)
	PopularOffers(ctx context.Context, limit int) ([]PopularEntry, error)
	PopularPlaces(ctx context.Context, limit int) ([]PopularEntry, error)
	PopularArticles(ctx context.Context, limit int) ([]PopularEntry, error)
	SearchOffers(ctx context.Context, q string, limit int) ([]SearchHit, error)
	SearchPlaces(ctx context.Context, q string, limit int) ([]SearchHit, error)
	SearchArticles(ctx context.Context, q string, limit int) ([]SearchHit, error)
	SearchSmes(ctx context.Context, q string, limit int) ([]SearchHit, error)
}

// Service exposes the stats, popular and search reads. Stats and popular
// payloads are cached with their configured TTLs.
type Service interface {
	System(ctx context.Context) (*SystemStats, error)
	Popular(ctx context.Context) (*PopularContent, error)
	Search(ctx context.Context, query, entityType string) (*SearchResult, error)
	Invalidate(ctx context.Context)
}

type service struct {
	repo  statsRepository
	cache redis.Cache
	cfg   config.CacheConfig
	logg  *logger.Logger
}

// NewService builds a stats service with the provided repository and cache.
func NewService(repo statsRepository, cache redis.Cache, cfg config.CacheConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stats repository required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, cfg: cfg, logg: logg}, nil
}

func (s *service) System(ctx context.Context) (*SystemStats, error) {
	key := s.cache.CacheKey("system_stats")
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var stats SystemStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logg.Warn(ctx, "stats cache read failed")
	}

	stats, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count entities")
	}
	s.store(ctx, key, stats, s.cfg.StatsTTL)
	return stats, nil
}

func (s *service) Popular(ctx context.Context) (*PopularContent, error) {
	key := s.cache.CacheKey("popular_content")
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var popular PopularContent
		if err := json.Unmarshal([]byte(cached), &popular); err == nil {
			return &popular, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logg.Warn(ctx, "popular cache read failed")
	}

	offers, err := s.repo.PopularOffers(ctx, 5)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "popular offers")
	}
	places, err := s.repo.PopularPlaces(ctx, 5)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "popular places")
	}
	articles, err := s.repo.PopularArticles(ctx, 5)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "popular articles")
	}

	popular := &PopularContent{Offers: offers, Places: places, Articles: articles}
	s.store(ctx, key, popular, s.cfg.PopularTTL)
	return popular, nil
}

func (s *service) Search(ctx context.Context, query, entityType string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query must be at least 2 characters")
	}

	// Search results are never cached: the keyspace is unbounded.
	var hits []SearchHit
	search := func(kind string, fn func(context.Context, string, int) ([]SearchHit, error)) error {
		if entityType != "" && entityType != kind {
			return nil
		}
		found, err := fn(ctx, query, searchLimit)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search "+kind)
		}
		hits = append(hits, found...)
		return nil
	}

	if err := search("offer", s.repo.SearchOffers); err != nil {
		return nil, err
	}
	if err := search("place", s.repo.SearchPlaces); err != nil {
		return nil, err
	}
	if err := search("article", s.repo.SearchArticles); err != nil {
		return nil, err
	}
	if err := search("sme", s.repo.SearchSmes); err != nil {
		return nil, err
	}
	return &SearchResult{Query: query, Results: hits}, nil
}

// Invalidate drops the cached stats and popular payloads. Called by admin
// write paths whose rows feed those counters.
func (s *service) Invalidate(ctx context.Context) {
	for _, key := range []string{s.cache.CacheKey("system_stats"), s.cache.CacheKey("popular_content")} {
		if err := s.cache.ForgetPattern(ctx, key); err != nil {
			s.logg.Warn(ctx, "stats cache invalidation failed")
		}
	}
}

func (s *service) store(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, ttl); err != nil {
		s.logg.Warn(ctx, "stats cache write failed")
	}
}

// Repository runs the aggregate queries behind the stats service.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to stats queries.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountAll gathers the platform-wide counters in one round per table.
func (r *Repository) CountAll(ctx context.Context) (*SystemStats, error) {
	stats := &SystemStats{}
	counts := []struct {
		model any
		dest  *int64
		cond  string
	}{
		{&models.Village{}, &stats.Villages, "is_active = true"},
		{&models.Community{}, &stats.Communities, "is_active = true"},
		{&models.Sme{}, &stats.Smes, "is_active = true"},
		{&models.Offer{}, &stats.Offers, "is_active = true"},
		{&models.Place{}, &stats.Places, "is_active = true"},
		{&models.Article{}, &stats.Articles, "is_published = true"},
	}
	for _, c := range counts {
		if err := r.db.WithContext(ctx).Model(c.model).Where(c.cond).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// PopularOffers returns the most viewed active offers.
func (r *Repository) PopularOffers(ctx context.Context, limit int) ([]PopularEntry, error) {
	return r.popular(ctx, "offers", "offer", "name", "is_active = true", limit)
}

// PopularPlaces returns the most viewed active places.
func (r *Repository) PopularPlaces(ctx context.Context, limit int) ([]PopularEntry, error) {
	return r.popular(ctx, "places", "place", "name", "is_active = true", limit)
}

// PopularArticles returns the most viewed published articles.
func (r *Repository) PopularArticles(ctx context.Context, limit int) ([]PopularEntry, error) {
	return r.popular(ctx, "articles", "article", "title", "is_published = true", limit)
}

func (r *Repository) popular(ctx context.Context, table, kind, nameColumn, cond string, limit int) ([]PopularEntry, error) {
	var rows []PopularEntry
	err := r.db.WithContext(ctx).
		Table(table).
		Select("id, ? AS type, "+nameColumn+" AS name, slug, view_count", kind).
		Where(cond).
		Order("view_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SearchOffers matches active offers by name or description.
func (r *Repository) SearchOffers(ctx context.Context, q string, limit int) ([]SearchHit, error) {
	var hits []SearchHit
	err := r.db.WithContext(ctx).
		Table("offers").
		Select("id, 'offer' AS type, name, slug, short_description AS summary").
		Where("is_active = true AND (name ILIKE ? OR description ILIKE ?)", like(q), like(q)).
		Limit(limit).
		Scan(&hits).Error
	return hits, err
}

// SearchPlaces matches active places by name or description.
func (r *Repository) SearchPlaces(ctx context.Context, q string, limit int) ([]SearchHit, error) {
	var hits []SearchHit
	err := r.db.WithContext(ctx).
		Table("places").
		Select("id, 'place' AS type, name, slug, description AS summary").
		Where("is_active = true AND (name ILIKE ? OR description ILIKE ?)", like(q), like(q)).
		Limit(limit).
		Scan(&hits).Error
	return hits, err
}

// SearchArticles matches published articles by title or body.
func (r *Repository) SearchArticles(ctx context.Context, q string, limit int) ([]SearchHit, error) {
	var hits []SearchHit
	err := r.db.WithContext(ctx).
		Table("articles").
		Select("id, 'article' AS type, title AS name, slug, excerpt AS summary").
		Where("is_published = true AND (title ILIKE ? OR body ILIKE ?)", like(q), like(q)).
		Limit(limit).
		Scan(&hits).Error
	return hits, err
}

// SearchSmes matches active SMEs by name or description.
func (r *Repository) SearchSmes(ctx context.Context, q string, limit int) ([]SearchHit, error) {
	var hits []SearchHit
	err := r.db.WithContext(ctx).
		Table("smes").
		Select("id, 'sme' AS type, name, slug, description AS summary").
		Where("is_active = true AND (name ILIKE ? OR description ILIKE ?)", like(q), like(q)).
		Limit(limit).
		Scan(&hits).Error
	return hits, err
}

func like(q string) string {
	return "%" + q + "%"
}
