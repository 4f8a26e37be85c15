package stats

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/pkg/config"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/redis"
)

type fakeCache struct {
	entries map[string]string
	ttls    map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	value, ok := c.entries[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	raw, _ := value.([]byte)
	c.entries[key] = string(raw)
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) ForgetPattern(_ context.Context, pattern string) error {
	delete(c.entries, strings.TrimSuffix(pattern, "*"))
	return nil
}

func (c *fakeCache) CacheKey(parts ...string) string {
	return "sd:cache:" + strings.Join(parts, ":")
}

type stubStatsRepo struct {
	stats      SystemStats
	countCalls int
	popCalls   int
	searched   []string
}

func (r *stubStatsRepo) CountAll(_ context.Context) (*SystemStats, error) {
	r.countCalls++
	cpy := r.stats
	return &cpy, nil
}

func (r *stubStatsRepo) PopularOffers(_ context.Context, _ int) ([]PopularEntry, error) {
	r.popCalls++
	return []PopularEntry{{ID: uuid.New(), Type: "offer", Name: "Tas Anyaman", Slug: "tas-anyaman", ViewCount: 120}}, nil
}

func (r *stubStatsRepo) PopularPlaces(_ context.Context, _ int) ([]PopularEntry, error) {
	return nil, nil
}

func (r *stubStatsRepo) PopularArticles(_ context.Context, _ int) ([]PopularEntry, error) {
	return nil, nil
}

func (r *stubStatsRepo) SearchOffers(_ context.Context, q string, _ int) ([]SearchHit, error) {
	r.searched = append(r.searched, "offer")
	return []SearchHit{{ID: uuid.New(), Type: "offer", Name: "Kopi Robusta", Slug: "kopi-robusta"}}, nil
}

func (r *stubStatsRepo) SearchPlaces(_ context.Context, q string, _ int) ([]SearchHit, error) {
	r.searched = append(r.searched, "place")
	return nil, nil
}

func (r *stubStatsRepo) SearchArticles(_ context.Context, q string, _ int) ([]SearchHit, error) {
	r.searched = append(r.searched, "article")
	return nil, nil
}

func (r *stubStatsRepo) SearchSmes(_ context.Context, q string, _ int) ([]SearchHit, error) {
	r.searched = append(r.searched, "sme")
	return nil, nil
}

func newStatsService(t *testing.T, repo statsRepository, cache redis.Cache) Service {
	t.Helper()
	svc, err := NewService(repo, cache, config.CacheConfig{
		StatsTTL:   5 * time.Minute,
		PopularTTL: 10 * time.Minute,
	}, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSystemStatsCachedWithStatsTTL(t *testing.T) {
	repo := &stubStatsRepo{stats: SystemStats{Villages: 3, Smes: 12, Offers: 48}}
	cache := newFakeCache()
	svc := newStatsService(t, repo, cache)

	first, err := svc.System(context.Background())
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if first.Offers != 48 {
		t.Errorf("got %d offers, want 48", first.Offers)
	}
	if ttl := cache.ttls["sd:cache:system_stats"]; ttl != 5*time.Minute {
		t.Errorf("got ttl %v, want 5m", ttl)
	}

	if _, err := svc.System(context.Background()); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if repo.countCalls != 1 {
		t.Errorf("repo hit %d times, want 1", repo.countCalls)
	}
}

func TestPopularCachedWithPopularTTL(t *testing.T) {
	repo := &stubStatsRepo{}
	cache := newFakeCache()
	svc := newStatsService(t, repo, cache)

	popular, err := svc.Popular(context.Background())
	if err != nil {
		t.Fatalf("popular: %v", err)
	}
	if len(popular.Offers) != 1 || popular.Offers[0].Slug != "tas-anyaman" {
		t.Errorf("unexpected popular offers: %+v", popular.Offers)
	}
	if ttl := cache.ttls["sd:cache:popular_content"]; ttl != 10*time.Minute {
		t.Errorf("got ttl %v, want 10m", ttl)
	}

	if _, err := svc.Popular(context.Background()); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if repo.popCalls != 1 {
		t.Errorf("repo hit %d times, want 1", repo.popCalls)
	}
}

func TestInvalidateDropsCachedStats(t *testing.T) {
	repo := &stubStatsRepo{}
	cache := newFakeCache()
	svc := newStatsService(t, repo, cache)

	if _, err := svc.System(context.Background()); err != nil {
		t.Fatalf("warm: %v", err)
	}
	svc.Invalidate(context.Background())
	if _, err := svc.System(context.Background()); err != nil {
		t.Fatalf("reread: %v", err)
	}
	if repo.countCalls != 2 {
		t.Errorf("repo hit %d times after invalidation, want 2", repo.countCalls)
	}
}

func TestSearchTypeFilterLimitsTables(t *testing.T) {
	repo := &stubStatsRepo{}
	svc := newStatsService(t, repo, newFakeCache())

	result, err := svc.Search(context.Background(), "kopi", "offer")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(repo.searched) != 1 || repo.searched[0] != "offer" {
		t.Errorf("searched tables %v, want [offer]", repo.searched)
	}
	if len(result.Results) != 1 || result.Results[0].Name != "Kopi Robusta" {
		t.Errorf("unexpected results: %+v", result.Results)
	}
}

func TestSearchAllTypesWhenUnfiltered(t *testing.T) {
	repo := &stubStatsRepo{}
	svc := newStatsService(t, repo, newFakeCache())

	if _, err := svc.Search(context.Background(), "kopi", ""); err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(repo.searched) != 4 {
		t.Errorf("searched %v, want all four tables", repo.searched)
	}
}

func TestSearchRejectsShortQuery(t *testing.T) {
	svc := newStatsService(t, &stubStatsRepo{}, newFakeCache())

	_, err := svc.Search(context.Background(), " k ", "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestCorruptCacheFallsBackToDatabase(t *testing.T) {
	repo := &stubStatsRepo{stats: SystemStats{Villages: 1}}
	cache := newFakeCache()
	cache.entries["sd:cache:system_stats"] = "{not json"
	svc := newStatsService(t, repo, cache)

	stats, err := svc.System(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if stats.Villages != 1 {
		t.Errorf("got %d villages, want 1", stats.Villages)
	}
	var stored SystemStats
	if err := json.Unmarshal([]byte(cache.entries["sd:cache:system_stats"]), &stored); err != nil {
		t.Fatalf("cache must be rewritten with valid json: %v", err)
	}
}
