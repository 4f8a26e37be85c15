package links

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/andriansp/smartdesa-backend/pkg/config"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubLinkRepo struct {
	links      map[string]*models.ExternalLink
	clicks     []*models.LinkClick
	createErr  error
	logErr     error
	recent     int64
	increments map[uuid.UUID]int64
}

func newStubLinkRepo() *stubLinkRepo {
	return &stubLinkRepo{
		links:      map[string]*models.ExternalLink{},
		increments: map[uuid.UUID]int64{},
	}
}

func linkKey(subdomain, slug string) string {
	return subdomain + "/" + slug
}

func (r *stubLinkRepo) Create(_ context.Context, link *models.ExternalLink) error {
	if r.createErr != nil {
		return r.createErr
	}
	key := linkKey(link.Subdomain, link.Slug)
	if _, exists := r.links[key]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint %q", uniqueConstraintSubdomainSlug)
	}
	link.ID = uuid.New()
	link.CreatedAt = time.Now()
	r.links[key] = link
	return nil
}

func (r *stubLinkRepo) FindBySubdomainSlug(_ context.Context, subdomain, slug string) (*models.ExternalLink, error) {
	link, ok := r.links[linkKey(subdomain, slug)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *link
	cpy.ClickCount += r.increments[link.ID]
	return &cpy, nil
}

func (r *stubLinkRepo) IncrementClicks(_ context.Context, id uuid.UUID) error {
	r.increments[id]++
	return nil
}

func (r *stubLinkRepo) LogClick(_ context.Context, click *models.LinkClick) error {
	if r.logErr != nil {
		return r.logErr
	}
	r.clicks = append(r.clicks, click)
	return nil
}

func (r *stubLinkRepo) CountClicksSince(_ context.Context, _ uuid.UUID, _ time.Time) (int64, error) {
	return r.recent, nil
}

func newTestService(t *testing.T, repo linkRepository) Service {
	t.Helper()
	svc, err := NewService(repo, config.SiteConfig{BaseDomain: "smartdesa.id", LinkSubdomain: "go"}, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func seedLink(repo *stubLinkRepo, subdomain, slug string, mutate func(*models.ExternalLink)) *models.ExternalLink {
	link := &models.ExternalLink{
		ID:        uuid.New(),
		Subdomain: subdomain,
		Slug:      slug,
		TargetURL: "https://wa.me/6281234567890",
		IsActive:  true,
	}
	if mutate != nil {
		mutate(link)
	}
	repo.links[linkKey(subdomain, slug)] = link
	return link
}

func TestResolveIncrementsClickCountExactlyOncePerCall(t *testing.T) {
	repo := newStubLinkRepo()
	link := seedLink(repo, "contact", "whatsapp", nil)
	svc := newTestService(t, repo)

	const n = 5
	for i := 0; i < n; i++ {
		target, err := svc.Resolve(context.Background(), "contact", "whatsapp", ClickMeta{UserAgent: "curl"})
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
		if target != link.TargetURL {
			t.Fatalf("resolve %d: got target %q", i, target)
		}
	}

	if got := repo.increments[link.ID]; got != n {
		t.Errorf("got %d increments, want %d", got, n)
	}
	if len(repo.clicks) != n {
		t.Errorf("got %d click logs, want %d", len(repo.clicks), n)
	}
}

func TestResolveUnknownLinkReturnsNotFound(t *testing.T) {
	svc := newTestService(t, newStubLinkRepo())

	_, err := svc.Resolve(context.Background(), "contact", "missing", ClickMeta{})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestResolveExpiredLinkReturnsGoneNotNotFound(t *testing.T) {
	repo := newStubLinkRepo()
	yesterday := time.Now().AddDate(0, 0, -1)
	seedLink(repo, "contact", "whatsapp", func(l *models.ExternalLink) {
		l.ExpiresAt = &yesterday
	})
	svc := newTestService(t, repo)

	_, err := svc.Resolve(context.Background(), "contact", "whatsapp", ClickMeta{})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeGone {
		t.Fatalf("got %v, want gone", err)
	}
	if len(repo.increments) != 0 {
		t.Error("expired link must not accumulate clicks")
	}
}

func TestResolveInactiveLinkReturnsGone(t *testing.T) {
	repo := newStubLinkRepo()
	seedLink(repo, "contact", "whatsapp", func(l *models.ExternalLink) {
		l.IsActive = false
	})
	svc := newTestService(t, repo)

	_, err := svc.Resolve(context.Background(), "contact", "whatsapp", ClickMeta{})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeGone {
		t.Fatalf("got %v, want gone", err)
	}
}

func TestResolveSurvivesClickLogFailure(t *testing.T) {
	repo := newStubLinkRepo()
	repo.logErr = fmt.Errorf("insert failed")
	link := seedLink(repo, "contact", "whatsapp", nil)
	svc := newTestService(t, repo)

	target, err := svc.Resolve(context.Background(), "contact", "whatsapp", ClickMeta{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if target != link.TargetURL {
		t.Fatalf("got target %q", target)
	}
}

func TestCreateGeneratesSubdomainAndSlug(t *testing.T) {
	repo := newStubLinkRepo()
	svc := newTestService(t, repo)

	dto, err := svc.Create(context.Background(), CreateLinkInput{URL: "https://example.com/page"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Subdomain != "go" {
		t.Errorf("got subdomain %q, want default", dto.Subdomain)
	}
	if len(dto.Slug) != slugLength {
		t.Errorf("got slug %q, want %d generated characters", dto.Slug, slugLength)
	}
	if dto.ShortURL != "https://go.smartdesa.id/l/"+dto.Slug {
		t.Errorf("got short url %q", dto.ShortURL)
	}
}

func TestCreateDuplicatePairReturnsConflict(t *testing.T) {
	repo := newStubLinkRepo()
	svc := newTestService(t, repo)

	first := CreateLinkInput{URL: "https://example.com", Subdomain: "contact", Slug: "whatsapp"}
	if _, err := svc.Create(context.Background(), first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(context.Background(), CreateLinkInput{URL: "https://other.example.com", Subdomain: "contact", Slug: "whatsapp"})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeConflict {
		t.Fatalf("got %v, want conflict", err)
	}
}

func TestCreateRejectsRelativeURL(t *testing.T) {
	svc := newTestService(t, newStubLinkRepo())

	_, err := svc.Create(context.Background(), CreateLinkInput{URL: "/just/a/path"})
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeValidation {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestStatsReturnsCountsAndRecentWindow(t *testing.T) {
	repo := newStubLinkRepo()
	repo.recent = 3
	seedLink(repo, "contact", "whatsapp", func(l *models.ExternalLink) {
		l.ClickCount = 42
	})
	svc := newTestService(t, repo)

	stats, err := svc.Stats(context.Background(), "contact", "whatsapp")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.ClickCount != 42 {
		t.Errorf("got click count %d, want 42", stats.ClickCount)
	}
	if stats.RecentCount != 3 {
		t.Errorf("got recent count %d, want 3", stats.RecentCount)
	}
}
