package articles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

type stubArticleRepo struct {
	byID   map[uuid.UUID]*models.Article
	bySlug map[string]uuid.UUID
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{byID: map[uuid.UUID]*models.Article{}, bySlug: map[string]uuid.UUID{}}
}

func (r *stubArticleRepo) ListPublished(_ context.Context, _ uuid.UUID, _ pagination.Params) ([]models.Article, int64, error) {
	return nil, 0, nil
}

func (r *stubArticleRepo) ListScoped(_ context.Context, _ scope.Scope, _ pagination.Params) ([]models.Article, int64, error) {
	return nil, 0, nil
}

func (r *stubArticleRepo) FindPublishedBySlug(_ context.Context, slug string) (*models.Article, error) {
	id, ok := r.bySlug[slug]
	if !ok || !r.byID[id].IsPublished {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *r.byID[id]
	return &cpy, nil
}

func (r *stubArticleRepo) FindByIDScoped(_ context.Context, _ scope.Scope, id uuid.UUID) (*models.Article, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *a
	return &cpy, nil
}

func (r *stubArticleRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	r.byID[id].ViewCount++
	return nil
}

func (r *stubArticleRepo) Create(_ context.Context, a *models.Article) error {
	a.ID = uuid.New()
	r.byID[a.ID] = a
	r.bySlug[a.Slug] = a.ID
	return nil
}

func (r *stubArticleRepo) Update(_ context.Context, a *models.Article) error {
	r.byID[a.ID] = a
	return nil
}

func (r *stubArticleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func newArticleService(t *testing.T, repo articleRepository) Service {
	t.Helper()
	svc, err := NewService(repo, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateForeignVillageForbidden(t *testing.T) {
	svc := newArticleService(t, newStubArticleRepo())
	own := uuid.New()
	other := uuid.New()

	_, err := svc.Create(context.Background(), scope.Scope{
		Role:      enums.UserRoleVillageAdmin,
		VillageID: &own,
	}, CreateArticleInput{VillageID: other, Title: "Berita", Body: "Isi"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("got %v, want forbidden", err)
	}
}

func TestCommunityAdminMustPinOwnCommunity(t *testing.T) {
	svc := newArticleService(t, newStubArticleRepo())
	villageID := uuid.New()
	communityID := uuid.New()
	sc := scope.Scope{
		Role:        enums.UserRoleCommunityAdmin,
		VillageID:   &villageID,
		CommunityID: &communityID,
	}

	// Missing community FK is an escape attempt: the article would be
	// village-owned, above the caller's level.
	_, err := svc.Create(context.Background(), sc, CreateArticleInput{
		VillageID: villageID, Title: "Berita", Body: "Isi",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("got %v, want forbidden without community FK", err)
	}

	dto, err := svc.Create(context.Background(), sc, CreateArticleInput{
		VillageID: villageID, CommunityID: &communityID, Title: "Berita", Body: "Isi",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.OwnerLevel != "community" {
		t.Errorf("got owner level %q, want community", dto.OwnerLevel)
	}
}

func TestPublishStampsPublishedAtOnce(t *testing.T) {
	repo := newStubArticleRepo()
	svc := newArticleService(t, repo)
	sc := scope.Scope{Role: enums.UserRoleSuperAdmin}
	villageID := uuid.New()

	dto, err := svc.Create(context.Background(), sc, CreateArticleInput{
		VillageID: villageID, Title: "Panen Raya", Body: "Isi", Publish: true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !dto.IsPublished || dto.PublishedAt == nil {
		t.Fatal("publish on create must stamp published_at")
	}
	first := *dto.PublishedAt

	publish := true
	updated, err := svc.Update(context.Background(), sc, dto.ID, UpdateArticleInput{Publish: &publish})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.PublishedAt.Equal(first) {
		t.Error("re-publishing an already-published article must not move published_at")
	}
}

func TestGetBySlugIncrementsViews(t *testing.T) {
	repo := newStubArticleRepo()
	article := &models.Article{Slug: "panen-raya", Title: "Panen Raya", Body: "Isi", IsPublished: true}
	_ = repo.Create(context.Background(), article)
	svc := newArticleService(t, repo)

	dto, err := svc.GetBySlug(context.Background(), "panen-raya")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if dto.ViewCount != 1 {
		t.Errorf("got view count %d, want 1", dto.ViewCount)
	}
}
