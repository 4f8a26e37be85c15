package villages

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

type stubVillageRepo struct {
	byID      map[uuid.UUID]*models.Village
	bySlug    map[string]uuid.UUID
	byHost    map[string]uuid.UUID
	lastHost  string
	lastSub   string
	createErr error
}

func newStubVillageRepo() *stubVillageRepo {
	return &stubVillageRepo{
		byID:   map[uuid.UUID]*models.Village{},
		bySlug: map[string]uuid.UUID{},
		byHost: map[string]uuid.UUID{},
	}
}

func (r *stubVillageRepo) add(v *models.Village) *models.Village {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.byID[v.ID] = v
	r.bySlug[v.Slug] = v.ID
	return v
}

func (r *stubVillageRepo) ListActive(_ context.Context, _ pagination.Params) ([]models.Village, int64, error) {
	out := []models.Village{}
	for _, v := range r.byID {
		if v.IsActive {
			out = append(out, *v)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubVillageRepo) ListScoped(_ context.Context, _ scope.Scope, _ pagination.Params) ([]models.Village, int64, error) {
	out := []models.Village{}
	for _, v := range r.byID {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVillageRepo) FindActiveBySlug(_ context.Context, slug string) (*models.Village, error) {
	id, ok := r.bySlug[slug]
	if !ok || !r.byID[id].IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *r.byID[id]
	return &cpy, nil
}

func (r *stubVillageRepo) FindByHost(_ context.Context, host, subdomain string) (*models.Village, error) {
	r.lastHost = host
	r.lastSub = subdomain
	if id, ok := r.byHost[host]; ok {
		cpy := *r.byID[id]
		return &cpy, nil
	}
	if id, ok := r.bySlug[subdomain]; ok {
		cpy := *r.byID[id]
		return &cpy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubVillageRepo) FindByIDScoped(_ context.Context, _ scope.Scope, id uuid.UUID) (*models.Village, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *v
	return &cpy, nil
}

func (r *stubVillageRepo) Create(_ context.Context, v *models.Village) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.add(v)
	return nil
}

func (r *stubVillageRepo) Update(_ context.Context, v *models.Village) error {
	r.byID[v.ID] = v
	return nil
}

func (r *stubVillageRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func newVillageService(t *testing.T, repo villageRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestResolveHostPrefersCustomDomainThenSubdomain(t *testing.T) {
	repo := newStubVillageRepo()
	bayan := repo.add(&models.Village{Name: "Bayan", Slug: "bayan", IsActive: true})
	svc := newVillageService(t, repo)

	dto, err := svc.ResolveHost(context.Background(), "Bayan.smartdesa.id:8080", "smartdesa.id")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if dto.ID != bayan.ID {
		t.Errorf("got village %s, want bayan", dto.Name)
	}
	if repo.lastHost != "bayan.smartdesa.id" || repo.lastSub != "bayan" {
		t.Errorf("host parsing wrong: host=%q sub=%q", repo.lastHost, repo.lastSub)
	}
}

func TestResolveHostUnknownReturnsNotFound(t *testing.T) {
	svc := newVillageService(t, newStubVillageRepo())

	_, err := svc.ResolveHost(context.Background(), "nowhere.smartdesa.id", "smartdesa.id")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestGetBySlugSkipsInactiveVillages(t *testing.T) {
	repo := newStubVillageRepo()
	repo.add(&models.Village{Name: "Senaru", Slug: "senaru", IsActive: false})
	svc := newVillageService(t, repo)

	_, err := svc.GetBySlug(context.Background(), "senaru")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found for inactive village", err)
	}
}

func TestCreateVillageRequiresSuperAdmin(t *testing.T) {
	svc := newVillageService(t, newStubVillageRepo())
	villageID := uuid.New()

	_, err := svc.Create(context.Background(), scope.Scope{
		Role:      enums.UserRoleVillageAdmin,
		VillageID: &villageID,
	}, CreateVillageInput{Name: "Bayan"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("got %v, want forbidden", err)
	}
}

func TestVillageAdminCannotToggleActiveState(t *testing.T) {
	repo := newStubVillageRepo()
	v := repo.add(&models.Village{Name: "Bayan", Slug: "bayan", IsActive: true})
	svc := newVillageService(t, repo)

	inactive := false
	_, err := svc.Update(context.Background(), scope.Scope{
		Role:      enums.UserRoleVillageAdmin,
		VillageID: &v.ID,
	}, v.ID, UpdateVillageInput{IsActive: &inactive})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("got %v, want forbidden", err)
	}
}

func TestCreateVillageSlugDefaultsFromName(t *testing.T) {
	repo := newStubVillageRepo()
	svc := newVillageService(t, repo)

	dto, err := svc.Create(context.Background(), scope.Scope{Role: enums.UserRoleSuperAdmin}, CreateVillageInput{Name: "Desa Bayan Utara"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Slug != "desa-bayan-utara" {
		t.Errorf("got slug %q", dto.Slug)
	}
	if !dto.IsActive {
		t.Error("new villages start active")
	}
}
