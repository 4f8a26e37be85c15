package categories

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

type stubCategoryRepo struct {
	byID     map[uuid.UUID]*models.Category
	villages map[uuid.UUID]bool
	created  []*models.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{
		byID:     map[uuid.UUID]*models.Category{},
		villages: map[uuid.UUID]bool{},
	}
}

func (r *stubCategoryRepo) ListScoped(_ context.Context, _ scope.Scope, _ pagination.Params) ([]models.Category, int64, error) {
	out := make([]models.Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCategoryRepo) ListByVillage(_ context.Context, villageID uuid.UUID, categoryType enums.CategoryType) ([]models.Category, error) {
	var out []models.Category
	for _, c := range r.byID {
		if c.VillageID != villageID {
			continue
		}
		if categoryType != "" && c.Type != categoryType {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByIDScoped(_ context.Context, _ scope.Scope, id uuid.UUID) (*models.Category, error) {
	if c, ok := r.byID[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) VillageInScope(_ context.Context, _ scope.Scope, villageID uuid.UUID) (bool, error) {
	return r.villages[villageID], nil
}

func (r *stubCategoryRepo) Create(_ context.Context, category *models.Category) error {
	category.ID = uuid.New()
	r.byID[category.ID] = category
	r.created = append(r.created, category)
	return nil
}

func (r *stubCategoryRepo) Update(_ context.Context, category *models.Category) error {
	r.byID[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func wantCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s", code, typed.Code())
	}
}

func TestCreateCategoryGeneratesSlug(t *testing.T) {
	repo := newStubCategoryRepo()
	villageID := uuid.New()
	repo.villages[villageID] = true
	svc, _ := NewService(repo)

	dto, err := svc.Create(context.Background(), scope.Scope{Role: enums.UserRoleSuperAdmin}, CreateCategoryInput{
		VillageID: villageID,
		Name:      "Kerajinan Tangan",
		Type:      "sme",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Slug != "kerajinan-tangan" {
		t.Fatalf("expected generated slug, got %q", dto.Slug)
	}
}

func TestCreateCategoryRejectsUnknownType(t *testing.T) {
	repo := newStubCategoryRepo()
	villageID := uuid.New()
	repo.villages[villageID] = true
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), scope.Scope{Role: enums.UserRoleSuperAdmin}, CreateCategoryInput{
		VillageID: villageID,
		Name:      "Wisata",
		Type:      "lodging",
	})
	wantCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateCategoryOutsideScopeForbidden(t *testing.T) {
	repo := newStubCategoryRepo()
	svc, _ := NewService(repo)

	own := uuid.New()
	_, err := svc.Create(context.Background(), scope.Scope{Role: enums.UserRoleVillageAdmin, VillageID: &own}, CreateCategoryInput{
		VillageID: uuid.New(),
		Name:      "Kuliner",
		Type:      "tourism",
	})
	wantCode(t, err, pkgerrors.CodeForbidden)
}

func TestListByVillageFiltersType(t *testing.T) {
	repo := newStubCategoryRepo()
	villageID := uuid.New()
	repo.villages[villageID] = true
	svc, _ := NewService(repo)

	sc := scope.Scope{Role: enums.UserRoleSuperAdmin}
	if _, err := svc.Create(context.Background(), sc, CreateCategoryInput{VillageID: villageID, Name: "Kuliner", Type: "tourism"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), sc, CreateCategoryInput{VillageID: villageID, Name: "Kerajinan", Type: "sme"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.ListByVillage(context.Background(), villageID, "sme")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Type != enums.CategoryTypeSme {
		t.Fatalf("expected one sme category, got %+v", got)
	}

	if _, err := svc.ListByVillage(context.Background(), villageID, "lodging"); err == nil {
		t.Fatal("expected validation error for unknown type")
	}
}

func TestDeleteMissingCategoryNotFound(t *testing.T) {
	repo := newStubCategoryRepo()
	svc, _ := NewService(repo)

	err := svc.Delete(context.Background(), scope.Scope{Role: enums.UserRoleSuperAdmin}, uuid.New())
	wantCode(t, err, pkgerrors.CodeNotFound)
}
