package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

type stubCatalogRepo struct {
	offers       map[uuid.UUID]*models.Offer
	bySlug       map[string]uuid.UUID
	viewBumps    map[uuid.UUID]int
	scopedHidden map[uuid.UUID]bool
	ownerAllowed bool
	tags         []models.OfferTag
	listed       []models.Offer
	total        int64
	lastQuery    ListOffersQuery
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{
		offers:       map[uuid.UUID]*models.Offer{},
		bySlug:       map[string]uuid.UUID{},
		viewBumps:    map[uuid.UUID]int{},
		scopedHidden: map[uuid.UUID]bool{},
		ownerAllowed: true,
	}
}

func (r *stubCatalogRepo) add(offer *models.Offer) *models.Offer {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	r.offers[offer.ID] = offer
	r.bySlug[offer.Slug] = offer.ID
	return offer
}

func (r *stubCatalogRepo) List(_ context.Context, query ListOffersQuery) ([]models.Offer, int64, error) {
	r.lastQuery = query
	return r.listed, r.total, nil
}

func (r *stubCatalogRepo) ListScoped(_ context.Context, _ scope.Scope, query ListOffersQuery) ([]models.Offer, int64, error) {
	r.lastQuery = query
	return r.listed, r.total, nil
}

func (r *stubCatalogRepo) FindBySlug(_ context.Context, slug string) (*models.Offer, error) {
	id, ok := r.bySlug[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *r.offers[id]
	return &cpy, nil
}

func (r *stubCatalogRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Offer, error) {
	offer, ok := r.offers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *offer
	return &cpy, nil
}

func (r *stubCatalogRepo) FindByIDScoped(_ context.Context, _ scope.Scope, id uuid.UUID) (*models.Offer, error) {
	offer, ok := r.offers[id]
	if !ok || r.scopedHidden[id] {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *offer
	return &cpy, nil
}

func (r *stubCatalogRepo) OwnerInScope(_ context.Context, _ scope.Scope, _, _ *uuid.UUID) (bool, error) {
	return r.ownerAllowed, nil
}

func (r *stubCatalogRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	r.viewBumps[id]++
	r.offers[id].ViewCount++
	return nil
}

func (r *stubCatalogRepo) Create(_ context.Context, offer *models.Offer) error {
	r.add(offer)
	return nil
}

func (r *stubCatalogRepo) Update(_ context.Context, offer *models.Offer, _ *[]models.OfferTag) error {
	r.offers[offer.ID] = offer
	return nil
}

func (r *stubCatalogRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.offers, id)
	return nil
}

func (r *stubCatalogRepo) FindTagsBySlugs(_ context.Context, _ []string) ([]models.OfferTag, error) {
	return r.tags, nil
}

func (r *stubCatalogRepo) AddImage(_ context.Context, image *models.OfferImage) error {
	offer := r.offers[image.OfferID]
	if image.IsPrimary {
		for i := range offer.Images {
			offer.Images[i].IsPrimary = false
		}
	}
	image.ID = uuid.New()
	offer.Images = append(offer.Images, *image)
	return nil
}

func (r *stubCatalogRepo) SetPrimaryImage(_ context.Context, offerID, imageID uuid.UUID) error {
	offer := r.offers[offerID]
	found := false
	for i := range offer.Images {
		offer.Images[i].IsPrimary = offer.Images[i].ID == imageID
		if offer.Images[i].ID == imageID {
			found = true
		}
	}
	if !found {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *stubCatalogRepo) RemoveImage(_ context.Context, offerID, imageID uuid.UUID) error {
	offer := r.offers[offerID]
	images := offer.Images[:0]
	for _, img := range offer.Images {
		if img.ID != imageID {
			images = append(images, img)
		}
	}
	offer.Images = images
	return nil
}

func newCatalogService(t *testing.T, repo catalogRepository) Service {
	t.Helper()
	svc, err := NewService(repo, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func superAdmin() scope.Scope {
	return scope.Scope{Role: enums.UserRoleSuperAdmin}
}

func TestGetBySlugIncrementsViewCount(t *testing.T) {
	repo := newStubCatalogRepo()
	offer := repo.add(&models.Offer{
		Name:         "Tas Anyaman",
		Slug:         "tas-anyaman",
		Price:        decimal.NewFromInt(50000),
		Availability: enums.OfferAvailabilityAvailable,
		ViewCount:    7,
	})
	svc := newCatalogService(t, repo)

	detail, err := svc.GetBySlug(context.Background(), "tas-anyaman")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if repo.viewBumps[offer.ID] != 1 {
		t.Errorf("got %d view bumps, want 1", repo.viewBumps[offer.ID])
	}
	if detail.ViewCount != 8 {
		t.Errorf("got view count %d, want 8", detail.ViewCount)
	}
}

func TestGetBySlugUnknownReturnsNotFound(t *testing.T) {
	svc := newCatalogService(t, newStubCatalogRepo())

	_, err := svc.GetBySlug(context.Background(), "missing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestListRejectsUnknownAvailability(t *testing.T) {
	svc := newCatalogService(t, newStubCatalogRepo())

	_, err := svc.List(context.Background(), ListOffersQuery{Availability: "soldout"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestListRejectsInvertedPriceRange(t *testing.T) {
	svc := newCatalogService(t, newStubCatalogRepo())

	min := decimal.NewFromInt(100)
	max := decimal.NewFromInt(50)
	_, err := svc.List(context.Background(), ListOffersQuery{MinPrice: &min, MaxPrice: &max})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestListBuildsPaginationMeta(t *testing.T) {
	repo := newStubCatalogRepo()
	repo.total = 31
	svc := newCatalogService(t, repo)

	result, err := svc.List(context.Background(), ListOffersQuery{Page: 2, PerPage: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Pagination.CurrentPage != 2 || result.Pagination.LastPage != 4 {
		t.Errorf("got pagination %+v", result.Pagination)
	}
	if result.Pagination.Total != 31 {
		t.Errorf("got total %d, want 31", result.Pagination.Total)
	}
}

func TestCreateRequiresExactlyOneOwner(t *testing.T) {
	svc := newCatalogService(t, newStubCatalogRepo())
	smeID := uuid.New()
	placeID := uuid.New()

	cases := []CreateOfferInput{
		{Name: "x", Price: decimal.NewFromInt(1)},
		{Name: "x", Price: decimal.NewFromInt(1), SmeID: &smeID, PlaceID: &placeID},
	}
	for i, input := range cases {
		_, err := svc.Create(context.Background(), superAdmin(), input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Errorf("case %d: got %v, want validation error", i, err)
		}
	}
}

func TestCreateOutsideScopeForbidden(t *testing.T) {
	repo := newStubCatalogRepo()
	repo.ownerAllowed = false
	svc := newCatalogService(t, repo)

	smeID := uuid.New()
	_, err := svc.Create(context.Background(), superAdmin(), CreateOfferInput{
		Name:  "Keripik",
		Price: decimal.NewFromInt(10000),
		SmeID: &smeID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("got %v, want forbidden", err)
	}
}

func TestCreateGeneratesSlugFromName(t *testing.T) {
	repo := newStubCatalogRepo()
	svc := newCatalogService(t, repo)

	smeID := uuid.New()
	detail, err := svc.Create(context.Background(), superAdmin(), CreateOfferInput{
		Name:  "Tas Anyaman Premium",
		Price: decimal.NewFromInt(50000),
		SmeID: &smeID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail.Slug != "tas-anyaman-premium" {
		t.Errorf("got slug %q", detail.Slug)
	}
	if detail.Availability != enums.OfferAvailabilityAvailable.String() {
		t.Errorf("got availability %q, want default available", detail.Availability)
	}
}

func TestUpdateHiddenOfferReturnsNotFound(t *testing.T) {
	repo := newStubCatalogRepo()
	offer := repo.add(&models.Offer{Name: "Kopi", Slug: "kopi", Price: decimal.NewFromInt(20000)})
	repo.scopedHidden[offer.ID] = true
	svc := newCatalogService(t, repo)

	name := "Kopi Robusta"
	_, err := svc.Update(context.Background(), superAdmin(), offer.ID, UpdateOfferInput{Name: &name})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found for out-of-scope offer", err)
	}
}

func TestImageOperationsKeepSinglePrimary(t *testing.T) {
	repo := newStubCatalogRepo()
	offer := repo.add(&models.Offer{Name: "Madu", Slug: "madu", Price: decimal.NewFromInt(80000)})
	svc := newCatalogService(t, repo)
	ctx := context.Background()
	sc := superAdmin()

	first, err := svc.AddImage(ctx, sc, offer.ID, AddImageInput{Path: "madu/1.jpg", IsPrimary: true})
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	if _, err = svc.AddImage(ctx, sc, offer.ID, AddImageInput{Path: "madu/2.jpg", IsPrimary: true}); err != nil {
		t.Fatalf("add second: %v", err)
	}
	detail, err := svc.SetPrimaryImage(ctx, sc, offer.ID, first.Images[0].ID)
	if err != nil {
		t.Fatalf("set primary: %v", err)
	}

	primaries := 0
	for _, img := range detail.Images {
		if img.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		t.Errorf("got %d primary images, want exactly 1", primaries)
	}
}
