package galleries

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/redis"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

type fakeCache struct {
	entries map[string]string
	gets    int
	forgets []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.gets++
	value, ok := c.entries[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		c.entries[key] = string(v)
	case string:
		c.entries[key] = v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		c.entries[key] = string(raw)
	}
	return nil
}

func (c *fakeCache) ForgetPattern(_ context.Context, pattern string) error {
	c.forgets = append(c.forgets, pattern)
	for key := range c.entries {
		if strings.HasPrefix(key, strings.TrimSuffix(pattern, "*")) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *fakeCache) CacheKey(parts ...string) string {
	return "sd:cache:" + strings.Join(parts, ":")
}

type stubGalleryRepo struct {
	images    []models.Image
	media     []models.MediaAsset
	listCalls int
}

func (r *stubGalleryRepo) ListVillageImages(_ context.Context, _ uuid.UUID) ([]models.Image, error) {
	r.listCalls++
	return r.images, nil
}

func (r *stubGalleryRepo) ListVillageMedia(_ context.Context, _ uuid.UUID) ([]models.MediaAsset, error) {
	return r.media, nil
}

func (r *stubGalleryRepo) ListImagesScoped(_ context.Context, _ scope.Scope, _ pagination.Params) ([]models.Image, int64, error) {
	return r.images, int64(len(r.images)), nil
}

func (r *stubGalleryRepo) ListMediaScoped(_ context.Context, _ scope.Scope, _ pagination.Params) ([]models.MediaAsset, int64, error) {
	return r.media, int64(len(r.media)), nil
}

func (r *stubGalleryRepo) CreateImage(_ context.Context, image *models.Image) error {
	image.ID = uuid.New()
	r.images = append(r.images, *image)
	return nil
}

func (r *stubGalleryRepo) CreateMedia(_ context.Context, media *models.MediaAsset) error {
	media.ID = uuid.New()
	r.media = append(r.media, *media)
	return nil
}

func (r *stubGalleryRepo) DeleteImageScoped(_ context.Context, _ scope.Scope, id uuid.UUID) (int64, error) {
	for i, img := range r.images {
		if img.ID == id {
			r.images = append(r.images[:i], r.images[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubGalleryRepo) DeleteMediaScoped(_ context.Context, _ scope.Scope, id uuid.UUID) (int64, error) {
	for i, m := range r.media {
		if m.ID == id {
			r.media = append(r.media[:i], r.media[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func newGalleryService(t *testing.T, repo galleryRepository, cache redis.Cache) Service {
	t.Helper()
	svc, err := NewService(repo, cache, time.Minute, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestVillageGalleryServesFromCache(t *testing.T) {
	caption := "Balai desa"
	repo := &stubGalleryRepo{images: []models.Image{{ID: uuid.New(), Path: "gallery/balai.jpg", Caption: &caption}}}
	cache := newFakeCache()
	svc := newGalleryService(t, repo, cache)
	villageID := uuid.New()

	first, err := svc.VillageGallery(context.Background(), villageID)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if len(first.Images) != 1 {
		t.Fatalf("got %d images, want 1", len(first.Images))
	}

	second, err := svc.VillageGallery(context.Background(), villageID)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if repo.listCalls != 1 {
		t.Errorf("repo hit %d times, want 1 (second read must come from cache)", repo.listCalls)
	}
	if len(second.Images) != 1 || second.Images[0].Path != "gallery/balai.jpg" {
		t.Errorf("cached payload mismatch: %+v", second.Images)
	}
}

func TestCreateImageInvalidatesGalleryCache(t *testing.T) {
	repo := &stubGalleryRepo{}
	cache := newFakeCache()
	svc := newGalleryService(t, repo, cache)
	villageID := uuid.New()

	if _, err := svc.VillageGallery(context.Background(), villageID); err != nil {
		t.Fatalf("warm cache: %v", err)
	}

	_, err := svc.CreateImage(context.Background(), scope.Scope{Role: enums.UserRoleSuperAdmin}, CreateImageInput{
		VillageID: villageID,
		Path:      "gallery/pasar.jpg",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(cache.forgets) == 0 {
		t.Fatal("create must invalidate the village gallery cache")
	}

	fresh, err := svc.VillageGallery(context.Background(), villageID)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if len(fresh.Images) != 1 {
		t.Errorf("got %d images after invalidation, want 1", len(fresh.Images))
	}
}

func TestCreateImageForeignVillageForbidden(t *testing.T) {
	svc := newGalleryService(t, &stubGalleryRepo{}, newFakeCache())
	own := uuid.New()

	_, err := svc.CreateImage(context.Background(), scope.Scope{
		Role:      enums.UserRoleVillageAdmin,
		VillageID: &own,
	}, CreateImageInput{VillageID: uuid.New(), Path: "gallery/x.jpg"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("got %v, want forbidden", err)
	}
}

func TestCreateMediaRejectsUnknownKind(t *testing.T) {
	svc := newGalleryService(t, &stubGalleryRepo{}, newFakeCache())

	_, err := svc.CreateMedia(context.Background(), scope.Scope{Role: enums.UserRoleSuperAdmin}, CreateMediaInput{
		VillageID: uuid.New(),
		Title:     "Profil Desa",
		Kind:      "hologram",
		Path:      "media/profil.mp4",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestDeleteMissingImageNotFound(t *testing.T) {
	svc := newGalleryService(t, &stubGalleryRepo{}, newFakeCache())

	err := svc.DeleteImage(context.Background(), scope.Scope{Role: enums.UserRoleSuperAdmin}, uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}
