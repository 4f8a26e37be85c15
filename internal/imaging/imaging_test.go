package imaging

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	img "github.com/disintegration/imaging"

	"github.com/andriansp/smartdesa-backend/pkg/config"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
)

func testService(t *testing.T) (Service, config.MediaConfig) {
	t.Helper()
	cfg := config.MediaConfig{
		SourceDir:      t.TempDir(),
		CacheDir:       t.TempDir(),
		MaxWidth:       1920,
		MaxHeight:      1080,
		DefaultQuality: 80,
	}
	svc, err := NewService(cfg, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, cfg
}

func writeTestImage(t *testing.T, cfg config.MediaConfig, name string, width, height int) {
	t.Helper()
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			canvas.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	full := filepath.Join(cfg.SourceDir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := img.Save(canvas, full); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func TestThumbnailCreatesAndReusesDerivative(t *testing.T) {
	svc, cfg := testService(t)
	writeTestImage(t, cfg, "gallery/balai.jpg", 800, 600)

	first, err := svc.Thumbnail(context.Background(), "gallery/balai.jpg", 200, 200, 80)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	decoded, err := img.Open(first.Path)
	if err != nil {
		t.Fatalf("open derivative: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 200 || bounds.Dy() != 200 {
		t.Errorf("got %dx%d, want 200x200", bounds.Dx(), bounds.Dy())
	}

	info, err := os.Stat(first.Path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	second, err := svc.Thumbnail(context.Background(), "gallery/balai.jpg", 200, 200, 80)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	reused, err := os.Stat(second.Path)
	if err != nil {
		t.Fatalf("stat reused: %v", err)
	}
	if second.Path != first.Path || !reused.ModTime().Equal(info.ModTime()) {
		t.Error("second request must serve the cached derivative")
	}
}

func TestOptimizedClampsOversizedRequest(t *testing.T) {
	svc, cfg := testService(t)
	writeTestImage(t, cfg, "foto.jpg", 400, 300)

	derivative, err := svc.Optimized(context.Background(), "foto.jpg", 99999, 0, 500)
	if err != nil {
		t.Fatalf("optimized: %v", err)
	}
	decoded, err := img.Open(derivative.Path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// Fit never upscales, so the clamped bound leaves the image untouched.
	if decoded.Bounds().Dx() > 1920 {
		t.Errorf("width %d exceeds the configured maximum", decoded.Bounds().Dx())
	}
}

func TestMissingSourceNotFound(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Thumbnail(context.Background(), "tidak-ada.jpg", 100, 100, 80)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestCorruptSourceNotFound(t *testing.T) {
	svc, cfg := testService(t)
	if err := os.WriteFile(filepath.Join(cfg.SourceDir, "rusak.jpg"), []byte("bukan gambar"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := svc.Optimized(context.Background(), "rusak.jpg", 0, 0, 0)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestTraversalOutsideRootNotFound(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Thumbnail(context.Background(), "../../etc/passwd", 100, 100, 80)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("got %v, want not found", err)
	}
}
