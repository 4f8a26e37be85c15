package imaging

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/andriansp/smartdesa-backend/pkg/config"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
)

const minQuality = 10

// Derivative is a resolved variant ready to stream to the client.
type Derivative struct {
	Path        string
	ContentType string
}

// Service serves resized image variants cached on disk. Every derivative is
// keyed by a hash of the source path plus the clamped parameters, so repeat
// requests hit the cache file directly.
type Service interface {
	Thumbnail(ctx context.Context, sourcePath string, width, height, quality int) (*Derivative, error)
	Optimized(ctx context.Context, sourcePath string, width, height, quality int) (*Derivative, error)
}

type service struct {
	cfg  config.MediaConfig
	logg *logger.Logger
}

// NewService builds an imaging service over the configured media directories.
func NewService(cfg config.MediaConfig, logg *logger.Logger) (Service, error) {
	if cfg.SourceDir == "" || cfg.CacheDir == "" {
		return nil, fmt.Errorf("media source and cache directories required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &service{cfg: cfg, logg: logg}, nil
}

// Thumbnail fills the requested box, cropping to keep the aspect ratio.
func (s *service) Thumbnail(ctx context.Context, sourcePath string, width, height, quality int) (*Derivative, error) {
	width, height, quality = s.clamp(width, height, quality)
	if width == 0 {
		width = 300
	}
	if height == 0 {
		height = 300
	}
	return s.derive(ctx, sourcePath, "thumb", width, height, quality, func(src image.Image) image.Image {
		return imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)
	})
}

// Optimized recompresses the source, shrinking only when a bound is given.
// Zero width and height keep the original dimensions.
func (s *service) Optimized(ctx context.Context, sourcePath string, width, height, quality int) (*Derivative, error) {
	width, height, quality = s.clamp(width, height, quality)
	return s.derive(ctx, sourcePath, "opt", width, height, quality, func(src image.Image) image.Image {
		if width == 0 && height == 0 {
			return src
		}
		return imaging.Fit(src, boundOr(width, s.cfg.MaxWidth), boundOr(height, s.cfg.MaxHeight), imaging.Lanczos)
	})
}

// clamp forces client parameters into the configured safe ranges. Zero stays
// zero so callers can distinguish "unset" from "tiny".
func (s *service) clamp(width, height, quality int) (int, int, int) {
	if width < 0 {
		width = 0
	}
	if width > s.cfg.MaxWidth {
		width = s.cfg.MaxWidth
	}
	if height < 0 {
		height = 0
	}
	if height > s.cfg.MaxHeight {
		height = s.cfg.MaxHeight
	}
	if quality <= 0 {
		quality = s.cfg.DefaultQuality
	}
	if quality < minQuality {
		quality = minQuality
	}
	if quality > 100 {
		quality = 100
	}
	return width, height, quality
}

func (s *service) derive(ctx context.Context, sourcePath, variant string, width, height, quality int, transform func(image.Image) image.Image) (*Derivative, error) {
	cleaned, err := s.resolveSource(sourcePath)
	if err != nil {
		return nil, err
	}

	cachePath := filepath.Join(s.cfg.CacheDir, s.cacheName(sourcePath, variant, width, height, quality))
	if _, err := os.Stat(cachePath); err == nil {
		return &Derivative{Path: cachePath, ContentType: "image/jpeg"}, nil
	}

	src, err := imaging.Open(cleaned, imaging.AutoOrientation(true))
	if err != nil {
		// Unreadable and undecodable sources answer the same as missing
		// ones; a broken upload is not the client's business.
		s.logg.Warn(s.logg.WithField(ctx, "path", sourcePath), "image decode failed")
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
	}

	result := transform(src)

	tmp, err := os.CreateTemp(s.cfg.CacheDir, "derive-*.tmp")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create derivative")
	}
	tmpName := tmp.Name()
	encodeErr := imaging.Encode(tmp, result, imaging.JPEG, imaging.JPEGQuality(quality))
	closeErr := tmp.Close()
	if encodeErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)
		s.logg.Warn(s.logg.WithField(ctx, "path", sourcePath), "image encode failed")
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
	}
	// Rename keeps the cache free of partial files under concurrent misses.
	if err := os.Rename(tmpName, cachePath); err != nil {
		_ = os.Remove(tmpName)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store derivative")
	}

	return &Derivative{Path: cachePath, ContentType: "image/jpeg"}, nil
}

// resolveSource maps the request path into the media root and rejects
// traversal out of it.
func (s *service) resolveSource(sourcePath string) (string, error) {
	cleaned := filepath.Clean("/" + sourcePath)
	full := filepath.Join(s.cfg.SourceDir, cleaned)
	root := filepath.Clean(s.cfg.SourceDir) + string(os.PathSeparator)
	if !strings.HasPrefix(full, root) {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "image not found")
	}
	return full, nil
}

func (s *service) cacheName(sourcePath, variant string, width, height, quality int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d|%d|%d", sourcePath, variant, width, height, quality)))
	return hex.EncodeToString(sum[:]) + ".jpg"
}

func boundOr(value, max int) int {
	if value == 0 {
		return max
	}
	return value
}
