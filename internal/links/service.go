package links

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/andriansp/smartdesa-backend/pkg/config"
	"github.com/andriansp/smartdesa-backend/pkg/db"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	uniqueConstraintSubdomainSlug = "external_links_subdomain_slug_key"

	slugLength      = 6
	slugAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	statsRecentDays = 7
)

type linkRepository interface {
	Create(ctx context.Context, link *models.ExternalLink) error
	FindBySubdomainSlug(ctx context.Context, subdomain, slug string) (*models.ExternalLink, error)
	IncrementClicks(ctx context.Context, id uuid.UUID) error
	LogClick(ctx context.Context, click *models.LinkClick) error
	CountClicksSince(ctx context.Context, linkID uuid.UUID, cutoff time.Time) (int64, error)
}

// Service exposes short-link operations.
type Service interface {
	Create(ctx context.Context, input CreateLinkInput) (*LinkDTO, error)
	Resolve(ctx context.Context, subdomain, slug string, meta ClickMeta) (string, error)
	Stats(ctx context.Context, subdomain, slug string) (*LinkStatsDTO, error)
}

type service struct {
	repo linkRepository
	site config.SiteConfig
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds a link service with the provided repository.
func NewService(repo linkRepository, site config.SiteConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("link repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, site: site, logg: logg, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateLinkInput) (*LinkDTO, error) {
	target := strings.TrimSpace(input.URL)
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "url must be absolute")
	}

	subdomain := strings.ToLower(strings.TrimSpace(input.Subdomain))
	if subdomain == "" {
		subdomain = s.site.LinkSubdomain
	}

	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if slug == "" {
		slug, err = randomSlug(slugLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate slug")
		}
	}

	if input.ExpiresAt != nil && input.ExpiresAt.Before(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expires_at must be in the future")
	}

	link := &models.ExternalLink{
		VillageID: input.VillageID,
		Subdomain: subdomain,
		Slug:      slug,
		TargetURL: target,
		Label:     input.Label,
		IsActive:  true,
		ExpiresAt: input.ExpiresAt,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		if db.IsUniqueViolation(err, uniqueConstraintSubdomainSlug) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "subdomain and slug combination already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create link")
	}
	return FromModel(link, s.site.BaseDomain), nil
}

func (s *service) Resolve(ctx context.Context, subdomain, slug string, meta ClickMeta) (string, error) {
	link, err := s.repo.FindBySubdomainSlug(ctx, strings.ToLower(subdomain), strings.ToLower(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "link not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load link")
	}

	if !link.IsActive {
		return "", pkgerrors.New(pkgerrors.CodeGone, "link is no longer active")
	}
	if link.ExpiresAt != nil && link.ExpiresAt.Before(s.now()) {
		return "", pkgerrors.New(pkgerrors.CodeGone, "link has expired")
	}

	if err := s.repo.IncrementClicks(ctx, link.ID); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment clicks")
	}

	// Access logging is best effort; a failed insert never blocks the redirect.
	click := &models.LinkClick{
		LinkID:    link.ID,
		UserAgent: optional(meta.UserAgent),
		IPAddress: optional(meta.IPAddress),
		Referer:   optional(meta.Referer),
	}
	if err := s.repo.LogClick(ctx, click); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "link_id", link.ID.String()), "logging link click failed")
	}

	return link.TargetURL, nil
}

func (s *service) Stats(ctx context.Context, subdomain, slug string) (*LinkStatsDTO, error) {
	link, err := s.repo.FindBySubdomainSlug(ctx, strings.ToLower(subdomain), strings.ToLower(slug))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "link not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load link")
	}

	cutoff := s.now().AddDate(0, 0, -statsRecentDays)
	recent, err := s.repo.CountClicksSince(ctx, link.ID, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count recent clicks")
	}

	return &LinkStatsDTO{
		Subdomain:   link.Subdomain,
		Slug:        link.Slug,
		TargetURL:   link.TargetURL,
		IsActive:    link.IsActive,
		ClickCount:  link.ClickCount,
		RecentCount: recent,
		ExpiresAt:   link.ExpiresAt,
		CreatedAt:   link.CreatedAt,
	}, nil
}

func randomSlug(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = slugAlphabet[int(b)%len(slugAlphabet)]
	}
	return string(buf), nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
