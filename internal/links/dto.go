package links

import (
	"time"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/google/uuid"
)

// CreateLinkInput captures the fields accepted when minting a short link.
// Subdomain and slug are optional; missing values are generated.
type CreateLinkInput struct {
	URL       string     `json:"url" validate:"required,url"`
	Label     *string    `json:"label,omitempty"`
	Subdomain string     `json:"subdomain,omitempty"`
	Slug      string     `json:"slug,omitempty"`
	VillageID *uuid.UUID `json:"village_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ClickMeta carries the request attributes recorded with each resolution.
type ClickMeta struct {
	UserAgent string
	IPAddress string
	Referer   string
}

// LinkDTO is the public shape of a short link.
type LinkDTO struct {
	ID         uuid.UUID  `json:"id"`
	Subdomain  string     `json:"subdomain"`
	Slug       string     `json:"slug"`
	ShortURL   string     `json:"short_url"`
	TargetURL  string     `json:"target_url"`
	Label      *string    `json:"label,omitempty"`
	IsActive   bool       `json:"is_active"`
	ClickCount int64      `json:"click_count"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// LinkStatsDTO summarizes a link's usage.
type LinkStatsDTO struct {
	Subdomain   string     `json:"subdomain"`
	Slug        string     `json:"slug"`
	TargetURL   string     `json:"target_url"`
	IsActive    bool       `json:"is_active"`
	ClickCount  int64      `json:"click_count"`
	RecentCount int64      `json:"recent_count"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FromModel projects a link row into its DTO, attaching the public short URL.
func FromModel(link *models.ExternalLink, baseDomain string) *LinkDTO {
	if link == nil {
		return nil
	}
	return &LinkDTO{
		ID:         link.ID,
		Subdomain:  link.Subdomain,
		Slug:       link.Slug,
		ShortURL:   "https://" + link.Subdomain + "." + baseDomain + "/l/" + link.Slug,
		TargetURL:  link.TargetURL,
		Label:      link.Label,
		IsActive:   link.IsActive,
		ClickCount: link.ClickCount,
		ExpiresAt:  link.ExpiresAt,
		CreatedAt:  link.CreatedAt,
	}
}
