package models

import (
	"time"

	"github.com/google/uuid"
)

// ExternalLink is a short link keyed by the unique (subdomain, slug) pair.
type ExternalLink struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VillageID  *uuid.UUID `gorm:"column:village_id;type:uuid;index" json:"village_id,omitempty"`
	Subdomain  string     `gorm:"column:subdomain;not null;index:idx_external_links_subdomain_slug,unique" json:"subdomain"`
	Slug       string     `gorm:"column:slug;not null;index:idx_external_links_subdomain_slug,unique" json:"slug"`
	TargetURL  string     `gorm:"column:target_url;not null" json:"target_url"`
	Label      *string    `gorm:"column:label" json:"label,omitempty"`
	IsActive   bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	ClickCount int64      `gorm:"column:click_count;not null;default:0" json:"click_count"`
	ExpiresAt  *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// LinkClick is a best-effort access-log entry for a short-link resolution.
type LinkClick struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LinkID    uuid.UUID `gorm:"column:link_id;type:uuid;not null;index" json:"link_id"`
	UserAgent *string   `gorm:"column:user_agent" json:"user_agent,omitempty"`
	IPAddress *string   `gorm:"column:ip_address" json:"ip_address,omitempty"`
	Referer   *string   `gorm:"column:referer" json:"referer,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
