package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/pkg/enums"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

// MediaAsset is a video or audio asset scoped like Image, with a context enum
// controlling where on the site it plays and typed playback settings.
type MediaAsset struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VillageID   uuid.UUID              `gorm:"column:village_id;type:uuid;not null;index" json:"village_id"`
	CommunityID *uuid.UUID             `gorm:"column:community_id;type:uuid;index" json:"community_id,omitempty"`
	SmeID       *uuid.UUID             `gorm:"column:sme_id;type:uuid;index" json:"sme_id,omitempty"`
	PlaceID     *uuid.UUID             `gorm:"column:place_id;type:uuid;index" json:"place_id,omitempty"`
	Title       string                 `gorm:"column:title;not null" json:"title"`
	Kind        enums.MediaKind        `gorm:"column:kind;not null" json:"kind"`
	Context     enums.MediaContext     `gorm:"column:context;not null;default:'gallery'" json:"context"`
	Path        string                 `gorm:"column:path;not null" json:"path"`
	Playback    types.PlaybackSettings `gorm:"column:playback;type:jsonb" json:"playback"`
	IsActive    bool                   `gorm:"column:is_active;not null;default:true" json:"is_active"`
	SortOrder   int                    `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
