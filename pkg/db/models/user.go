package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/pkg/enums"
)

// User is an admin-panel account. The role plus the nullable scope FKs define
// what the user can see: a community_admin's community must belong to their
// village and an sme_admin's SME to their community (validated on write).
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"column:name;not null" json:"name"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.UserRole `gorm:"column:role;not null" json:"role"`
	VillageID    *uuid.UUID     `gorm:"column:village_id;type:uuid;index" json:"village_id,omitempty"`
	CommunityID  *uuid.UUID     `gorm:"column:community_id;type:uuid;index" json:"community_id,omitempty"`
	SmeID        *uuid.UUID     `gorm:"column:sme_id;type:uuid;index" json:"sme_id,omitempty"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
