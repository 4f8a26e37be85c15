package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits the password hash.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	VillageID   *uuid.UUID `json:"village_id,omitempty"`
	CommunityID *uuid.UUID `json:"community_id,omitempty"`
	SmeID       *uuid.UUID `json:"sme_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateUserInput captures the fields for a new admin account.
type CreateUserInput struct {
	Name        string     `json:"name" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=8"`
	Role        string     `json:"role" validate:"required"`
	VillageID   *uuid.UUID `json:"village_id,omitempty"`
	CommunityID *uuid.UUID `json:"community_id,omitempty"`
	SmeID       *uuid.UUID `json:"sme_id,omitempty"`
}

// UpdateUserInput patches an existing account. Nil fields are unchanged.
type UpdateUserInput struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// LoginInput carries admin credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the login response payload.
type LoginResult struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}

// FromModel projects a user row into its transport shape.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role.String(),
		VillageID:   u.VillageID,
		CommunityID: u.CommunityID,
		SmeID:       u.SmeID,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
