package villages

import (
	"time"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

// CreateVillageInput captures the fields for a new village tenant.
type CreateVillageInput struct {
	Name          string                 `json:"name" validate:"required,max=160"`
	Slug          string                 `json:"slug,omitempty"`
	CustomDomain  *string                `json:"custom_domain,omitempty"`
	Description   *string                `json:"description,omitempty"`
	Latitude      *float64               `json:"latitude,omitempty"`
	Longitude     *float64               `json:"longitude,omitempty"`
	Settings      *types.VillageSettings `json:"settings,omitempty"`
	EstablishedAt *time.Time             `json:"established_at,omitempty"`
}

// UpdateVillageInput captures the mutable village fields.
type UpdateVillageInput struct {
	Name          *string                `json:"name,omitempty"`
	CustomDomain  *string                `json:"custom_domain,omitempty"`
	Description   *string                `json:"description,omitempty"`
	Latitude      *float64               `json:"latitude,omitempty"`
	Longitude     *float64               `json:"longitude,omitempty"`
	IsActive      *bool                  `json:"is_active,omitempty"`
	Settings      *types.VillageSettings `json:"settings,omitempty"`
	EstablishedAt *time.Time             `json:"established_at,omitempty"`
}

// VillageDTO is the public shape of a village tenant.
type VillageDTO struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Slug          string                `json:"slug"`
	CustomDomain  *string               `json:"custom_domain,omitempty"`
	Description   *string               `json:"description,omitempty"`
	Latitude      *float64              `json:"latitude,omitempty"`
	Longitude     *float64              `json:"longitude,omitempty"`
	IsActive      bool                  `json:"is_active"`
	Settings      types.VillageSettings `json:"settings"`
	EstablishedAt *time.Time            `json:"established_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// FromModel projects a village row into its DTO.
func FromModel(village *models.Village) *VillageDTO {
	if village == nil {
		return nil
	}
	return &VillageDTO{
		ID:            village.ID,
		Name:          village.Name,
		Slug:          village.Slug,
		CustomDomain:  village.CustomDomain,
		Description:   village.Description,
		Latitude:      village.Latitude,
		Longitude:     village.Longitude,
		IsActive:      village.IsActive,
		Settings:      village.Settings,
		EstablishedAt: village.EstablishedAt,
		CreatedAt:     village.CreatedAt,
	}
}
