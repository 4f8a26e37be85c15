package villages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/db"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
	"github.com/andriansp/smartdesa-backend/pkg/slug"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

const uniqueConstraintVillageSlug = "villages_slug_key"

type villageRepository interface {
	ListActive(ctx context.Context, params pagination.Params) ([]models.Village, int64, error)
	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.Village, int64, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.Village, error)
	FindByHost(ctx context.Context, host, subdomain string) (*models.Village, error)
	FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Village, error)
	Create(ctx context.Context, village *models.Village) error
	Update(ctx context.Context, village *models.Village) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ListResult bundles one village page with its pagination block.
type ListResult struct {
	Villages   []VillageDTO
	Pagination types.Pagination
}

// Service exposes village directory and admin operations.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
	GetBySlug(ctx context.Context, villageSlug string) (*VillageDTO, error)
	ResolveHost(ctx context.Context, host, baseDomain string) (*VillageDTO, error)

	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error)
	Create(ctx context.Context, sc scope.Scope, input CreateVillageInput) (*VillageDTO, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateVillageInput) (*VillageDTO, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
}

type service struct {
	repo villageRepository
}

// NewService builds a village service with the provided repository.
func NewService(repo villageRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("village repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	villages, total, err := s.repo.ListActive(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list villages")
	}
	return buildListResult(villages, total, params), nil
}

func (s *service) GetBySlug(ctx context.Context, villageSlug string) (*VillageDTO, error) {
	village, err := s.repo.FindActiveBySlug(ctx, villageSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "village not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load village")
	}
	return FromModel(village), nil
}

// ResolveHost maps an inbound hostname to a village: custom domains match
// verbatim, otherwise the first hostname label is treated as the slug.
func (s *service) ResolveHost(ctx context.Context, host, baseDomain string) (*VillageDTO, error) {
	host = strings.ToLower(strings.TrimSpace(host))
	if idx := strings.IndexByte(host, ':'); idx >= 0 {
		host = host[:idx]
	}
	subdomain := host
	if suffix := "." + baseDomain; strings.HasSuffix(host, suffix) {
		subdomain = strings.TrimSuffix(host, suffix)
	}

	village, err := s.repo.FindByHost(ctx, host, subdomain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no village for hostname")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve hostname")
	}
	return FromModel(village), nil
}

func (s *service) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	villages, total, err := s.repo.ListScoped(ctx, sc, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list villages")
	}
	return buildListResult(villages, total, params), nil
}

func (s *service) Create(ctx context.Context, sc scope.Scope, input CreateVillageInput) (*VillageDTO, error) {
	// Only the platform operator provisions tenants.
	if sc.Role != enums.UserRoleSuperAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only super admins may create villages")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	villageSlug := input.Slug
	if villageSlug == "" {
		villageSlug = slug.Make(input.Name)
	}

	village := &models.Village{
		Name:          input.Name,
		Slug:          villageSlug,
		CustomDomain:  input.CustomDomain,
		Description:   input.Description,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		IsActive:      true,
		EstablishedAt: input.EstablishedAt,
	}
	if input.Settings != nil {
		village.Settings = *input.Settings
	}

	if err := s.repo.Create(ctx, village); err != nil {
		if db.IsUniqueViolation(err, uniqueConstraintVillageSlug) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "village slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create village")
	}
	return FromModel(village), nil
}

func (s *service) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateVillageInput) (*VillageDTO, error) {
	village, err := s.loadScoped(ctx, sc, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		village.Name = *input.Name
	}
	if input.CustomDomain != nil {
		village.CustomDomain = input.CustomDomain
	}
	if input.Description != nil {
		village.Description = input.Description
	}
	if input.Latitude != nil {
		village.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		village.Longitude = input.Longitude
	}
	if input.IsActive != nil {
		// Deactivation is reserved for the operator; a village admin must
		// not be able to take down their own site accidentally.
		if sc.Role != enums.UserRoleSuperAdmin {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only super admins may change active state")
		}
		village.IsActive = *input.IsActive
	}
	if input.Settings != nil {
		village.Settings = *input.Settings
	}
	if input.EstablishedAt != nil {
		village.EstablishedAt = input.EstablishedAt
	}

	if err := s.repo.Update(ctx, village); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update village")
	}
	return FromModel(village), nil
}

func (s *service) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	if sc.Role != enums.UserRoleSuperAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only super admins may delete villages")
	}
	if _, err := s.loadScoped(ctx, sc, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete village")
	}
	return nil
}

func (s *service) loadScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.Village, error) {
	village, err := s.repo.FindByIDScoped(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "village not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load village")
	}
	return village, nil
}

func buildListResult(villages []models.Village, total int64, params pagination.Params) *ListResult {
	result := &ListResult{
		Villages:   make([]VillageDTO, 0, len(villages)),
		Pagination: params.Meta(total),
	}
	for i := range villages {
		result.Villages = append(result.Villages, *FromModel(&villages[i]))
	}
	return result
}
