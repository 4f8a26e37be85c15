package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/auth"
	"github.com/andriansp/smartdesa-backend/pkg/config"
	"github.com/andriansp/smartdesa-backend/pkg/db"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
	"github.com/andriansp/smartdesa-backend/pkg/security"
	"github.com/andriansp/smartdesa-backend/pkg/types"
)

const uniqueConstraintEmail = "users_email_key"

type userRepository interface {
	FindActiveByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDScoped(ctx context.Context, sc scope.Scope, id uuid.UUID) (*models.User, error)
	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) ([]models.User, int64, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	StampLastLogin(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CommunityBelongsToVillage(ctx context.Context, communityID, villageID uuid.UUID) (bool, error)
	SmeBelongsToCommunity(ctx context.Context, smeID, communityID uuid.UUID) (bool, error)
}

// ListResult is one admin page of accounts.
type ListResult struct {
	Users      []*UserDTO
	Pagination types.Pagination
}

// Service exposes authentication and account administration.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)

	ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error)
	GetByID(ctx context.Context, sc scope.Scope, id uuid.UUID) (*UserDTO, error)
	Create(ctx context.Context, sc scope.Scope, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error
}

type service struct {
	repo userRepository
	jwt  config.JWTConfig
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds a user service with the provided repository.
func NewService(repo userRepository, jwt config.JWTConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, jwt: jwt, logg: logg, now: time.Now}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	user, err := s.repo.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer as a bad password so probing reveals nothing.
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	if !security.VerifyPassword(user.PasswordHash, input.Password) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := auth.MintAccessToken(s.jwt, s.now(), auth.AccessTokenPayload{
		UserID:      user.ID,
		Role:        user.Role,
		VillageID:   user.VillageID,
		CommunityID: user.CommunityID,
		SmeID:       user.SmeID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	if err := s.repo.StampLastLogin(ctx, user.ID); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "user_id", user.ID.String()), "last login stamp failed")
	}
	return &LoginResult{Token: token, User: FromModel(user)}, nil
}

func (s *service) ListScoped(ctx context.Context, sc scope.Scope, params pagination.Params) (*ListResult, error) {
	params = params.Normalize()
	rows, total, err := s.repo.ListScoped(ctx, sc, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	dtos := make([]*UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, FromModel(&rows[i]))
	}
	return &ListResult{Users: dtos, Pagination: params.Meta(total)}, nil
}

func (s *service) GetByID(ctx context.Context, sc scope.Scope, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByIDScoped(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	return FromModel(user), nil
}

// scopeShape enforces the FK triplet each role must carry. Anything extra is
// rejected too: a village_admin row with an sme_id would confuse every
// visibility query downstream.
func scopeShape(role enums.UserRole, input CreateUserInput) error {
	switch role {
	case enums.UserRoleSuperAdmin:
		if input.VillageID != nil || input.CommunityID != nil || input.SmeID != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "super_admin accounts carry no scope")
		}
	case enums.UserRoleVillageAdmin:
		if input.VillageID == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "village_admin requires village_id")
		}
		if input.CommunityID != nil || input.SmeID != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "village_admin carries only village_id")
		}
	case enums.UserRoleCommunityAdmin:
		if input.VillageID == nil || input.CommunityID == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "community_admin requires village_id and community_id")
		}
		if input.SmeID != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "community_admin carries no sme_id")
		}
	case enums.UserRoleSmeAdmin:
		if input.VillageID == nil || input.CommunityID == nil || input.SmeID == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "sme_admin requires village_id, community_id and sme_id")
		}
	}
	return nil
}

// canManage gates account administration: each role may only manage accounts
// strictly below itself and inside its own tenant.
func canManage(sc scope.Scope, role enums.UserRole, input CreateUserInput) bool {
	switch sc.Role {
	case enums.UserRoleSuperAdmin:
		return true
	case enums.UserRoleVillageAdmin:
		if role != enums.UserRoleCommunityAdmin && role != enums.UserRoleSmeAdmin {
			return false
		}
		return sc.VillageID != nil && input.VillageID != nil && *input.VillageID == *sc.VillageID
	case enums.UserRoleCommunityAdmin:
		if role != enums.UserRoleSmeAdmin {
			return false
		}
		return sc.CommunityID != nil && input.CommunityID != nil && *input.CommunityID == *sc.CommunityID
	default:
		return false
	}
}

func (s *service) Create(ctx context.Context, sc scope.Scope, input CreateUserInput) (*UserDTO, error) {
	role, err := enums.ParseUserRole(input.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown role")
	}
	if input.Name == "" || input.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and email are required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if err := scopeShape(role, input); err != nil {
		return nil, err
	}
	if !canManage(sc, role, input) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role or scope outside your authority")
	}

	// The FK chain must hold: the community sits in the named village and
	// the SME in the named community.
	if input.CommunityID != nil {
		ok, err := s.repo.CommunityBelongsToVillage(ctx, *input.CommunityID, *input.VillageID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check community")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "community does not belong to the village")
		}
	}
	if input.SmeID != nil {
		ok, err := s.repo.SmeBelongsToCommunity(ctx, *input.SmeID, *input.CommunityID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sme")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sme does not belong to the community")
		}
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         role,
		VillageID:    input.VillageID,
		CommunityID:  input.CommunityID,
		SmeID:        input.SmeID,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, uniqueConstraintEmail) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, sc scope.Scope, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.repo.FindByIDScoped(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
		}
		hash, err := security.HashPassword(*input.Password)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return FromModel(user), nil
}

func (s *service) Delete(ctx context.Context, sc scope.Scope, id uuid.UUID) error {
	user, err := s.repo.FindByIDScoped(ctx, sc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}
