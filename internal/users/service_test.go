package users

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/andriansp/smartdesa-backend/pkg/config"
	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

type stubUserRepo struct {
	byEmail     map[string]*models.User
	byID        map[uuid.UUID]*models.User
	communities map[uuid.UUID]uuid.UUID // community -> village
	smes        map[uuid.UUID]uuid.UUID // sme -> community
	lastLogin   *uuid.UUID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail:     map[string]*models.User{},
		byID:        map[uuid.UUID]*models.User{},
		communities: map[uuid.UUID]uuid.UUID{},
		smes:        map[uuid.UUID]uuid.UUID{},
	}
}

func (r *stubUserRepo) FindActiveByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok || !u.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (r *stubUserRepo) FindByIDScoped(_ context.Context, _ scope.Scope, id uuid.UUID) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (r *stubUserRepo) ListScoped(_ context.Context, _ scope.Scope, _ pagination.Params) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *models.User) error {
	u.ID = uuid.New()
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, u *models.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *stubUserRepo) StampLastLogin(_ context.Context, id uuid.UUID) error {
	r.lastLogin = &id
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) CommunityBelongsToVillage(_ context.Context, communityID, villageID uuid.UUID) (bool, error) {
	return r.communities[communityID] == villageID, nil
}

func (r *stubUserRepo) SmeBelongsToCommunity(_ context.Context, smeID, communityID uuid.UUID) (bool, error) {
	return r.smes[smeID] == communityID, nil
}

func newUserService(t *testing.T, repo userRepository) Service {
	t.Helper()
	svc, err := NewService(repo, config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "smartdesa-test",
		ExpirationMinutes: 60,
	}, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedAccount(t *testing.T, repo *stubUserRepo, email, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Admin Desa",
		Email:        email,
		PasswordHash: string(hash),
		Role:         enums.UserRoleSuperAdmin,
		IsActive:     true,
	}
	repo.byEmail[email] = user
	repo.byID[user.ID] = user
	return user
}

func TestLoginIssuesTokenAndStampsLastLogin(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedAccount(t, repo, "admin@desa.id", "rahasia-desa")
	svc := newUserService(t, repo)

	result, err := svc.Login(context.Background(), LoginInput{Email: "Admin@Desa.id", Password: "rahasia-desa"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" || strings.Count(result.Token, ".") != 2 {
		t.Errorf("got token %q, want a JWT", result.Token)
	}
	if result.User.Email != "admin@desa.id" {
		t.Errorf("got email %q", result.User.Email)
	}
	if repo.lastLogin == nil || *repo.lastLogin != seeded.ID {
		t.Error("login must stamp last_login_at")
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	repo := newStubUserRepo()
	seedAccount(t, repo, "admin@desa.id", "rahasia-desa")
	svc := newUserService(t, repo)

	_, err := svc.Login(context.Background(), LoginInput{Email: "admin@desa.id", Password: "salah"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("got %v, want unauthorized", err)
	}
	if repo.lastLogin != nil {
		t.Error("failed login must not stamp last_login_at")
	}
}

func TestLoginUnknownEmailSameAnswer(t *testing.T) {
	svc := newUserService(t, newStubUserRepo())

	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@desa.id", Password: "apa-saja"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("got %v, want unauthorized", err)
	}
}

func TestCreateScopeShapeEnforced(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo)
	sc := scope.Scope{Role: enums.UserRoleSuperAdmin}
	villageID := uuid.New()

	cases := []struct {
		name  string
		input CreateUserInput
	}{
		{"village_admin without village", CreateUserInput{
			Name: "A", Email: "a@desa.id", Password: "password-1", Role: "village_admin",
		}},
		{"super_admin with scope", CreateUserInput{
			Name: "B", Email: "b@desa.id", Password: "password-1", Role: "super_admin", VillageID: &villageID,
		}},
		{"community_admin without community", CreateUserInput{
			Name: "C", Email: "c@desa.id", Password: "password-1", Role: "community_admin", VillageID: &villageID,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), sc, tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("got %v, want validation error", err)
			}
		})
	}
}

func TestCreateCommunityMustBelongToVillage(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo)
	villageID := uuid.New()
	communityID := uuid.New()
	repo.communities[communityID] = uuid.New() // sits under a different village

	_, err := svc.Create(context.Background(), scope.Scope{Role: enums.UserRoleSuperAdmin}, CreateUserInput{
		Name: "Pengurus", Email: "pengurus@desa.id", Password: "password-1",
		Role: "community_admin", VillageID: &villageID, CommunityID: &communityID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("got %v, want validation error for broken FK chain", err)
	}
}

func TestVillageAdminCannotCreatePeer(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo)
	villageID := uuid.New()

	_, err := svc.Create(context.Background(), scope.Scope{
		Role:      enums.UserRoleVillageAdmin,
		VillageID: &villageID,
	}, CreateUserInput{
		Name: "Peer", Email: "peer@desa.id", Password: "password-1",
		Role: "village_admin", VillageID: &villageID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("got %v, want forbidden", err)
	}
}

func TestVillageAdminCreatesCommunityAdminInOwnVillage(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(t, repo)
	villageID := uuid.New()
	communityID := uuid.New()
	repo.communities[communityID] = villageID

	dto, err := svc.Create(context.Background(), scope.Scope{
		Role:      enums.UserRoleVillageAdmin,
		VillageID: &villageID,
	}, CreateUserInput{
		Name: "Pengurus", Email: "pengurus@desa.id", Password: "password-1",
		Role: "community_admin", VillageID: &villageID, CommunityID: &communityID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Role != "community_admin" || !dto.IsActive {
		t.Errorf("unexpected account: %+v", dto)
	}
	if repo.byEmail["pengurus@desa.id"].PasswordHash == "password-1" {
		t.Error("password must be stored hashed")
	}
}
