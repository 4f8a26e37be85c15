package scope

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/andriansp/smartdesa-backend/pkg/db/models"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func renderSQL(t *testing.T, q *gorm.DB, table string) (string, []any) {
	t.Helper()
	var rows []map[string]any
	stmt := q.Table(table).Find(&rows).Statement
	return stmt.SQL.String(), stmt.Vars
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

func TestSuperAdminUnrestricted(t *testing.T) {
	db := dryRunDB(t)
	s := Scope{Role: enums.UserRoleSuperAdmin}

	sql, _ := renderSQL(t, s.Smes(db), "smes")
	if strings.Contains(sql, "WHERE") {
		t.Fatalf("super admin query must not be filtered: %s", sql)
	}
}

func TestUnknownRoleDeniedEverywhere(t *testing.T) {
	villageID := uuid.New()
	s := Scope{Role: enums.UserRole("intern"), VillageID: ptr(villageID)}

	apply := map[string]func(*gorm.DB) *gorm.DB{
		"villages":       s.Villages,
		"communities":    s.Communities,
		"smes":           s.Smes,
		"places":         s.Places,
		"categories":     s.Categories,
		"offers":         s.Offers,
		"articles":       s.Articles,
		"images":         s.Images,
		"media_assets":   s.MediaAssets,
		"external_links": s.Links,
		"users":          s.Users,
	}
	for table, fn := range apply {
		sql, _ := renderSQL(t, fn(dryRunDB(t)), table)
		if !strings.Contains(sql, "1 = 0") {
			t.Fatalf("table %s: unknown role must yield empty set, got %s", table, sql)
		}
	}
}

func TestMissingScopeIDFailsClosed(t *testing.T) {
	s := Scope{Role: enums.UserRoleVillageAdmin} // no village_id bound

	sql, _ := renderSQL(t, s.Offers(dryRunDB(t)), "offers")
	if !strings.Contains(sql, "1 = 0") {
		t.Fatalf("missing scope id must yield empty set, got %s", sql)
	}

	sql, _ = renderSQL(t, s.Users(dryRunDB(t)), "users")
	if !strings.Contains(sql, "1 = 0") {
		t.Fatalf("missing scope id must yield empty set, got %s", sql)
	}
}

func TestVillageAdminSmesScopedThroughCommunities(t *testing.T) {
	villageID := uuid.New()
	s := Scope{Role: enums.UserRoleVillageAdmin, VillageID: ptr(villageID)}

	sql, vars := renderSQL(t, s.Smes(dryRunDB(t)), "smes")
	if !strings.Contains(sql, "smes.community_id IN (SELECT id FROM communities WHERE village_id = ?)") {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(vars) != 1 || vars[0] != villageID {
		t.Fatalf("unexpected vars: %v", vars)
	}
}

func TestVillageAdminOffersCoverBothOwners(t *testing.T) {
	villageID := uuid.New()
	s := Scope{Role: enums.UserRoleVillageAdmin, VillageID: ptr(villageID)}

	sql, vars := renderSQL(t, s.Offers(dryRunDB(t)), "offers")
	if !strings.Contains(sql, "offers.sme_id IN") || !strings.Contains(sql, "offers.place_id IN") {
		t.Fatalf("offer scoping must cover sme and place owners: %s", sql)
	}
	if len(vars) != 2 {
		t.Fatalf("expected village id bound twice, got %v", vars)
	}
}

func TestCommunityAdminScopes(t *testing.T) {
	communityID := uuid.New()
	s := Scope{Role: enums.UserRoleCommunityAdmin, CommunityID: ptr(communityID)}

	sql, vars := renderSQL(t, s.Smes(dryRunDB(t)), "smes")
	if !strings.Contains(sql, "smes.community_id = ?") || vars[0] != communityID {
		t.Fatalf("unexpected sme scoping: %s %v", sql, vars)
	}

	sql, vars = renderSQL(t, s.Users(dryRunDB(t)), "users")
	if !strings.Contains(sql, "users.community_id = ? AND users.role = ?") {
		t.Fatalf("community admin user listing must pin role: %s", sql)
	}
	if vars[1] != enums.UserRoleSmeAdmin {
		t.Fatalf("expected sme_admin role bound, got %v", vars[1])
	}
}

func TestSmeAdminSeesOnlyOwnOffers(t *testing.T) {
	smeID := uuid.New()
	s := Scope{Role: enums.UserRoleSmeAdmin, SmeID: ptr(smeID)}

	sql, vars := renderSQL(t, s.Offers(dryRunDB(t)), "offers")
	if !strings.Contains(sql, "offers.sme_id = ?") || vars[0] != smeID {
		t.Fatalf("unexpected offer scoping: %s %v", sql, vars)
	}

	sql, _ = renderSQL(t, s.Users(dryRunDB(t)), "users")
	if !strings.Contains(sql, "1 = 0") {
		t.Fatalf("sme admin must not list users: %s", sql)
	}
}

func TestSmeAdminMediaUnionsSharedScopes(t *testing.T) {
	villageID := uuid.New()
	communityID := uuid.New()
	smeID := uuid.New()
	s := Scope{
		Role:        enums.UserRoleSmeAdmin,
		VillageID:   ptr(villageID),
		CommunityID: ptr(communityID),
		SmeID:       ptr(smeID),
	}

	sql, vars := renderSQL(t, s.MediaAssets(dryRunDB(t)), "media_assets")
	for _, clause := range []string{
		"media_assets.sme_id = ?",
		"media_assets.village_id = ?",
		"media_assets.community_id = ?",
		" OR ",
	} {
		if !strings.Contains(sql, clause) {
			t.Fatalf("media scoping missing %q: %s", clause, sql)
		}
	}
	if len(vars) != 3 {
		t.Fatalf("expected three bound ids, got %v", vars)
	}
}

func TestSmeAdminMediaWithoutSharedScopes(t *testing.T) {
	smeID := uuid.New()
	s := Scope{Role: enums.UserRoleSmeAdmin, SmeID: ptr(smeID)}

	sql, vars := renderSQL(t, s.MediaAssets(dryRunDB(t)), "media_assets")
	if strings.Contains(sql, "village_id") || strings.Contains(sql, "community_id") {
		t.Fatalf("unbound shared scopes must not appear: %s", sql)
	}
	if len(vars) != 1 || vars[0] != smeID {
		t.Fatalf("unexpected vars: %v", vars)
	}
}

func TestFromUser(t *testing.T) {
	villageID := uuid.New()
	user := &models.User{Role: enums.UserRoleVillageAdmin, VillageID: ptr(villageID)}

	s := FromUser(user)
	if s.Role != enums.UserRoleVillageAdmin || s.VillageID == nil || *s.VillageID != villageID {
		t.Fatalf("unexpected scope: %+v", s)
	}

	empty := FromUser(nil)
	if empty.Role != "" || empty.IsSuperAdmin() {
		t.Fatalf("nil user must produce empty scope: %+v", empty)
	}
}
