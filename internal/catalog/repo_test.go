package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

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

func renderSQL(t *testing.T, q *gorm.DB) (string, []any) {
	t.Helper()
	var rows []map[string]any
	stmt := q.Table("offers").Find(&rows).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestApplyFiltersCombinesDimensionsWithAND(t *testing.T) {
	min := decimal.NewFromInt(10000)
	query := ListOffersQuery{
		CategorySlug: "kerajinan-tangan",
		MinPrice:     &min,
		Search:       "anyaman",
	}

	sql, vars := renderSQL(t, applyFilters(dryRunDB(t), query))

	for _, clause := range []string{
		"offers.category_id IN (SELECT id FROM categories WHERE slug = ?)",
		"offers.price >= ?",
		"offers.name ILIKE ?",
	} {
		if !strings.Contains(sql, clause) {
			t.Errorf("missing clause %q in %s", clause, sql)
		}
	}
	if strings.Contains(sql, " OR offers.price") || strings.Contains(sql, " OR offers.category_id") {
		t.Errorf("filter dimensions must combine with AND, got %s", sql)
	}
	// category slug, min price, then four search patterns
	if len(vars) != 6 {
		t.Errorf("got %d bound vars, want 6: %v", len(vars), vars)
	}
}

func TestApplyFiltersSearchIsNestedORGroup(t *testing.T) {
	sql, vars := renderSQL(t, applyFilters(dryRunDB(t), ListOffersQuery{Search: "kopi"}))

	wantClauses := []string{
		"offers.name ILIKE ?",
		"offers.description ILIKE ?",
		"offers.short_description ILIKE ?",
		"ot.name ILIKE ?",
	}
	for _, clause := range wantClauses {
		if !strings.Contains(sql, clause) {
			t.Errorf("missing search clause %q in %s", clause, sql)
		}
	}
	for _, v := range vars {
		if v != "%kopi%" {
			t.Errorf("every search var must be the wrapped pattern, got %v", v)
		}
	}
}

func TestApplyFiltersVillageResolvesBothOwnerChains(t *testing.T) {
	sql, vars := renderSQL(t, applyFilters(dryRunDB(t), ListOffersQuery{VillageSlug: "bayan"}))

	if !strings.Contains(sql, "offers.sme_id IN") || !strings.Contains(sql, "offers.place_id IN") {
		t.Fatalf("village filter must cover SME and place chains, got %s", sql)
	}
	if len(vars) != 2 || vars[0] != "bayan" || vars[1] != "bayan" {
		t.Errorf("got vars %v, want the village slug twice", vars)
	}
}

func TestApplyFiltersTagsUseAssignmentSubquery(t *testing.T) {
	sql, _ := renderSQL(t, applyFilters(dryRunDB(t), ListOffersQuery{Tags: []string{"organik", "lokal"}}))

	if !strings.Contains(sql, "offer_tag_assignments") || !strings.Contains(sql, "ot.slug IN") {
		t.Fatalf("tag filter must go through the assignment table, got %s", sql)
	}
}

func TestApplyFiltersNoInputAddsNoConditions(t *testing.T) {
	sql, vars := renderSQL(t, applyFilters(dryRunDB(t), ListOffersQuery{}))

	if strings.Contains(sql, "WHERE") {
		t.Fatalf("empty query must add no conditions, got %s", sql)
	}
	if len(vars) != 0 {
		t.Errorf("got unexpected bound vars %v", vars)
	}
}

func TestOrderClauseFallsBackToLatest(t *testing.T) {
	cases := map[string]string{
		"name":       "offers.name ASC",
		"price":      "offers.price ASC",
		"view_count": "offers.view_count DESC",
		"created_at": "offers.created_at DESC",
		"sneaky":     "offers.created_at DESC",
		"":           "offers.created_at DESC",
	}
	for input, want := range cases {
		if got := orderClause(enums.ParseOfferSort(input)); got != want {
			t.Errorf("sort %q: got %q, want %q", input, got, want)
		}
	}
}
