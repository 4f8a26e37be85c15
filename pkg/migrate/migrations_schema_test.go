package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitSchemaContainsCoreConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_init_schema.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no init schema migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE villages",
		"CREATE TABLE external_links",
		"CONSTRAINT external_links_subdomain_slug_key UNIQUE (subdomain, slug)",
		"CONSTRAINT offers_single_owner CHECK (num_nonnulls(sme_id, place_id) = 1)",
		"CHECK (role IN ('super_admin', 'village_admin', 'community_admin', 'sme_admin'))",
		"CREATE UNIQUE INDEX idx_offer_images_primary ON offer_images(offer_id) WHERE is_primary",
		"DROP TABLE IF EXISTS villages",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
