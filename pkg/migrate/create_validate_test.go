package migrate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andriansp/smartdesa-backend/pkg/migrate"
)

func TestCreateSQLMigrationWritesGooseTemplate(t *testing.T) {
	dir := t.TempDir()

	path, err := migrate.CreateSQLMigration(dir, "Add Offer Tags!")
	require.NoError(t, err)

	base := filepath.Base(path)
	assert.Regexp(t, `^\d{14}_add_offer_tags\.sql$`, base)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "-- +goose Down")
}

func TestCreateSQLMigrationRejectsEmptyName(t *testing.T) {
	_, err := migrate.CreateSQLMigration(t.TempDir(), "!!!")
	assert.Error(t, err)
}

func TestValidateDirFlagsBadFilename(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "not_versioned.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))

	err := migrate.ValidateDir(dir)
	assert.ErrorContains(t, err, "invalid migration filename")
}

func TestValidateDirFlagsMissingDownSection(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250301000002_add_column.sql"), []byte("-- +goose Up\n"), 0o644))

	err := migrate.ValidateDir(dir)
	assert.ErrorContains(t, err, "missing")
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, migrate.ValidateDir("migrations"))
}
