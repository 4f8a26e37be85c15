package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNKeepsExplicitValue(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://app@localhost:5432/smartdesa"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensure dsn: %v", err)
	}
	if cfg.DSN != "postgres://app@localhost:5432/smartdesa" {
		t.Fatalf("dsn overwritten: %s", cfg.DSN)
	}
}

func TestEnsureDSNBuildsFromLegacyVars(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5433,
		LegacyUser:     "smartdesa",
		LegacyPassword: "s3cret",
		LegacyName:     "smartdesa",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensure dsn: %v", err)
	}
	for _, want := range []string{"db.internal:5433", "sslmode=require", "smartdesa:s3cret@"} {
		if !strings.Contains(cfg.DSN, want) {
			t.Fatalf("dsn %q missing %q", cfg.DSN, want)
		}
	}
}

func TestEnsureDSNReportsMissingVars(t *testing.T) {
	cfg := DBConfig{LegacyHost: "db.internal"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error for missing legacy vars")
	}
	if !strings.Contains(err.Error(), EnvDBUser) || !strings.Contains(err.Error(), EnvDBName) {
		t.Fatalf("error should name missing vars: %v", err)
	}
}

func TestAppConfigEnvChecks(t *testing.T) {
	app := AppConfig{Env: "Dev"}
	if !app.IsDev() || app.IsProd() {
		t.Fatal("case-insensitive dev check failed")
	}
	app.Env = "PROD"
	if !app.IsProd() {
		t.Fatal("case-insensitive prod check failed")
	}
}
