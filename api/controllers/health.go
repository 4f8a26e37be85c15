package controllers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	"github.com/andriansp/smartdesa-backend/api/responses"
	"github.com/andriansp/smartdesa-backend/pkg/config"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
)

// HealthPinger is the dependency surface the readiness probe checks.
type HealthPinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SmartDesa-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady answers GET /api/health: the app is ready only when the
// database and cache respond and the derivative cache dir is writable.
func HealthReady(cfg *config.Config, logg *logger.Logger, database, cache HealthPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		var err error
		checks := map[string]string{"database": "ok", "cache": "ok", "storage": "ok"}
		if database != nil {
			if pingErr := database.Ping(ctx); pingErr != nil {
				checks["database"] = "down"
				err = multierr.Append(err, pingErr)
			}
		}
		if cache != nil {
			if pingErr := cache.Ping(ctx); pingErr != nil {
				checks["cache"] = "down"
				err = multierr.Append(err, pingErr)
			}
		}
		if storageErr := probeStorage(cfg.Media.CacheDir); storageErr != nil {
			checks["storage"] = "down"
			err = multierr.Append(err, storageErr)
		}

		w.Header().Set("X-SmartDesa-Env", cfg.App.Env)
		if err != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "health check failed").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

// probeStorage writes and removes a marker file in the derivative cache dir.
func probeStorage(dir string) error {
	if dir == "" {
		return fmt.Errorf("media cache dir not configured")
	}
	probe := filepath.Join(dir, ".health")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("media cache dir not writable: %w", err)
	}
	return os.Remove(probe)
}
