package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andriansp/smartdesa-backend/api/responses"
	"github.com/andriansp/smartdesa-backend/api/validators"
	"github.com/andriansp/smartdesa-backend/internal/imaging"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
)

// MediaThumbnail answers GET /media/thumbnail/{path} with a cached, cropped
// derivative of the stored image.
func MediaThumbnail(svc imaging.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		derivative, err := svc.Thumbnail(
			r.Context(),
			chi.URLParam(r, "*"),
			validators.QueryInt(r, "w", 0),
			validators.QueryInt(r, "h", 0),
			validators.QueryInt(r, "q", 0),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		serveDerivative(w, r, derivative)
	}
}

// MediaOptimized answers GET /media/optimized/{path} with a recompressed
// derivative, resized only when bounds are given.
func MediaOptimized(svc imaging.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		derivative, err := svc.Optimized(
			r.Context(),
			chi.URLParam(r, "*"),
			validators.QueryInt(r, "w", 0),
			validators.QueryInt(r, "h", 0),
			validators.QueryInt(r, "q", 0),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		serveDerivative(w, r, derivative)
	}
}

func serveDerivative(w http.ResponseWriter, r *http.Request, derivative *imaging.Derivative) {
	w.Header().Set("Content-Type", derivative.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, derivative.Path)
}
