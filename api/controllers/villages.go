package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andriansp/smartdesa-backend/api/middleware"
	"github.com/andriansp/smartdesa-backend/api/responses"
	"github.com/andriansp/smartdesa-backend/api/validators"
	"github.com/andriansp/smartdesa-backend/internal/articles"
	"github.com/andriansp/smartdesa-backend/internal/communities"
	"github.com/andriansp/smartdesa-backend/internal/galleries"
	"github.com/andriansp/smartdesa-backend/internal/places"
	"github.com/andriansp/smartdesa-backend/internal/smes"
	"github.com/andriansp/smartdesa-backend/internal/villages"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
)

func pageParams(r *http.Request) pagination.Params {
	return pagination.Params{
		Page:    validators.QueryInt(r, "page", 1),
		PerPage: validators.QueryInt(r, "per_page", 0),
	}
}

// VillageList answers GET /api/villages.
func VillageList(svc villages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.List(r.Context(), pageParams(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaginated(w, result.Villages, result.Pagination)
	}
}

// VillageDetail answers GET /api/villages/{slug}.
func VillageDetail(svc villages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		village, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, village)
	}
}

// VillageCommunities answers GET /api/villages/{slug}/communities.
func VillageCommunities(villageSvc villages.Service, communitySvc communities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		village, err := villageSvc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := communitySvc.ListByVillage(r.Context(), village.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// VillageSmes answers GET /api/villages/{slug}/smes.
func VillageSmes(villageSvc villages.Service, smeSvc smes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		village, err := villageSvc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := smeSvc.ListByVillage(r.Context(), village.ID, pageParams(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaginated(w, result.Smes, result.Pagination)
	}
}

// tenantVillage pulls the village resolved from the request host.
func tenantVillage(r *http.Request) (*villages.VillageDTO, error) {
	village, ok := middleware.VillageFrom(r.Context())
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "village not found for this host")
	}
	return village, nil
}

// TenantPlaces answers GET /api/places on a village host.
func TenantPlaces(svc places.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		village, err := tenantVillage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListByVillage(r.Context(), village.ID, r.URL.Query().Get("category"), pageParams(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaginated(w, result.Places, result.Pagination)
	}
}

// TenantPlaceDetail answers GET /api/places/{slug} on a village host.
func TenantPlaceDetail(svc places.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		village, err := tenantVillage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		place, err := svc.GetBySlug(r.Context(), village.ID, chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, place)
	}
}

// TenantSmeDetail answers GET /api/smes/{slug} on a village host.
func TenantSmeDetail(svc smes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		village, err := tenantVillage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sme, err := svc.GetBySlug(r.Context(), village.ID, chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sme)
	}
}

// TenantArticles answers GET /api/articles on a village host.
func TenantArticles(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		village, err := tenantVillage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListPublished(r.Context(), village.ID, pageParams(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaginated(w, result.Articles, result.Pagination)
	}
}

// ArticleDetail answers GET /api/articles/{slug}.
func ArticleDetail(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		article, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, article)
	}
}

// TenantGallery answers GET /api/gallery on a village host.
func TenantGallery(svc galleries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		village, err := tenantVillage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		gallery, err := svc.VillageGallery(r.Context(), village.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, gallery)
	}
}
