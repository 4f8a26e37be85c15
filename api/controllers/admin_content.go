package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/api/responses"
	"github.com/andriansp/smartdesa-backend/api/validators"
	"github.com/andriansp/smartdesa-backend/internal/articles"
	"github.com/andriansp/smartdesa-backend/internal/galleries"
	"github.com/andriansp/smartdesa-backend/internal/places"
	"github.com/andriansp/smartdesa-backend/internal/stats"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
)

// AdminPlaceList answers GET /api/admin/places.
func AdminPlaceList(svc places.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListScoped(r.Context(), sc, pageParams(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaginated(w, result.Places, result.Pagination)
	}
}

// AdminPlaceCreate answers POST /api/admin/places.
func AdminPlaceCreate(svc places.Service, statsSvc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload places.CreatePlaceInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		place, err := svc.Create(r.Context(), sc, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		statsSvc.Invalidate(r.Context())
		responses.WriteSuccessStatus(w, http.StatusCreated, place)
	}
}

// AdminPlaceUpdate answers PUT /api/admin/places/{id}.
func AdminPlaceUpdate(svc places.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload places.UpdatePlaceInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		place, err := svc.Update(r.Context(), sc, id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, place)
	}
}

// AdminPlaceDelete answers DELETE /api/admin/places/{id}.
func AdminPlaceDelete(svc places.Service, statsSvc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), sc, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		statsSvc.Invalidate(r.Context())
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminArticleList answers GET /api/admin/articles.
func AdminArticleList(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListScoped(r.Context(), sc, pageParams(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaginated(w, result.Articles, result.Pagination)
	}
}

// AdminArticleCreate answers POST /api/admin/articles.
func AdminArticleCreate(svc articles.Service, statsSvc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload articles.CreateArticleInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		article, err := svc.Create(r.Context(), sc, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		statsSvc.Invalidate(r.Context())
		responses.WriteSuccessStatus(w, http.StatusCreated, article)
	}
}

// AdminArticleUpdate answers PUT /api/admin/articles/{id}.
func AdminArticleUpdate(svc articles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload articles.UpdateArticleInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		article, err := svc.Update(r.Context(), sc, id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, article)
	}
}

// AdminArticleDelete answers DELETE /api/admin/articles/{id}.
func AdminArticleDelete(svc articles.Service, statsSvc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), sc, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		statsSvc.Invalidate(r.Context())
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminImageList answers GET /api/admin/gallery/images.
func AdminImageList(svc galleries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListImagesScoped(r.Context(), sc, pageParams(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaginated(w, result.Images, result.Pagination)
	}
}

// AdminImageCreate answers POST /api/admin/gallery/images.
func AdminImageCreate(svc galleries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload galleries.CreateImageInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		image, err := svc.CreateImage(r.Context(), sc, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, image)
	}
}

// AdminImageDelete answers DELETE /api/admin/gallery/images/{id}?village_id=.
// The village ID drives cache invalidation for that village's gallery.
func AdminImageDelete(svc galleries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		villageID, err := queryVillageID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteImage(r.Context(), sc, villageID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminMediaList answers GET /api/admin/gallery/media.
func AdminMediaList(svc galleries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListMediaScoped(r.Context(), sc, pageParams(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaginated(w, result.Media, result.Pagination)
	}
}

// AdminMediaCreate answers POST /api/admin/gallery/media.
func AdminMediaCreate(svc galleries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload galleries.CreateMediaInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		media, err := svc.CreateMedia(r.Context(), sc, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, media)
	}
}

// AdminMediaDelete answers DELETE /api/admin/gallery/media/{id}?village_id=.
func AdminMediaDelete(svc galleries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		villageID, err := queryVillageID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteMedia(r.Context(), sc, villageID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func queryVillageID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.URL.Query().Get("village_id"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "village_id must be a uuid")
	}
	return id, nil
}
