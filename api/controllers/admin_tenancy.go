package controllers

import (
	"net/http"

	"github.com/andriansp/smartdesa-backend/api/responses"
	"github.com/andriansp/smartdesa-backend/api/validators"
	"github.com/andriansp/smartdesa-backend/internal/communities"
	"github.com/andriansp/smartdesa-backend/internal/smes"
	"github.com/andriansp/smartdesa-backend/internal/stats"
	"github.com/andriansp/smartdesa-backend/internal/villages"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
)

// AdminVillageList answers GET /api/admin/villages.
func AdminVillageList(svc villages.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WritePaginated(w, result.Villages, result.Pagination)
	}
}

// AdminVillageCreate answers POST /api/admin/villages.
func AdminVillageCreate(svc villages.Service, statsSvc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload villages.CreateVillageInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		village, err := svc.Create(r.Context(), sc, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		statsSvc.Invalidate(r.Context())
		responses.WriteSuccessStatus(w, http.StatusCreated, village)
	}
}

// AdminVillageUpdate answers PUT /api/admin/villages/{id}.
func AdminVillageUpdate(svc villages.Service, logg *logger.Logger) http.HandlerFunc {
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
		var payload villages.UpdateVillageInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		village, err := svc.Update(r.Context(), sc, id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, village)
	}
}

// AdminVillageDelete answers DELETE /api/admin/villages/{id}.
func AdminVillageDelete(svc villages.Service, statsSvc stats.Service, logg *logger.Logger) http.HandlerFunc {
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

// AdminCommunityList answers GET /api/admin/communities.
func AdminCommunityList(svc communities.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WritePaginated(w, result.Communities, result.Pagination)
	}
}

// AdminCommunityCreate answers POST /api/admin/communities.
func AdminCommunityCreate(svc communities.Service, statsSvc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload communities.CreateCommunityInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		community, err := svc.Create(r.Context(), sc, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		statsSvc.Invalidate(r.Context())
		responses.WriteSuccessStatus(w, http.StatusCreated, community)
	}
}

// AdminCommunityUpdate answers PUT /api/admin/communities/{id}.
func AdminCommunityUpdate(svc communities.Service, logg *logger.Logger) http.HandlerFunc {
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
		var payload communities.UpdateCommunityInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		community, err := svc.Update(r.Context(), sc, id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, community)
	}
}

// AdminCommunityDelete answers DELETE /api/admin/communities/{id}.
func AdminCommunityDelete(svc communities.Service, statsSvc stats.Service, logg *logger.Logger) http.HandlerFunc {
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

// AdminSmeList answers GET /api/admin/smes.
func AdminSmeList(svc smes.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WritePaginated(w, result.Smes, result.Pagination)
	}
}

// AdminSmeCreate answers POST /api/admin/smes.
func AdminSmeCreate(svc smes.Service, statsSvc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload smes.CreateSmeInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sme, err := svc.Create(r.Context(), sc, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		statsSvc.Invalidate(r.Context())
		responses.WriteSuccessStatus(w, http.StatusCreated, sme)
	}
}

// AdminSmeUpdate answers PUT /api/admin/smes/{id}.
func AdminSmeUpdate(svc smes.Service, logg *logger.Logger) http.HandlerFunc {
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
		var payload smes.UpdateSmeInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sme, err := svc.Update(r.Context(), sc, id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sme)
	}
}

// AdminSmeVerify answers POST /api/admin/smes/{id}/verify.
func AdminSmeVerify(svc smes.Service, logg *logger.Logger) http.HandlerFunc {
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
		sme, err := svc.Verify(r.Context(), sc, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sme)
	}
}

// AdminSmeDelete answers DELETE /api/admin/smes/{id}.
func AdminSmeDelete(svc smes.Service, statsSvc stats.Service, logg *logger.Logger) http.HandlerFunc {
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
