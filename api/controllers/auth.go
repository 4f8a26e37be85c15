package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/andriansp/smartdesa-backend/api/middleware"
	"github.com/andriansp/smartdesa-backend/api/responses"
	"github.com/andriansp/smartdesa-backend/api/validators"
	"github.com/andriansp/smartdesa-backend/internal/users"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

// AuthLogin answers POST /api/admin/auth/login.
func AuthLogin(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload users.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthMe answers GET /api/admin/auth/me.
func AuthMe(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := requireScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		userID, ok := middleware.UserIDFrom(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}
		user, err := svc.GetByID(r.Context(), sc, userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func requireScope(r *http.Request) (scope.Scope, error) {
	sc, ok := middleware.ScopeFrom(r.Context())
	if !ok {
		return scope.Scope{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return sc, nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, name+" must be a uuid")
	}
	return id, nil
}
