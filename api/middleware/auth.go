package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/andriansp/smartdesa-backend/api/responses"
	pkgauth "github.com/andriansp/smartdesa-backend/pkg/auth"
	"github.com/andriansp/smartdesa-backend/pkg/config"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	pkgerrors "github.com/andriansp/smartdesa-backend/pkg/errors"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/scope"
)

// Auth validates a bearer token and seeds the request context with the
// caller's visibility scope. The scope IDs come straight from the claims, so
// no user lookup happens per request.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			sc := scope.Scope{
				Role:        claims.Role,
				VillageID:   claims.VillageID,
				CommunityID: claims.CommunityID,
				SmeID:       claims.SmeID,
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
			ctx = context.WithValue(ctx, ctxScope, sc)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
				ctx = logg.WithActorRole(ctx, string(claims.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles gates a route group to the listed roles. Runs after Auth.
func RequireRoles(logg *logger.Logger, roles ...enums.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, ok := ScopeFrom(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			for _, role := range roles {
				if sc.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
