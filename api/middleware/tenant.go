package middleware

import (
	"context"
	"net/http"

	"github.com/andriansp/smartdesa-backend/internal/villages"
)

// Tenant resolves the request host to a village and attaches it to the
// context. Hosts that match no village (the apex domain, health probes)
// pass through without a tenant; endpoints that need one check VillageFrom.
func Tenant(service villages.Service, baseDomain string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			village, err := service.ResolveHost(r.Context(), r.Host, baseDomain)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxVillage, village)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
