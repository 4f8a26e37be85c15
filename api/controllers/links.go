package controllers

import (
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/andriansp/smartdesa-backend/api/responses"
	"github.com/andriansp/smartdesa-backend/api/validators"
	"github.com/andriansp/smartdesa-backend/internal/links"
	"github.com/andriansp/smartdesa-backend/pkg/config"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
)

// LinkRedirect answers GET /l/{slug}: 302 to the target, 404 when unknown,
// 410 when inactive or expired. The subdomain comes from the request host.
func LinkRedirect(svc links.Service, site config.SiteConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subdomain := linkSubdomain(r.Host, site)
		meta := links.ClickMeta{
			UserAgent: r.UserAgent(),
			IPAddress: clientIP(r),
			Referer:   r.Referer(),
		}

		target, err := svc.Resolve(r.Context(), subdomain, chi.URLParam(r, "slug"), meta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}

// LinkCreate answers POST /api/links.
func LinkCreate(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload links.CreateLinkInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		link, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, link)
	}
}

// LinkStats answers GET /api/links/{subdomain}/{slug}/stats.
func LinkStats(svc links.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context(), chi.URLParam(r, "subdomain"), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

func linkSubdomain(host string, site config.SiteConfig) string {
	host = strings.ToLower(host)
	if idx := strings.IndexByte(host, ':'); idx >= 0 {
		host = host[:idx]
	}
	if suffix := "." + site.BaseDomain; strings.HasSuffix(host, suffix) {
		return strings.TrimSuffix(host, suffix)
	}
	return site.LinkSubdomain
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
