package controllers

import (
	"net/http"

	"github.com/andriansp/smartdesa-backend/api/responses"
	"github.com/andriansp/smartdesa-backend/internal/articles"
	"github.com/andriansp/smartdesa-backend/internal/catalog"
	"github.com/andriansp/smartdesa-backend/internal/places"
	"github.com/andriansp/smartdesa-backend/internal/villages"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/pagination"
)

type homePayload struct {
	Village  *villages.VillageDTO      `json:"village"`
	Places   []places.PlaceDTO         `json:"places"`
	Offers   []catalog.OfferSummaryDTO `json:"offers"`
	Articles []articles.ArticleDTO     `json:"articles"`
}

// TenantHome answers GET /api/home on a village host: the village profile plus
// a short strip of places, offers and articles for the landing page.
func TenantHome(placeSvc places.Service, catalogSvc catalog.Service, articleSvc articles.Service, logg *logger.Logger) http.HandlerFunc {
	const stripSize = 6

	return func(w http.ResponseWriter, r *http.Request) {
		village, err := tenantVillage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		strip := pagination.Params{Page: 1, PerPage: stripSize}

		placesResult, err := placeSvc.ListByVillage(r.Context(), village.ID, "", strip)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offersResult, err := catalogSvc.List(r.Context(), catalog.ListOffersQuery{
			VillageSlug: village.Slug,
			Page:        1,
			PerPage:     stripSize,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		articlesResult, err := articleSvc.ListPublished(r.Context(), village.ID, strip)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, homePayload{
			Village:  village,
			Places:   placesResult.Places,
			Offers:   offersResult.Offers,
			Articles: articlesResult.Articles,
		})
	}
}
