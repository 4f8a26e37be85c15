package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andriansp/smartdesa-backend/api/responses"
	"github.com/andriansp/smartdesa-backend/api/validators"
	"github.com/andriansp/smartdesa-backend/internal/catalog"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
)

func offersQuery(r *http.Request) (catalog.ListOffersQuery, error) {
	minPrice, err := validators.QueryDecimal(r, "min_price")
	if err != nil {
		return catalog.ListOffersQuery{}, err
	}
	maxPrice, err := validators.QueryDecimal(r, "max_price")
	if err != nil {
		return catalog.ListOffersQuery{}, err
	}
	q := r.URL.Query()
	return catalog.ListOffersQuery{
		CategorySlug: q.Get("category"),
		VillageSlug:  q.Get("village"),
		PlaceSlug:    q.Get("place"),
		Tags:         validators.QueryStrings(r, "tags"),
		Availability: q.Get("availability"),
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Search:       q.Get("search"),
		Sort:         q.Get("sort"),
		Page:         validators.QueryInt(r, "page", 1),
		PerPage:      validators.QueryInt(r, "per_page", 0),
	}, nil
}

// OfferList answers GET /api/offers and its /api/products alias. Every query
// dimension is optional; present ones combine with AND.
func OfferList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := offersQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePaginated(w, result.Offers, result.Pagination)
	}
}

// OfferDetail answers GET /api/offers/{slug} and /api/products/{slug}.
// Each hit counts as one view.
func OfferDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offer, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, offer)
	}
}
