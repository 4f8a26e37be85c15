package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/andriansp/smartdesa-backend/api/controllers"
	"github.com/andriansp/smartdesa-backend/api/middleware"
	"github.com/andriansp/smartdesa-backend/internal/articles"
	"github.com/andriansp/smartdesa-backend/internal/catalog"
	"github.com/andriansp/smartdesa-backend/internal/categories"
	"github.com/andriansp/smartdesa-backend/internal/communities"
	"github.com/andriansp/smartdesa-backend/internal/galleries"
	"github.com/andriansp/smartdesa-backend/internal/imaging"
	"github.com/andriansp/smartdesa-backend/internal/links"
	"github.com/andriansp/smartdesa-backend/internal/places"
	"github.com/andriansp/smartdesa-backend/internal/smes"
	"github.com/andriansp/smartdesa-backend/internal/stats"
	"github.com/andriansp/smartdesa-backend/internal/stunting"
	"github.com/andriansp/smartdesa-backend/internal/users"
	"github.com/andriansp/smartdesa-backend/internal/villages"
	"github.com/andriansp/smartdesa-backend/pkg/config"
	"github.com/andriansp/smartdesa-backend/pkg/enums"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/metrics"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Villages    villages.Service
	Communities communities.Service
	Categories  categories.Service
	Smes        smes.Service
	Places      places.Service
	Articles    articles.Service
	Catalog     catalog.Service
	Galleries   galleries.Service
	Links       links.Service
	Stats       stats.Service
	Stunting    stunting.Service
	Imaging     imaging.Service
	Users       users.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database controllers.HealthPinger,
	cache controllers.HealthPinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		metrics.Middleware,
		middleware.CORS(cfg.Site.BaseDomain),
	)

	r.Get("/metrics", metrics.Handler().ServeHTTP)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, database, cache))
	})

	// Short links resolve on the link subdomain before any tenant logic.
	r.Get("/l/{slug}", controllers.LinkRedirect(svcs.Links, cfg.Site, logg))

	r.Post("/stunting/calculate", controllers.StuntingCalculate(svcs.Stunting, logg))

	r.Route("/media", func(r chi.Router) {
		r.Get("/thumbnail/*", controllers.MediaThumbnail(svcs.Imaging, logg))
		r.Get("/optimized/*", controllers.MediaOptimized(svcs.Imaging, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Tenant(svcs.Villages, cfg.Site.BaseDomain))

		r.Get("/health", controllers.HealthReady(cfg, logg, database, cache))
		r.Get("/stats", controllers.SystemStats(svcs.Stats, logg))
		r.Get("/popular", controllers.PopularContent(svcs.Stats, logg))
		r.Get("/search", controllers.Search(svcs.Stats, logg))

		r.Route("/villages", func(r chi.Router) {
			r.Get("/", controllers.VillageList(svcs.Villages, logg))
			r.Get("/{slug}", controllers.VillageDetail(svcs.Villages, logg))
			r.Get("/{slug}/communities", controllers.VillageCommunities(svcs.Villages, svcs.Communities, logg))
			r.Get("/{slug}/smes", controllers.VillageSmes(svcs.Villages, svcs.Smes, logg))
		})

		// The offer catalog answers under both names; /products is the
		// legacy alias kept for existing clients.
		for _, prefix := range []string{"/offers", "/products"} {
			r.Route(prefix, func(r chi.Router) {
				r.Get("/", controllers.OfferList(svcs.Catalog, logg))
				r.Get("/{slug}", controllers.OfferDetail(svcs.Catalog, logg))
			})
		}

		r.Get("/home", controllers.TenantHome(svcs.Places, svcs.Catalog, svcs.Articles, logg))
		r.Get("/categories", controllers.TenantCategories(svcs.Categories, logg))
		r.Get("/places", controllers.TenantPlaces(svcs.Places, logg))
		r.Get("/places/{slug}", controllers.TenantPlaceDetail(svcs.Places, logg))
		r.Get("/smes/{slug}", controllers.TenantSmeDetail(svcs.Smes, logg))
		r.Get("/articles", controllers.TenantArticles(svcs.Articles, logg))
		r.Get("/articles/{slug}", controllers.ArticleDetail(svcs.Articles, logg))
		r.Get("/gallery", controllers.TenantGallery(svcs.Galleries, logg))

		r.Get("/links/{subdomain}/{slug}/stats", controllers.LinkStats(svcs.Links, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/links", controllers.LinkCreate(svcs.Links, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/auth/login", controllers.AuthLogin(svcs.Users, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))

				r.Get("/auth/me", controllers.AuthMe(svcs.Users, logg))

				r.Route("/villages", func(r chi.Router) {
					r.Get("/", controllers.AdminVillageList(svcs.Villages, logg))

					// Only the platform operator provisions villages.
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireRoles(logg, enums.UserRoleSuperAdmin))
						r.Post("/", controllers.AdminVillageCreate(svcs.Villages, svcs.Stats, logg))
						r.Put("/{id}", controllers.AdminVillageUpdate(svcs.Villages, logg))
						r.Delete("/{id}", controllers.AdminVillageDelete(svcs.Villages, svcs.Stats, logg))
					})
				})

				r.Route("/communities", func(r chi.Router) {
					r.Get("/", controllers.AdminCommunityList(svcs.Communities, logg))
					r.Post("/", controllers.AdminCommunityCreate(svcs.Communities, svcs.Stats, logg))
					r.Put("/{id}", controllers.AdminCommunityUpdate(svcs.Communities, logg))
					r.Delete("/{id}", controllers.AdminCommunityDelete(svcs.Communities, svcs.Stats, logg))
				})

				r.Route("/categories", func(r chi.Router) {
					r.Get("/", controllers.AdminCategoryList(svcs.Categories, logg))
					r.Post("/", controllers.AdminCategoryCreate(svcs.Categories, logg))
					r.Put("/{id}", controllers.AdminCategoryUpdate(svcs.Categories, logg))
					r.Delete("/{id}", controllers.AdminCategoryDelete(svcs.Categories, logg))
				})

				r.Route("/smes", func(r chi.Router) {
					r.Get("/", controllers.AdminSmeList(svcs.Smes, logg))
					r.Post("/", controllers.AdminSmeCreate(svcs.Smes, svcs.Stats, logg))
					r.Put("/{id}", controllers.AdminSmeUpdate(svcs.Smes, logg))
					r.Post("/{id}/verify", controllers.AdminSmeVerify(svcs.Smes, logg))
					r.Delete("/{id}", controllers.AdminSmeDelete(svcs.Smes, svcs.Stats, logg))
				})

				r.Route("/places", func(r chi.Router) {
					r.Get("/", controllers.AdminPlaceList(svcs.Places, logg))
					r.Post("/", controllers.AdminPlaceCreate(svcs.Places, svcs.Stats, logg))
					r.Put("/{id}", controllers.AdminPlaceUpdate(svcs.Places, logg))
					r.Delete("/{id}", controllers.AdminPlaceDelete(svcs.Places, svcs.Stats, logg))
				})

				r.Route("/articles", func(r chi.Router) {
					r.Get("/", controllers.AdminArticleList(svcs.Articles, logg))
					r.Post("/", controllers.AdminArticleCreate(svcs.Articles, svcs.Stats, logg))
					r.Put("/{id}", controllers.AdminArticleUpdate(svcs.Articles, logg))
					r.Delete("/{id}", controllers.AdminArticleDelete(svcs.Articles, svcs.Stats, logg))
				})

				r.Route("/offers", func(r chi.Router) {
					r.Get("/", controllers.AdminOfferList(svcs.Catalog, logg))
					r.Post("/", controllers.AdminOfferCreate(svcs.Catalog, svcs.Stats, logg))
					r.Put("/{id}", controllers.AdminOfferUpdate(svcs.Catalog, logg))
					r.Delete("/{id}", controllers.AdminOfferDelete(svcs.Catalog, svcs.Stats, logg))
					r.Post("/{id}/images", controllers.AdminOfferAddImage(svcs.Catalog, logg))
					r.Post("/{id}/images/{imageId}/primary", controllers.AdminOfferSetPrimaryImage(svcs.Catalog, logg))
					r.Delete("/{id}/images/{imageId}", controllers.AdminOfferRemoveImage(svcs.Catalog, logg))
				})

				r.Route("/gallery", func(r chi.Router) {
					r.Get("/images", controllers.AdminImageList(svcs.Galleries, logg))
					r.Post("/images", controllers.AdminImageCreate(svcs.Galleries, logg))
					r.Delete("/images/{id}", controllers.AdminImageDelete(svcs.Galleries, logg))
					r.Get("/media", controllers.AdminMediaList(svcs.Galleries, logg))
					r.Post("/media", controllers.AdminMediaCreate(svcs.Galleries, logg))
					r.Delete("/media/{id}", controllers.AdminMediaDelete(svcs.Galleries, logg))
				})

				r.Route("/users", func(r chi.Router) {
					r.Get("/", controllers.AdminUserList(svcs.Users, logg))
					r.Post("/", controllers.AdminUserCreate(svcs.Users, logg))
					r.Put("/{id}", controllers.AdminUserUpdate(svcs.Users, logg))
					r.Delete("/{id}", controllers.AdminUserDelete(svcs.Users, logg))
				})
			})
		})
	})

	return r
}
