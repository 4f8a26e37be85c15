package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/andriansp/smartdesa-backend/api/routes"
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
	"github.com/andriansp/smartdesa-backend/pkg/db"
	"github.com/andriansp/smartdesa-backend/pkg/logger"
	"github.com/andriansp/smartdesa-backend/pkg/migrate"
	"github.com/andriansp/smartdesa-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	svcs, err := buildServices(cfg, logg, dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) (routes.Services, error) {
	gormDB := dbClient.DB()

	villageService, err := villages.NewService(villages.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}
	communityService, err := communities.NewService(communities.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}
	categoryService, err := categories.NewService(categories.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}
	smeService, err := smes.NewService(smes.NewRepository(gormDB))
	if err != nil {
		return routes.Services{}, err
	}
	placeService, err := places.NewService(places.NewRepository(gormDB), logg)
	if err != nil {
		return routes.Services{}, err
	}
	articleService, err := articles.NewService(articles.NewRepository(gormDB), logg)
	if err != nil {
		return routes.Services{}, err
	}
	catalogService, err := catalog.NewService(catalog.NewRepository(gormDB), logg)
	if err != nil {
		return routes.Services{}, err
	}
	galleryService, err := galleries.NewService(galleries.NewRepository(gormDB), redisClient, cfg.Cache.MediaTTL, logg)
	if err != nil {
		return routes.Services{}, err
	}
	linkService, err := links.NewService(links.NewRepository(gormDB), cfg.Site, logg)
	if err != nil {
		return routes.Services{}, err
	}
	statsService, err := stats.NewService(stats.NewRepository(gormDB), redisClient, cfg.Cache, logg)
	if err != nil {
		return routes.Services{}, err
	}
	imagingService, err := imaging.NewService(cfg.Media, logg)
	if err != nil {
		return routes.Services{}, err
	}
	userService, err := users.NewService(users.NewRepository(gormDB), cfg.JWT, logg)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Villages:    villageService,
		Communities: communityService,
		Categories:  categoryService,
		Smes:        smeService,
		Places:      placeService,
		Articles:    articleService,
		Catalog:     catalogService,
		Galleries:   galleryService,
		Links:       linkService,
		Stats:       statsService,
		Stunting:    stunting.NewService(),
		Imaging:     imagingService,
		Users:       userService,
	}, nil
}
