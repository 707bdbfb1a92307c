package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefrontz-backend/api/routes"
	"github.com/angelmondragon/storefrontz-backend/internal/bookings"
	"github.com/angelmondragon/storefrontz-backend/internal/content"
	"github.com/angelmondragon/storefrontz-backend/internal/stores"
	"github.com/angelmondragon/storefrontz-backend/pkg/config"
	"github.com/angelmondragon/storefrontz-backend/pkg/db"
	"github.com/angelmondragon/storefrontz-backend/pkg/genai"
	"github.com/angelmondragon/storefrontz-backend/pkg/logger"
	"github.com/angelmondragon/storefrontz-backend/pkg/metrics"
	"github.com/angelmondragon/storefrontz-backend/pkg/migrate"
	"github.com/angelmondragon/storefrontz-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pipeline := metrics.NewPipelineMetrics(registry)

	var textGen content.TextGenerator = genai.Disabled{}
	if cfg.Gemini.APIKey != "" {
		client, err := genai.NewClient(cfg.Gemini.APIKey,
			genai.WithModel(cfg.Gemini.Model),
			genai.WithTimeout(cfg.Gemini.Timeout),
		)
		if err != nil {
			logg.Error(context.Background(), "failed to build generation client", err)
			os.Exit(1)
		}
		textGen = client
	} else {
		logg.Warn(context.Background(), "gemini api key not set, serving fallback content only")
	}

	generator, err := content.NewGenerator(textGen, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build content generator", err)
		os.Exit(1)
	}

	storeRepo := stores.NewRepository(dbClient.DB())
	storeService, err := stores.NewService(storeRepo, generator, cfg.PublicURL, pipeline, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to build store service", err)
		os.Exit(1)
	}

	bookingService, err := bookings.NewService(bookings.NewRepository(dbClient.DB()), storeRepo, pipeline)
	if err != nil {
		logg.Error(context.Background(), "failed to build booking service", err)
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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			StoreService:   storeService,
			BookingService: bookingService,
			MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
