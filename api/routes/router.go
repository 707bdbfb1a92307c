package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefrontz-backend/api/controllers"
	"github.com/angelmondragon/storefrontz-backend/api/middleware"
	"github.com/angelmondragon/storefrontz-backend/internal/bookings"
	"github.com/angelmondragon/storefrontz-backend/internal/stores"
	"github.com/angelmondragon/storefrontz-backend/pkg/config"
	"github.com/angelmondragon/storefrontz-backend/pkg/logger"
)

// RateLimiterPinger is what the router needs from the redis client.
type RateLimiterPinger interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	Ping(ctx context.Context) error
}

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          RateLimiterPinger
	StoreService   stores.Service
	BookingService bookings.Service
	MetricsHandler http.Handler
}

// NewRouter assembles the HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	publishPolicy := middleware.NewRateLimitPolicy("publish", cfg.PublicWrites.Window, cfg.PublicWrites.PublishLimit)
	bookingPolicy := middleware.NewRateLimitPolicy("book", cfg.PublicWrites.Window, cfg.PublicWrites.BookingLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/stores", controllers.PublicStoreExplore(deps.StoreService, logg))
		r.Get("/stores/popular", controllers.PublicStorePopular(deps.StoreService, logg))
		r.Get("/store/{slug}", controllers.PublicStoreBySlug(deps.StoreService, cfg.PublicURL, logg))
		r.With(middleware.RateLimit(bookingPolicy, deps.Redis, logg)).
			Post("/book/{slug}", controllers.PublicBookingCreate(deps.BookingService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/stores", func(r chi.Router) {
			r.With(middleware.RateLimit(publishPolicy, deps.Redis, logg)).
				Post("/", controllers.StorePublish(deps.StoreService, logg))
			r.Get("/", controllers.StoreList(deps.StoreService, logg))
			r.Get("/{storeId}", controllers.StoreGet(deps.StoreService, logg))
			r.Patch("/{storeId}", controllers.StoreUpdate(deps.StoreService, logg))
			r.Delete("/{storeId}", controllers.StoreDelete(deps.StoreService, logg))
			r.Get("/{storeId}/bookings", controllers.StoreBookings(deps.BookingService, logg))
		})
	})

	return r
}
