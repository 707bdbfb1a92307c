package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/storefrontz-backend/pkg/config"
)

// CORS returns middleware that applies the configured allowed-origin policy.
// The public storefront is a browser app, so every surface goes through it.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
