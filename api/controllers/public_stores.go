package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefrontz-backend/api/responses"
	"github.com/angelmondragon/storefrontz-backend/api/validators"
	"github.com/angelmondragon/storefrontz-backend/internal/bookings"
	"github.com/angelmondragon/storefrontz-backend/internal/stores"
	"github.com/angelmondragon/storefrontz-backend/pkg/config"
	"github.com/angelmondragon/storefrontz-backend/pkg/logger"
	"github.com/angelmondragon/storefrontz-backend/pkg/qr"
)

const defaultPopularLimit = 10

// publicStoreResponse decorates the store with its shareable links.
type publicStoreResponse struct {
	stores.StoreDTO
	PublicURL string `json:"public_url"`
	QRURL     string `json:"qr_url"`
}

// PublicStoreExplore returns the full store list for client-side discovery.
func PublicStoreExplore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListExplore(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PublicStorePopular returns published stores ordered by view count.
func PublicStorePopular(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultPopularLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		list, err := svc.ListPopular(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// PublicStoreBySlug serves the public store page data and records the view.
func PublicStoreBySlug(svc stores.Service, publicURL config.PublicURLConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		store, err := svc.GetPublicStore(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageURL := publicURL.StoreURL(store.StoreSlug)
		responses.WriteSuccess(w, publicStoreResponse{
			StoreDTO:  *store,
			PublicURL: pageURL,
			QRURL:     qr.ImageURL(pageURL),
		})
	}
}

// PublicBookingCreate accepts a booking request against the slug's store.
func PublicBookingCreate(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		var input bookings.CreateBookingInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		booking, err := svc.CreateForSlug(r.Context(), slug, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, booking)
	}
}
