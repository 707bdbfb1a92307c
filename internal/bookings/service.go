package bookings

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefrontz-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefrontz-backend/pkg/errors"
	"github.com/angelmondragon/storefrontz-backend/pkg/metrics"
)

type bookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Booking, error)
}

type storeReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	GetBySlug(ctx context.Context, slug string) (*models.Store, error)
}

// Service exposes booking submission and the owner's booking list.
type Service interface {
	CreateForSlug(ctx context.Context, storeSlug string, input CreateBookingInput) (*BookingDTO, error)
	ListForOwner(ctx context.Context, ownerID, storeID uuid.UUID) ([]BookingDTO, error)
}

type service struct {
	repo     bookingRepository
	stores   storeReader
	pipeline *metrics.PipelineMetrics
}

// NewService builds a booking service over the booking and store repositories.
func NewService(repo bookingRepository, stores storeReader, pipeline *metrics.PipelineMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store reader required")
	}
	return &service{repo: repo, stores: stores, pipeline: pipeline}, nil
}

// CreateForSlug records a booking against the store behind the public slug.
// Store name and phone are captured onto the booking at submission time.
func (s *service) CreateForSlug(ctx context.Context, storeSlug string, input CreateBookingInput) (*BookingDTO, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	store, err := s.stores.GetBySlug(ctx, storeSlug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store by slug")
	}
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}

	booking := &models.Booking{
		StoreID:         store.ID,
		StoreName:       store.BusinessName,
		StorePhone:      store.Phone,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		SelectedService: strings.TrimSpace(input.SelectedService),
		PreferredDate:   strings.TrimSpace(input.PreferredDate),
		PreferredTime:   strings.TrimSpace(input.PreferredTime),
		Message:         strings.TrimSpace(input.Message),
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
	}

	s.pipeline.IncBooking()
	return FromModel(booking), nil
}

// ListForOwner returns the bookings of a store the caller owns.
func (s *service) ListForOwner(ctx context.Context, ownerID, storeID uuid.UUID) ([]BookingDTO, error) {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	if store.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store belongs to another owner")
	}

	bookings, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return FromModels(bookings), nil
}

func validateInput(input CreateBookingInput) error {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(input.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		missing = append(missing, "customer_phone")
	}
	if strings.TrimSpace(input.SelectedService) == "" {
		missing = append(missing, "selected_service")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required booking fields").
			WithDetails(map[string][]string{"missing": missing})
	}
	return nil
}
