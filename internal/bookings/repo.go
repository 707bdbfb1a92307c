package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefrontz-backend/pkg/db/models"
	"github.com/angelmondragon/storefrontz-backend/pkg/enums"
)

// Repository handles booking persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to booking operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new booking. Status and booking date are always forced to
// pending/now regardless of what the caller set, so a forged payload cannot
// pre-confirm itself or back-date the request.
func (r *Repository) Create(ctx context.Context, booking *models.Booking) error {
	if booking == nil {
		return fmt.Errorf("booking is required")
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.Status = enums.BookingStatusPending
	booking.BookingDate = time.Now().UTC()
	return r.db.WithContext(ctx).Create(booking).Error
}

// ListByStore returns the store's bookings, newest request first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("booking_date DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
