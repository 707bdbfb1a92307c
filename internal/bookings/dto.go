package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefrontz-backend/pkg/db/models"
	"github.com/angelmondragon/storefrontz-backend/pkg/enums"
)

// BookingDTO exposes booking data in API responses.
type BookingDTO struct {
	ID              uuid.UUID           `json:"id"`
	StoreID         uuid.UUID           `json:"store_id"`
	StoreName       string              `json:"store_name"`
	StorePhone      string              `json:"store_phone,omitempty"`
	CustomerName    string              `json:"customer_name"`
	CustomerPhone   string              `json:"customer_phone"`
	CustomerEmail   string              `json:"customer_email,omitempty"`
	SelectedService string              `json:"selected_service"`
	PreferredDate   string              `json:"preferred_date,omitempty"`
	PreferredTime   string              `json:"preferred_time,omitempty"`
	Message         string              `json:"message,omitempty"`
	Status          enums.BookingStatus `json:"status"`
	BookingDate     time.Time           `json:"booking_date"`
}

// FromModel maps the persisted booking into a DTO.
func FromModel(m *models.Booking) *BookingDTO {
	if m == nil {
		return nil
	}
	return &BookingDTO{
		ID:              m.ID,
		StoreID:         m.StoreID,
		StoreName:       m.StoreName,
		StorePhone:      m.StorePhone,
		CustomerName:    m.CustomerName,
		CustomerPhone:   m.CustomerPhone,
		CustomerEmail:   m.CustomerEmail,
		SelectedService: m.SelectedService,
		PreferredDate:   m.PreferredDate,
		PreferredTime:   m.PreferredTime,
		Message:         m.Message,
		Status:          m.Status,
		BookingDate:     m.BookingDate,
	}
}

// FromModels maps a booking slice into DTOs.
func FromModels(ms []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}

// CreateBookingInput is the public booking form payload.
type CreateBookingInput struct {
	CustomerName    string `json:"customer_name" validate:"required,max=200"`
	CustomerPhone   string `json:"customer_phone" validate:"required,max=40"`
	CustomerEmail   string `json:"customer_email" validate:"omitempty,email,max=200"`
	SelectedService string `json:"selected_service" validate:"required,max=200"`
	PreferredDate   string `json:"preferred_date" validate:"max=40"`
	PreferredTime   string `json:"preferred_time" validate:"max=40"`
	Message         string `json:"message" validate:"max=2000"`
}
