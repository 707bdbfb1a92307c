package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefrontz-backend/pkg/enums"
)

// Booking is a customer's service request against a store. Store name and
// phone are denormalized at booking time so the record survives later store
// edits.
type Booking struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreID uuid.UUID `gorm:"column:store_id;type:uuid;not null;index"`

	StoreName  string `gorm:"column:store_name"`
	StorePhone string `gorm:"column:store_phone"`

	CustomerName    string `gorm:"column:customer_name;not null"`
	CustomerPhone   string `gorm:"column:customer_phone;not null"`
	CustomerEmail   string `gorm:"column:customer_email"`
	SelectedService string `gorm:"column:selected_service;not null"`
	PreferredDate   string `gorm:"column:preferred_date"`
	PreferredTime   string `gorm:"column:preferred_time"`
	Message         string `gorm:"column:message"`

	Status      enums.BookingStatus `gorm:"column:status;not null;default:'pending'"`
	BookingDate time.Time           `gorm:"column:booking_date;not null;index"`
}
