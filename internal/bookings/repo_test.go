package bookings

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefrontz-backend/pkg/db/models"
	"github.com/angelmondragon/storefrontz-backend/pkg/enums"
)

func setupBookingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS bookings (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  store_name TEXT,
  store_phone TEXT,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  customer_email TEXT,
  selected_service TEXT NOT NULL,
  preferred_date TEXT,
  preferred_time TEXT,
  message TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  booking_date DATETIME NOT NULL
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM bookings").Error)
	return db
}

func TestRepositoryCreateForcesPendingStatusAndDate(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	booking := &models.Booking{
		StoreID:         uuid.New(),
		CustomerName:    "Asha",
		CustomerPhone:   "12345",
		SelectedService: "Espresso",
		Status:          enums.BookingStatusConfirmed,
		BookingDate:     time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, booking))

	assert.Equal(t, enums.BookingStatusPending, booking.Status)
	assert.True(t, booking.BookingDate.After(time.Now().UTC().Add(-time.Minute)),
		"booking date must be stamped at creation, got %s", booking.BookingDate)
	require.NotEqual(t, uuid.Nil, booking.ID)
}

func TestRepositoryListByStoreNewestFirst(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	storeID := uuid.New()

	for _, name := range []string{"first", "second", "third"} {
		booking := &models.Booking{
			StoreID:         storeID,
			CustomerName:    name,
			CustomerPhone:   "12345",
			SelectedService: "Espresso",
		}
		require.NoError(t, repo.Create(ctx, booking))
		time.Sleep(5 * time.Millisecond)
	}

	other := &models.Booking{
		StoreID:         uuid.New(),
		CustomerName:    "elsewhere",
		CustomerPhone:   "12345",
		SelectedService: "Espresso",
	}
	require.NoError(t, repo.Create(ctx, other))

	bookings, err := repo.ListByStore(ctx, storeID)
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.Equal(t, "third", bookings[0].CustomerName)
	assert.Equal(t, "first", bookings[2].CustomerName)
}
