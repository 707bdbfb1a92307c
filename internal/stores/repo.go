package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefrontz-backend/pkg/db/models"
)

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListOptions narrows list queries.
type ListOptions struct {
	PublishedOnly bool
}

// Create persists a new store row, stamping id and timestamps when unset.
func (r *Repository) Create(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	now := time.Now().UTC()
	if store.CreatedAt.IsZero() {
		store.CreatedAt = now
	}
	if store.UpdatedAt.IsZero() {
		store.UpdatedAt = now
	}
	return r.db.WithContext(ctx).Create(store).Error
}

// GetByID loads a store by its UUID. A missing row is (nil, nil).
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// GetBySlug loads a store by its public slug. A missing row is (nil, nil).
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).Where("store_slug = ?", slug).First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// ListByOwner returns the owner's stores, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).
		Where("owner = ?", ownerID).
		Order("created_at DESC").
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// ListAll returns every store, newest first.
func (r *Repository) ListAll(ctx context.Context, opts ListOptions) ([]models.Store, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if opts.PublishedOnly {
		q = q.Where("is_published = ?", true)
	}
	var stores []models.Store
	if err := q.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// ListPopular returns published stores ordered by view count.
func (r *Repository) ListPopular(ctx context.Context, limit int) ([]models.Store, error) {
	if limit <= 0 {
		limit = 10
	}
	var stores []models.Store
	if err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("views DESC").
		Limit(limit).
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Update saves the provided store with a fresh updated_at stamp.
func (r *Repository) Update(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	store.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(store).Error
}

// Delete removes the store row. Bookings keep their denormalized copy of the
// store contact, so there is no cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Store{}, "id = ?", id).Error
}

// IncrementViews bumps the view counter and view timestamp in one UPDATE so
// concurrent page loads never lose increments.
func (r *Repository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"views":       gorm.Expr("views + 1"),
			"last_viewed": time.Now().UTC(),
		}).Error
}
