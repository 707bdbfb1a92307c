package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/angelmondragon/storefrontz-backend/pkg/db/types"
)

// Store represents one published business storefront.
type Store struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	StoreSlug    string    `gorm:"column:store_slug;uniqueIndex;not null"`
	BusinessName string    `gorm:"column:business_name;not null"`
	BusinessType string    `gorm:"column:business_type;not null"`
	Location     string    `gorm:"column:location"`
	Phone        string    `gorm:"column:phone"`
	Hours        string    `gorm:"column:hours"`
	Description  string    `gorm:"column:description"`

	Services      dbtypes.StringList       `gorm:"column:services;type:text"`
	ServicePrices dbtypes.ServicePriceList `gorm:"column:service_prices;type:text"`

	Tagline            string             `gorm:"column:tagline"`
	Policies           dbtypes.StringList `gorm:"column:policies;type:text"`
	MarketingContent   string             `gorm:"column:marketing_content"`
	PricingSuggestions dbtypes.StringList `gorm:"column:pricing_suggestions;type:text"`
	SocialMediaPost    string             `gorm:"column:social_media_post"`

	// No default tags on is_published/views: gorm omits zero values for
	// defaulted columns, which would persist an unpublished store as published.
	OwnerID     uuid.UUID  `gorm:"column:owner;type:uuid;not null;index"`
	IsPublished bool       `gorm:"column:is_published;not null"`
	Views       int64      `gorm:"column:views;not null"`
	LastViewed  *time.Time `gorm:"column:last_viewed"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}
