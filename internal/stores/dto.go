package stores

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefrontz-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/storefrontz-backend/pkg/db/types"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	ID                 uuid.UUID              `json:"id"`
	StoreSlug          string                 `json:"store_slug"`
	BusinessName       string                 `json:"business_name"`
	BusinessType       string                 `json:"business_type"`
	Location           string                 `json:"location,omitempty"`
	Phone              string                 `json:"phone,omitempty"`
	Hours              string                 `json:"hours,omitempty"`
	Description        string                 `json:"description,omitempty"`
	Services           []string               `json:"services"`
	ServicePrices      []dbtypes.ServicePrice `json:"service_prices,omitempty"`
	Tagline            string                 `json:"tagline,omitempty"`
	Policies           []string               `json:"policies,omitempty"`
	MarketingContent   string                 `json:"marketing_content,omitempty"`
	PricingSuggestions []string               `json:"pricing_suggestions,omitempty"`
	SocialMediaPost    string                 `json:"social_media_post,omitempty"`
	OwnerID            uuid.UUID              `json:"owner"`
	IsPublished        bool                   `json:"is_published"`
	Views              int64                  `json:"views"`
	LastViewed         *time.Time             `json:"last_viewed,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		ID:                 m.ID,
		StoreSlug:          m.StoreSlug,
		BusinessName:       m.BusinessName,
		BusinessType:       m.BusinessType,
		Location:           m.Location,
		Phone:              m.Phone,
		Hours:              m.Hours,
		Description:        m.Description,
		Services:           []string(m.Services),
		ServicePrices:      []dbtypes.ServicePrice(m.ServicePrices),
		Tagline:            m.Tagline,
		Policies:           []string(m.Policies),
		MarketingContent:   m.MarketingContent,
		PricingSuggestions: []string(m.PricingSuggestions),
		SocialMediaPost:    m.SocialMediaPost,
		OwnerID:            m.OwnerID,
		IsPublished:        m.IsPublished,
		Views:              m.Views,
		LastViewed:         m.LastViewed,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// FromModels maps a store slice into DTOs.
func FromModels(ms []models.Store) []StoreDTO {
	out := make([]StoreDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}

// PublishStoreInput carries the raw form payload for the publish pipeline.
// Services and ServicePrices are parallel arrays as submitted by the form.
type PublishStoreInput struct {
	BusinessName   string   `json:"business_name" validate:"required,max=200"`
	BusinessType   string   `json:"business_type" validate:"required,max=100"`
	Location       string   `json:"location" validate:"required,max=200"`
	Phone          string   `json:"phone" validate:"max=40"`
	Hours          string   `json:"hours" validate:"max=200"`
	Description    string   `json:"description" validate:"max=2000"`
	TargetAudience string   `json:"target_audience" validate:"max=200"`
	Services       []string `json:"services" validate:"required,min=1"`
	ServicePrices  []string `json:"service_prices"`
}

// PublishResult identifies the created store for redirect and sharing.
type PublishResult struct {
	StoreID   uuid.UUID `json:"store_id"`
	StoreSlug string    `json:"store_slug"`
	PublicURL string    `json:"public_url"`
}

// UpdateStoreInput captures the owner-editable store fields. Nil means
// leave the field unchanged.
type UpdateStoreInput struct {
	BusinessName     *string  `json:"business_name" validate:"omitempty,max=200"`
	BusinessType     *string  `json:"business_type" validate:"omitempty,max=100"`
	Location         *string  `json:"location" validate:"omitempty,max=200"`
	Phone            *string  `json:"phone" validate:"omitempty,max=40"`
	Hours            *string  `json:"hours" validate:"omitempty,max=200"`
	Description      *string  `json:"description" validate:"omitempty,max=2000"`
	Tagline          *string  `json:"tagline" validate:"omitempty,max=200"`
	MarketingContent *string  `json:"marketing_content" validate:"omitempty,max=2000"`
	Services         []string `json:"services"`
	Policies         []string `json:"policies"`
	IsPublished      *bool    `json:"is_published"`
}

// normalizeServicePairs pairs the parallel form arrays into named prices,
// dropping blank service names. A missing or unparsable price becomes zero,
// rendered publicly as "contact for pricing".
func normalizeServicePairs(services, prices []string) ([]string, dbtypes.ServicePriceList) {
	names := make([]string, 0, len(services))
	priced := make(dbtypes.ServicePriceList, 0, len(services))
	for i, svc := range services {
		name := strings.TrimSpace(svc)
		if name == "" {
			continue
		}
		price := decimal.Zero
		if i < len(prices) {
			if parsed, err := decimal.NewFromString(strings.TrimSpace(strings.TrimPrefix(prices[i], "$"))); err == nil {
				price = parsed
			}
		}
		names = append(names, name)
		priced = append(priced, dbtypes.ServicePrice{Name: name, Price: price})
	}
	return names, priced
}
