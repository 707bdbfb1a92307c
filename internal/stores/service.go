package stores

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefrontz-backend/internal/content"
	"github.com/angelmondragon/storefrontz-backend/internal/slug"
	"github.com/angelmondragon/storefrontz-backend/pkg/config"
	"github.com/angelmondragon/storefrontz-backend/pkg/db"
	"github.com/angelmondragon/storefrontz-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/storefrontz-backend/pkg/db/types"
	pkgerrors "github.com/angelmondragon/storefrontz-backend/pkg/errors"
	"github.com/angelmondragon/storefrontz-backend/pkg/logger"
	"github.com/angelmondragon/storefrontz-backend/pkg/metrics"
)

type storeRepository interface {
	Create(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	GetBySlug(ctx context.Context, slug string) (*models.Store, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error)
	ListAll(ctx context.Context, opts ListOptions) ([]models.Store, error)
	ListPopular(ctx context.Context, limit int) ([]models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

// Service exposes the publication pipeline and store operations.
type Service interface {
	Publish(ctx context.Context, ownerID uuid.UUID, input PublishStoreInput) (*PublishResult, error)
	GetPublicStore(ctx context.Context, storeSlug string) (*StoreDTO, error)
	ListExplore(ctx context.Context) ([]StoreDTO, error)
	ListPopular(ctx context.Context, limit int) ([]StoreDTO, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error)
	GetOwned(ctx context.Context, ownerID, storeID uuid.UUID) (*StoreDTO, error)
	UpdateOwned(ctx context.Context, ownerID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	DeleteOwned(ctx context.Context, ownerID, storeID uuid.UUID) error
}

type service struct {
	repo       storeRepository
	generator  content.Generator
	assignSlug func(string) (string, error)
	publicURL  config.PublicURLConfig
	pipeline   *metrics.PipelineMetrics
	log        *logger.Logger
}

// NewService builds a store service over the repository and content generator.
func NewService(repo storeRepository, generator content.Generator, publicURL config.PublicURLConfig, pipeline *metrics.PipelineMetrics, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if generator == nil {
		return nil, fmt.Errorf("content generator required")
	}
	return &service{
		repo:       repo,
		generator:  generator,
		assignSlug: slug.Assign,
		publicURL:  publicURL,
		pipeline:   pipeline,
		log:        log,
	}, nil
}

// Publish runs the publication pipeline: normalize the service/price arrays,
// generate marketing copy, assign the slug, and commit the record in a single
// create. Generation failures never abort the pipeline.
func (s *service) Publish(ctx context.Context, ownerID uuid.UUID, input PublishStoreInput) (*PublishResult, error) {
	start := time.Now()

	serviceNames, servicePrices := normalizeServicePairs(input.Services, input.ServicePrices)
	if len(serviceNames) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one service is required")
	}

	generated := s.generator.Generate(ctx, content.Input{
		BusinessName:        input.BusinessName,
		BusinessType:        input.BusinessType,
		Location:            input.Location,
		Services:            serviceNames,
		TargetAudience:      input.TargetAudience,
		ExistingDescription: input.Description,
	})
	if generated.UsedFallback {
		s.pipeline.IncFallback()
	}

	storeSlug, err := s.assignSlug(input.BusinessName)
	if err != nil {
		s.pipeline.ObservePublish("failure", time.Since(start))
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign store slug")
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		description = generated.Description
	}

	store := &models.Store{
		StoreSlug:          storeSlug,
		BusinessName:       input.BusinessName,
		BusinessType:       input.BusinessType,
		Location:           input.Location,
		Phone:              input.Phone,
		Hours:              input.Hours,
		Description:        description,
		Services:           dbtypes.StringList(serviceNames),
		ServicePrices:      servicePrices,
		Tagline:            generated.Tagline,
		Policies:           dbtypes.StringList(generated.Policies),
		MarketingContent:   generated.MarketingContent,
		PricingSuggestions: pricingSuggestions(generated, servicePrices),
		SocialMediaPost:    socialMediaPost(input, generated.Tagline),
		OwnerID:            ownerID,
		IsPublished:        true,
		Views:              0,
	}

	if err := s.repo.Create(ctx, store); err != nil {
		s.pipeline.ObservePublish("failure", time.Since(start))
		if db.IsUniqueViolation(err, "store_slug") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "store slug already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}

	s.pipeline.IncPublished()
	s.pipeline.ObservePublish("success", time.Since(start))

	return &PublishResult{
		StoreID:   store.ID,
		StoreSlug: store.StoreSlug,
		PublicURL: s.publicURL.StoreURL(store.StoreSlug),
	}, nil
}

// GetPublicStore loads a store by slug for the public page and records the
// view without blocking or failing the read.
func (s *service) GetPublicStore(ctx context.Context, storeSlug string) (*StoreDTO, error) {
	store, err := s.repo.GetBySlug(ctx, storeSlug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store by slug")
	}
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}

	go s.recordView(context.WithoutCancel(ctx), store.ID)

	return FromModel(store), nil
}

func (s *service) recordView(ctx context.Context, storeID uuid.UUID) {
	if err := s.repo.IncrementViews(ctx, storeID); err != nil {
		if s.log != nil {
			s.log.Error(s.log.WithStoreID(ctx, storeID.String()), "record store view failed", err)
		}
		return
	}
	s.pipeline.IncView()
}

func (s *service) ListExplore(ctx context.Context) ([]StoreDTO, error) {
	stores, err := s.repo.ListAll(ctx, ListOptions{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	return FromModels(stores), nil
}

func (s *service) ListPopular(ctx context.Context, limit int) ([]StoreDTO, error) {
	stores, err := s.repo.ListPopular(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list popular stores")
	}
	return FromModels(stores), nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error) {
	stores, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owned stores")
	}
	return FromModels(stores), nil
}

func (s *service) GetOwned(ctx context.Context, ownerID, storeID uuid.UUID) (*StoreDTO, error) {
	store, err := s.ownedStore(ctx, ownerID, storeID)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) UpdateOwned(ctx context.Context, ownerID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.ownedStore(ctx, ownerID, storeID)
	if err != nil {
		return nil, err
	}

	applyUpdate(store, input)
	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) DeleteOwned(ctx context.Context, ownerID, storeID uuid.UUID) error {
	if _, err := s.ownedStore(ctx, ownerID, storeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
	}
	return nil
}

func (s *service) ownedStore(ctx context.Context, ownerID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.repo.GetByID(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}
	if store.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store belongs to another owner")
	}
	return store, nil
}

func applyUpdate(store *models.Store, input UpdateStoreInput) {
	if input.BusinessName != nil {
		store.BusinessName = *input.BusinessName
	}
	if input.BusinessType != nil {
		store.BusinessType = *input.BusinessType
	}
	if input.Location != nil {
		store.Location = *input.Location
	}
	if input.Phone != nil {
		store.Phone = *input.Phone
	}
	if input.Hours != nil {
		store.Hours = *input.Hours
	}
	if input.Description != nil {
		store.Description = *input.Description
	}
	if input.Tagline != nil {
		store.Tagline = *input.Tagline
	}
	if input.MarketingContent != nil {
		store.MarketingContent = *input.MarketingContent
	}
	if input.Services != nil {
		store.Services = dbtypes.StringList(input.Services)
	}
	if input.Policies != nil {
		store.Policies = dbtypes.StringList(input.Policies)
	}
	if input.IsPublished != nil {
		store.IsPublished = *input.IsPublished
	}
}

// pricingSuggestions prefers model-supplied suggestions and otherwise lists
// the normalized price card, one line per service.
func pricingSuggestions(generated content.GeneratedContent, prices dbtypes.ServicePriceList) dbtypes.StringList {
	if len(generated.PricingSuggestions) > 0 {
		return dbtypes.StringList(generated.PricingSuggestions)
	}
	lines := make(dbtypes.StringList, 0, len(prices))
	for _, p := range prices {
		if p.Price.IsZero() {
			lines = append(lines, fmt.Sprintf("%s: contact for pricing", p.Name))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", p.Name, p.Price.String()))
	}
	return lines
}

func socialMediaPost(input PublishStoreInput, tagline string) string {
	post := fmt.Sprintf("Check out %s in %s! %s", input.BusinessName, input.Location, tagline)
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		post += fmt.Sprintf(" Call %s to book.", phone)
	}
	return post
}
