package stores

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefrontz-backend/internal/content"
	"github.com/angelmondragon/storefrontz-backend/pkg/config"
	"github.com/angelmondragon/storefrontz-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefrontz-backend/pkg/errors"
)

type stubRepo struct {
	created   []*models.Store
	createErr error
	byID      map[uuid.UUID]*models.Store
	bySlug    map[string]*models.Store
	getErr    error
	updated   []*models.Store
	deleted   []uuid.UUID
	viewCalls chan uuid.UUID
	viewErr   error
	listOwner []models.Store
	listAll   []models.Store
	listTop   []models.Store
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byID:      map[uuid.UUID]*models.Store{},
		bySlug:    map[string]*models.Store{},
		viewCalls: make(chan uuid.UUID, 8),
	}
}

func (r *stubRepo) Create(ctx context.Context, store *models.Store) error {
	if r.createErr != nil {
		return r.createErr
	}
	if store.ID == uuid.Nil {
		store.ID = uuid.New()
	}
	r.created = append(r.created, store)
	r.byID[store.ID] = store
	r.bySlug[store.StoreSlug] = store
	return nil
}

func (r *stubRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.byID[id], nil
}

func (r *stubRepo) GetBySlug(ctx context.Context, slug string) (*models.Store, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.bySlug[slug], nil
}

func (r *stubRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	return r.listOwner, nil
}

func (r *stubRepo) ListAll(ctx context.Context, opts ListOptions) ([]models.Store, error) {
	return r.listAll, nil
}

func (r *stubRepo) ListPopular(ctx context.Context, limit int) ([]models.Store, error) {
	return r.listTop, nil
}

func (r *stubRepo) Update(ctx context.Context, store *models.Store) error {
	r.updated = append(r.updated, store)
	return nil
}

func (r *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if r.viewErr != nil {
		return r.viewErr
	}
	r.viewCalls <- id
	return nil
}

type failingTextGen struct{}

func (failingTextGen) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("generation unavailable")
}

type staticTextGen struct{ response string }

func (s staticTextGen) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.response, nil
}

func newTestService(t *testing.T, repo *stubRepo, textGen content.TextGenerator) *service {
	t.Helper()
	gen, err := content.NewGenerator(textGen, nil)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	svc, err := NewService(repo, gen, config.PublicURLConfig{BaseURL: "https://storefrontz.app"}, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc.(*service)
}

func publishInput() PublishStoreInput {
	return PublishStoreInput{
		BusinessName:  "Joe's Café",
		BusinessType:  "cafe",
		Location:      "Delhi",
		Phone:         "+91 99999 11111",
		Services:      []string{"Espresso", "Latte", "  "},
		ServicePrices: []string{"120", ""},
	}
}

func TestPublishWithFailingGeneratorEndToEnd(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, failingTextGen{})
	owner := uuid.New()

	result, err := svc.Publish(context.Background(), owner, publishInput())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one create, got %d", len(repo.created))
	}
	store := repo.created[0]
	if want := "Welcome to Joe's Café"; len(store.Description) == 0 || store.Description[:len(want)] != want {
		t.Fatalf("unexpected description %q", store.Description)
	}
	if store.Tagline != "Quality Service Always" {
		t.Fatalf("unexpected tagline %q", store.Tagline)
	}
	if len(store.Services) != 2 || store.Services[0] != "Espresso" || store.Services[1] != "Latte" {
		t.Fatalf("unexpected services %v", store.Services)
	}
	if !regexp.MustCompile(`^joes-caf-[a-z0-9]{6}$`).MatchString(store.StoreSlug) {
		t.Fatalf("unexpected slug %q", store.StoreSlug)
	}
	if store.Views != 0 {
		t.Fatalf("expected zero views, got %d", store.Views)
	}
	if !store.IsPublished {
		t.Fatalf("expected store published")
	}
	if store.OwnerID != owner {
		t.Fatalf("unexpected owner %s", store.OwnerID)
	}

	if result.StoreSlug != store.StoreSlug {
		t.Fatalf("result slug %q does not match record %q", result.StoreSlug, store.StoreSlug)
	}
	if result.PublicURL != "https://storefrontz.app/store/"+store.StoreSlug {
		t.Fatalf("unexpected public url %q", result.PublicURL)
	}
}

func TestPublishUserDescriptionWins(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, staticTextGen{
		response: `{"description":"AI copy.","tagline":"Brewed Bold","policies":["p"],"marketingContent":"m"}`,
	})

	input := publishInput()
	input.Description = "My own words."
	if _, err := svc.Publish(context.Background(), uuid.New(), input); err != nil {
		t.Fatalf("publish: %v", err)
	}

	store := repo.created[0]
	if store.Description != "My own words." {
		t.Fatalf("user description should win, got %q", store.Description)
	}
	if store.Tagline != "Brewed Bold" {
		t.Fatalf("AI tagline should be kept, got %q", store.Tagline)
	}
}

func TestPublishComposesPricingAndSocialPost(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, failingTextGen{})

	if _, err := svc.Publish(context.Background(), uuid.New(), publishInput()); err != nil {
		t.Fatalf("publish: %v", err)
	}

	store := repo.created[0]
	if len(store.PricingSuggestions) != 2 {
		t.Fatalf("expected two pricing lines, got %v", store.PricingSuggestions)
	}
	if store.PricingSuggestions[0] != "Espresso: 120" {
		t.Fatalf("unexpected priced line %q", store.PricingSuggestions[0])
	}
	if store.PricingSuggestions[1] != "Latte: contact for pricing" {
		t.Fatalf("unexpected unpriced line %q", store.PricingSuggestions[1])
	}
	if store.SocialMediaPost != "Check out Joe's Café in Delhi! Quality Service Always Call +91 99999 11111 to book." {
		t.Fatalf("unexpected social post %q", store.SocialMediaPost)
	}
}

func TestPublishRejectsEmptyServiceList(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, failingTextGen{})

	input := publishInput()
	input.Services = []string{"   ", ""}
	_, err := svc.Publish(context.Background(), uuid.New(), input)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("nothing should be written on validation failure")
	}
}

func TestPublishRepoErrorAborts(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = errors.New("connection refused")
	svc := newTestService(t, repo, failingTextGen{})

	_, err := svc.Publish(context.Background(), uuid.New(), publishInput())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestPublishDuplicateSlugIsConflict(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = gorm.ErrDuplicatedKey
	svc := newTestService(t, repo, failingTextGen{})

	_, err := svc.Publish(context.Background(), uuid.New(), publishInput())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestGetPublicStoreRecordsView(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, failingTextGen{})

	store := &models.Store{ID: uuid.New(), StoreSlug: "seen-slug", BusinessName: "Seen"}
	repo.bySlug[store.StoreSlug] = store

	dto, err := svc.GetPublicStore(context.Background(), "seen-slug")
	if err != nil {
		t.Fatalf("get public store: %v", err)
	}
	if dto.BusinessName != "Seen" {
		t.Fatalf("unexpected store %q", dto.BusinessName)
	}

	select {
	case id := <-repo.viewCalls:
		if id != store.ID {
			t.Fatalf("view recorded for wrong store %s", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("view increment never recorded")
	}
}

func TestGetPublicStoreMissingIsNotFound(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, failingTextGen{})

	_, err := svc.GetPublicStore(context.Background(), "missing-slug")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOwnerScopedAccess(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, failingTextGen{})
	owner := uuid.New()

	store := &models.Store{ID: uuid.New(), StoreSlug: "owned-slug", BusinessName: "Owned", OwnerID: owner}
	repo.byID[store.ID] = store

	if _, err := svc.GetOwned(context.Background(), owner, store.ID); err != nil {
		t.Fatalf("owner should read own store: %v", err)
	}

	_, err := svc.GetOwned(context.Background(), uuid.New(), store.ID)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for foreign owner, got %v", err)
	}

	_, err = svc.GetOwned(context.Background(), owner, uuid.New())
	appErr = pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing store, got %v", err)
	}
}

func TestUpdateOwnedAppliesOnlyProvidedFields(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, failingTextGen{})
	owner := uuid.New()

	store := &models.Store{ID: uuid.New(), StoreSlug: "patch-slug", BusinessName: "Before", Location: "Delhi", OwnerID: owner, IsPublished: true}
	repo.byID[store.ID] = store

	name := "After"
	hidden := false
	dto, err := svc.UpdateOwned(context.Background(), owner, store.ID, UpdateStoreInput{
		BusinessName: &name,
		IsPublished:  &hidden,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.BusinessName != "After" || dto.Location != "Delhi" || dto.IsPublished {
		t.Fatalf("unexpected patched store %+v", dto)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("expected one update call")
	}
}

func TestDeleteOwned(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, failingTextGen{})
	owner := uuid.New()

	store := &models.Store{ID: uuid.New(), StoreSlug: "drop-slug", OwnerID: owner}
	repo.byID[store.ID] = store

	if err := svc.DeleteOwned(context.Background(), owner, store.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != store.ID {
		t.Fatalf("unexpected deletes %v", repo.deleted)
	}
}
