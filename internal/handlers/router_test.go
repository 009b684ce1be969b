package handlers_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"souq_backend/internal/auth"
	"souq_backend/internal/handlers"
	"souq_backend/internal/imageprocessor"
	"souq_backend/internal/models"
	"souq_backend/internal/provider"
	"souq_backend/internal/repositories"
	"souq_backend/internal/routes"
	"souq_backend/internal/services"
	"souq_backend/internal/storage"
	"souq_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Test fixture: the real router, services, and storage on top of in-memory
// repositories and a fake identity provider.

type testEnv struct {
	router   *gin.Engine
	tokens   *auth.TokenManager
	store    *storage.LocalStorage
	provider *stubProvider
	sellerID string
}

const testCookieName = "session"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir()})
	require.NoError(t, err)

	userRepo := newMemUserRepo()
	seller := &models.User{ProviderID: "prov-7", DisplayName: "Test Seller", Email: "seller@example.com", PasswordHash: "x"}
	require.NoError(t, userRepo.Create(seller))

	listingRepo := newMemListingRepo()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	imageService := services.NewImageService(store)
	idp := &stubProvider{subject: "prov-7", name: "Test Seller"}
	authService := services.NewAuthService(userRepo, idp, tokens)
	listingService := services.NewListingService(listingRepo, userRepo, store, imageService,
		imageprocessor.NewProcessor(150, 85), services.ListingConfig{MaxFileSize: 1024 * 1024, MaxFiles: 5})

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(base, authService, handlers.SessionCookieConfig{Name: testCookieName, MaxAge: 3600}),
		ListingHandler: handlers.NewListingHandler(base, listingService),
	}

	router := gin.New()
	routes.RegisterRoutes(router, appHandlers, tokens, testCookieName, store.BasePath())

	return &testEnv{
		router:   router,
		tokens:   tokens,
		store:    store,
		provider: idp,
		sellerID: seller.ID,
	}
}

func (e *testEnv) sessionFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.tokens.Issue(userID)
	require.NoError(t, err)
	return token
}

// --- in-memory repositories ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) FindByProviderID(providerID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ProviderID == providerID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ProviderID == user.ProviderID {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) FindAll() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type memListingRepo struct {
	mu       sync.Mutex
	listings map[string]*models.Listing
	order    []string
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{listings: make(map[string]*models.Listing)}
}

func (r *memListingRepo) Create(listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	copied := *listing
	r.listings[listing.ID] = &copied
	r.order = append(r.order, listing.ID)
	return nil
}

func (r *memListingRepo) FindAll(filter repositories.ListingFilter) ([]models.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Listing
	for _, id := range r.order {
		l, ok := r.listings[id]
		if !ok {
			continue
		}
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if filter.Status != "" && string(l.Status) != filter.Status {
			continue
		}
		if filter.Location != "" && l.Location != filter.Location {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (r *memListingRepo) FindByID(id string) (*models.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repositories.ErrListingNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.listings[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, repositories.ErrListingNotFound
}

func (r *memListingRepo) DeleteByID(id string) (*models.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repositories.ErrListingNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.listings[id]
	if !ok {
		return nil, repositories.ErrListingNotFound
	}
	delete(r.listings, id)
	copied := *l
	return &copied, nil
}

// stubProvider satisfies provider.Client without the network.
type stubProvider struct {
	subject string
	name    string
	fail    bool
}

func (p *stubProvider) AuthCodeURL(state string) string {
	return "https://provider.example/consent?state=" + state
}

func (p *stubProvider) FetchProfile(ctx context.Context, code string) (*provider.Profile, error) {
	if p.fail {
		return nil, errors.New("provider unavailable")
	}
	return &provider.Profile{Subject: p.subject, DisplayName: p.name, Email: "seller@example.com"}, nil
}
