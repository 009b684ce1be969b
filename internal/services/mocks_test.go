package services

import (
	"context"
	"sync"

	"souq_backend/internal/models"
	"souq_backend/internal/provider"
	"souq_backend/internal/repositories"

	"github.com/google/uuid"
)

// In-memory fakes standing in for the GORM repositories and the identity
// provider in unit tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByProviderID(providerID string) (*models.User, error) {
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

func (r *fakeUserRepo) Create(user *models.User) error {
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

func (r *fakeUserRepo) FindAll() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeListingRepo struct {
	mu         sync.Mutex
	listings   map[string]*models.Listing
	order      []string
	failCreate error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[string]*models.Listing)}
}

func (r *fakeListingRepo) Create(listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	copied := *listing
	r.listings[listing.ID] = &copied
	r.order = append(r.order, listing.ID)
	return nil
}

func (r *fakeListingRepo) FindAll(filter repositories.ListingFilter) ([]models.Listing, error) {
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

func (r *fakeListingRepo) FindByID(id string) (*models.Listing, error) {
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

func (r *fakeListingRepo) DeleteByID(id string) (*models.Listing, error) {
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

type fakeProviderClient struct {
	profile *provider.Profile
	err     error
}

func (c *fakeProviderClient) AuthCodeURL(state string) string {
	return "https://provider.example/consent?state=" + state
}

func (c *fakeProviderClient) FetchProfile(ctx context.Context, code string) (*provider.Profile, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.profile, nil
}
