package repositories

import (
	"errors"

	"souq_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrListingNotFound = errors.New("listing not found")

// ListingFilter narrows FindAll results. Zero-value fields are ignored.
type ListingFilter struct {
	Category string
	Status   string
	Location string
}

type ListingRepository interface {
	Create(listing *models.Listing) error
	FindAll(filter ListingFilter) ([]models.Listing, error)
	FindByID(id string) (*models.Listing, error)
	// DeleteByID removes the record and returns it, or ErrListingNotFound.
	DeleteByID(id string) (*models.Listing, error)
}

type ListingRepositoryImpl struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &ListingRepositoryImpl{db: db}
}

func (r *ListingRepositoryImpl) Create(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

func (r *ListingRepositoryImpl) FindAll(filter ListingFilter) ([]models.Listing, error) {
	query := r.db.Order("date_posted DESC")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}

	var listings []models.Listing
	if err := query.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *ListingRepositoryImpl) FindByID(id string) (*models.Listing, error) {
	// A malformed id can never resolve to a record; treat it as not-found
	// instead of letting the uuid cast fail inside Postgres.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrListingNotFound
	}

	var listing models.Listing
	err := r.db.First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepositoryImpl) DeleteByID(id string) (*models.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrListingNotFound
	}

	// Delete through RETURNING so two concurrent deletes of the same id
	// cannot both observe the row: exactly one statement removes it.
	var deleted []models.Listing
	err := r.db.Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&deleted).Error
	if err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		return nil, ErrListingNotFound
	}
	return &deleted[0], nil
}
