package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"souq_backend/internal/imageprocessor"
	"souq_backend/internal/logger"
	"souq_backend/internal/models"
	"souq_backend/internal/repositories"
	"souq_backend/internal/services/dto"
	"souq_backend/internal/storage"
	"souq_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type ListingService interface {
	// Create persists the attachments and the listing record. Field
	// validation happens before any file is written; a failed insert
	// rolls the written files back.
	Create(ctx context.Context, sellerID string, req *dto.CreateListingRequest, files []*multipart.FileHeader) (*dto.ListingResponse, error)

	// ListAll returns all listings with images expanded to data URIs.
	ListAll(ctx context.Context, filter *dto.ListingFilterRequest) ([]dto.ListingResponse, error)

	// GetByID returns one listing with expanded images.
	GetByID(ctx context.Context, id string) (*dto.ListingResponse, error)

	// DeleteByID removes the record, then its stored files.
	DeleteByID(ctx context.Context, id string) (*dto.DeleteListingResponse, error)
}

type ListingConfig struct {
	MaxFileSize int64
	MaxFiles    int
}

type listingService struct {
	listingRepo repositories.ListingRepository
	userRepo    repositories.UserRepository
	storage     storage.Storage
	images      ImageService
	thumbnailer *imageprocessor.Processor
	config      ListingConfig
}

func NewListingService(
	listingRepo repositories.ListingRepository,
	userRepo repositories.UserRepository,
	storage storage.Storage,
	images ImageService,
	thumbnailer *imageprocessor.Processor,
	config ListingConfig,
) ListingService {
	if config.MaxFileSize == 0 {
		config.MaxFileSize = 10 * 1024 * 1024
	}
	if config.MaxFiles == 0 {
		config.MaxFiles = 5
	}
	return &listingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		storage:     storage,
		images:      images,
		thumbnailer: thumbnailer,
		config:      config,
	}
}

func (s *listingService) Create(ctx context.Context, sellerID string, req *dto.CreateListingRequest, files []*multipart.FileHeader) (*dto.ListingResponse, error) {
	if len(files) > s.config.MaxFiles {
		return nil, apperrors.New(apperrors.CodeLimitExceeded, "listing",
			fmt.Sprintf("At most %d images are allowed per listing", s.config.MaxFiles), http.StatusBadRequest)
	}
	for _, fh := range files {
		if fh.Size > s.config.MaxFileSize {
			return nil, apperrors.New(apperrors.CodeLimitExceeded, "listing",
				fmt.Sprintf("File %s exceeds the %d byte limit", fh.Filename, s.config.MaxFileSize), http.StatusBadRequest)
		}
	}

	seller, err := s.userRepo.FindByID(sellerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Session user no longer exists")
		}
		return nil, apperrors.InternalError(err)
	}

	// Fields are already validated; only now touch the file store.
	imagePaths, thumbPaths, err := s.storeAttachments(ctx, files)
	if err != nil {
		return nil, err
	}

	listing := &models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Condition:   models.ListingCondition(req.Condition),
		Category:    req.Category,
		Subcategory: req.Subcategory,
		DatePosted:  time.Now(),
		Status:      models.ListingStatusActive,
		SellerID:    seller.ID,
		SellerName:  seller.DisplayName,
	}
	if err := listing.SetImagePaths(imagePaths); err != nil {
		s.removeFiles(ctx, append(imagePaths, thumbPaths...))
		return nil, apperrors.InternalError(err)
	}
	if err := listing.SetThumbnailPaths(thumbPaths); err != nil {
		s.removeFiles(ctx, append(imagePaths, thumbPaths...))
		return nil, apperrors.InternalError(err)
	}

	if err := s.listingRepo.Create(listing); err != nil {
		// Compensating cleanup: no record means the files are orphans.
		s.removeFiles(ctx, append(imagePaths, thumbPaths...))
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "listing",
			"Failed to save listing", http.StatusInternalServerError)
	}

	resp := toListingResponse(listing)
	resp.Images = imagePaths
	resp.Thumbnails = thumbPaths
	return &resp, nil
}

func (s *listingService) ListAll(ctx context.Context, filter *dto.ListingFilterRequest) ([]dto.ListingResponse, error) {
	repoFilter := repositories.ListingFilter{}
	if filter != nil {
		repoFilter.Category = filter.Category
		repoFilter.Status = filter.Status
		repoFilter.Location = filter.Location
	}

	listings, err := s.listingRepo.FindAll(repoFilter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ListingResponse, 0, len(listings))
	for i := range listings {
		resp := toListingResponse(&listings[i])
		resp.Images = s.images.Materialize(ctx, listings[i].ImagePaths())
		out = append(out, resp)
	}
	return out, nil
}

func (s *listingService) GetByID(ctx context.Context, id string) (*dto.ListingResponse, error) {
	listing, err := s.listingRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.NewNotFoundError("listing", "Item not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := toListingResponse(listing)
	resp.Images = s.images.Materialize(ctx, listing.ImagePaths())
	return &resp, nil
}

func (s *listingService) DeleteByID(ctx context.Context, id string) (*dto.DeleteListingResponse, error) {
	listing, err := s.listingRepo.DeleteByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrListingNotFound) {
			return nil, apperrors.NewNotFoundError("listing", "Item not found")
		}
		return nil, apperrors.InternalError(err)
	}

	// Reclaim storage once the record is gone. A failed unlink is logged,
	// not surfaced: the listing itself is already deleted.
	s.removeFiles(ctx, append(listing.ImagePaths(), listing.ThumbnailPaths()...))

	resp := toListingResponse(listing)
	resp.Images = listing.ImagePaths()
	resp.Thumbnails = listing.ThumbnailPaths()
	return &dto.DeleteListingResponse{
		Message: "Item deleted successfully",
		Item:    resp,
	}, nil
}

// storeAttachments writes every attachment (and its thumbnail) under a
// collision-resistant generated name. If any write fails the files already
// stored in this batch are removed.
func (s *listingService) storeAttachments(ctx context.Context, files []*multipart.FileHeader) (imagePaths, thumbPaths []string, err error) {
	var written []string

	cleanup := func() {
		s.removeFiles(ctx, written)
	}

	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, nil, apperrors.Wrap(err, apperrors.CodeInternalError, "upload",
				"Failed to read uploaded file", http.StatusInternalServerError)
		}

		name := uuid.NewString() + filepath.Ext(fh.Filename)
		if err := s.storage.Save(ctx, name, src); err != nil {
			src.Close()
			cleanup()
			return nil, nil, apperrors.Wrap(err, apperrors.CodeInternalError, "upload",
				"Failed to store uploaded file", http.StatusInternalServerError)
		}
		src.Close()
		written = append(written, name)
		imagePaths = append(imagePaths, name)

		if thumb := s.makeThumbnail(ctx, name); thumb != "" {
			written = append(written, thumb)
			thumbPaths = append(thumbPaths, thumb)
		}
	}

	return imagePaths, thumbPaths, nil
}

// makeThumbnail is best-effort: attachments that do not decode as images
// simply get no thumbnail.
func (s *listingService) makeThumbnail(ctx context.Context, path string) string {
	if s.thumbnailer == nil {
		return ""
	}

	src, err := s.storage.Get(ctx, path)
	if err != nil {
		return ""
	}
	defer src.Close()

	resized, err := s.thumbnailer.Thumbnail(src)
	if err != nil {
		return ""
	}

	thumbPath := "thumbs/" + uuid.NewString() + ".jpg"
	if err := s.storage.Save(ctx, thumbPath, resized); err != nil {
		logger.CtxWarn(ctx, "failed to store thumbnail", "path", thumbPath, "error", err)
		return ""
	}
	return thumbPath
}

func (s *listingService) removeFiles(ctx context.Context, paths []string) {
	for _, path := range paths {
		if err := s.storage.Delete(ctx, path); err != nil {
			logger.CtxWarn(ctx, "failed to remove stored file", "path", path, "error", err)
		}
	}
}

func toListingResponse(l *models.Listing) dto.ListingResponse {
	return dto.ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Location:    l.Location,
		Condition:   string(l.Condition),
		Category:    l.Category,
		Subcategory: l.Subcategory,
		DatePosted:  l.DatePosted,
		Status:      string(l.Status),
		SellerID:    l.SellerID,
		SellerName:  l.SellerName,
	}
}
