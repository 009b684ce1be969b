package handlers

import (
	"net/http"

	"souq_backend/internal/services"
	"souq_backend/internal/services/dto"
	"souq_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ListingHandler serves the JSON item API.
type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler:    base,
		listingService: listingService,
	}
}

// Create handles POST /items: multipart form with up to 5 image files
// under the "images" field.
func (h *ListingHandler) Create(c *gin.Context) {
	sellerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}
	files := form.File["images"]

	listing, err := h.listingService.Create(c.Request.Context(), sellerID, &req, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, listing)
}

// List handles GET /items with optional category/status/location filters.
func (h *ListingHandler) List(c *gin.Context) {
	var filter dto.ListingFilterRequest
	if !h.BindAndValidateQuery(c, &filter) {
		return
	}

	listings, err := h.listingService.ListAll(c.Request.Context(), &filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listings)
}

// Get handles GET /items/:id.
func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.listingService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Delete handles DELETE /items/:id.
func (h *ListingHandler) Delete(c *gin.Context) {
	result, err := h.listingService.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
