package dto

import "time"

// CreateListingRequest carries the non-file fields of a listing-creation
// request. Images arrive separately as multipart attachments.
type CreateListingRequest struct {
	Title       string  `form:"title" json:"title" validate:"required,max_words=4"`
	Description string  `form:"description" json:"description" validate:"required"`
	Price       float64 `form:"price" json:"price" validate:"gte=0"`
	Location    string  `form:"location" json:"location" validate:"required"`
	Category    string  `form:"category" json:"category" validate:"required,oneof=Cars Property Services Furniture Camping Gifts Contracting Family Animals Electronics"`
	Condition   string  `form:"condition" json:"condition" validate:"required,oneof=new used"`
	Subcategory string  `form:"subcategory" json:"subcategory" validate:"required"`
}

// ListingFilterRequest narrows the bulk listing read.
type ListingFilterRequest struct {
	Category string `form:"category" validate:"omitempty,oneof=Cars Property Services Furniture Camping Gifts Contracting Family Animals Electronics"`
	Status   string `form:"status" validate:"omitempty,oneof=active sold"`
	Location string `form:"location"`
}

// ListingResponse is the JSON shape of a listing. On reads Images holds
// data URIs; on create it holds the stored paths, matching what was just
// persisted.
type ListingResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Condition   string    `json:"condition"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Images      []string  `json:"images"`
	Thumbnails  []string  `json:"thumbnails,omitempty"`
	DatePosted  time.Time `json:"date_posted"`
	Status      string    `json:"status"`
	SellerID    string    `json:"seller_id"`
	SellerName  string    `json:"seller_name"`
}

// DeleteListingResponse mirrors the delete endpoint's contract.
type DeleteListingResponse struct {
	Message string          `json:"message"`
	Item    ListingResponse `json:"item"`
}
