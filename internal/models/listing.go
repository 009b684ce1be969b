package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type ListingCondition string

const (
	ConditionNew  ListingCondition = "new"
	ConditionUsed ListingCondition = "used"
)

type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusSold   ListingStatus = "sold"
)

// Categories is the fixed set of allowed listing categories.
var Categories = []string{
	"Cars",
	"Property",
	"Services",
	"Furniture",
	"Camping",
	"Gifts",
	"Contracting",
	"Family",
	"Animals",
	"Electronics",
}

// Listing is a single classified advertisement.
// Images and Thumbnails hold storage-relative file paths in upload order;
// thumbnails are parallel to images.
type Listing struct {
	BaseModel
	Title       string           `gorm:"not null" json:"title"`
	Description string           `gorm:"not null" json:"description"`
	Price       float64          `gorm:"not null" json:"price"`
	Location    string           `gorm:"not null" json:"location"`
	Condition   ListingCondition `gorm:"type:varchar(10);not null" json:"condition"`
	Category    string           `gorm:"type:varchar(20);not null;index" json:"category"`
	Subcategory string           `gorm:"not null" json:"subcategory"`
	Images      datatypes.JSON   `gorm:"type:jsonb" json:"-"`
	Thumbnails  datatypes.JSON   `gorm:"type:jsonb" json:"-"`
	DatePosted  time.Time        `gorm:"default:now()" json:"date_posted"`
	Status      ListingStatus    `gorm:"type:varchar(10);default:'active';index" json:"status"`
	SellerID    string           `gorm:"not null;index" json:"seller_id"`
	SellerName  string           `gorm:"not null" json:"seller_name"`
}

// ImagePaths decodes the stored image path list. A nil or invalid column
// yields an empty slice.
func (l *Listing) ImagePaths() []string {
	return decodePaths(l.Images)
}

func (l *Listing) ThumbnailPaths() []string {
	return decodePaths(l.Thumbnails)
}

func (l *Listing) SetImagePaths(paths []string) error {
	data, err := json.Marshal(paths)
	if err != nil {
		return err
	}
	l.Images = datatypes.JSON(data)
	return nil
}

func (l *Listing) SetThumbnailPaths(paths []string) error {
	data, err := json.Marshal(paths)
	if err != nil {
		return err
	}
	l.Thumbnails = datatypes.JSON(data)
	return nil
}

func decodePaths(col datatypes.JSON) []string {
	var paths []string
	if len(col) == 0 {
		return paths
	}
	if err := json.Unmarshal(col, &paths); err != nil {
		return nil
	}
	return paths
}
