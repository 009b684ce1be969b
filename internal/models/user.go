package models

// User is the minimal identity record created on first provider login.
// Never updated or deleted afterwards.
type User struct {
	BaseModel
	ProviderID   string `gorm:"uniqueIndex;not null" json:"provider_id"`
	DisplayName  string `gorm:"not null" json:"display_name"`
	Email        string `gorm:"not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}
