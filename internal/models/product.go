package models

import "time"

// Product represents a single inventory item. Image holds a path into the
// asset store ("products/<name>") when an image has been uploaded, and is
// nil otherwise.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"type:varchar(255);not null"`
	Stock       int       `json:"stock" gorm:"not null"`
	Sold        int       `json:"sold" gorm:"not null"`
	Status      string    `json:"status" gorm:"type:varchar(255);not null"`
	ExpiryDate  time.Time `json:"expiry_date" gorm:"type:date"`
	Description string    `json:"description"`
	Image       *string   `json:"image" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
